package session

import (
	"maps"
	"slices"

	"sensordemos/game"
	"sensordemos/geo"
	"sensordemos/gesture"
)

// Snapshot is what renderers see after each processed command.
type Snapshot struct {
	SessionID string
	Seq       int

	Target       *geo.Point
	Armed        bool
	LastPosition *geo.Point

	Ball      game.Ball
	Zone      game.TargetZone
	TiltInput TiltInput

	// Transform is what to display: the live preview during a pinch,
	// otherwise Committed.
	Transform gesture.Transform
	Committed gesture.Transform
	// PreventDefault is set while a pinch is active so the host suppresses
	// scrolling.
	PreventDefault bool

	// Disabled lists sources that reported a non-transient failure, sorted.
	Disabled []string
}

// Observer receives snapshots on the session goroutine; it must not block.
type Observer interface {
	Observe(Snapshot)
}

type ObserverFunc func(Snapshot)

func (f ObserverFunc) Observe(s Snapshot) { f(s) }

func (s *Session) buildSnapshot() Snapshot {
	snap := Snapshot{
		SessionID:      s.ID,
		Seq:            s.seq,
		Armed:          s.tracker.Armed(),
		Ball:           s.nav.Ball(),
		Zone:           s.nav.Target(),
		TiltInput:      s.tiltInput,
		Transform:      s.display,
		Committed:      s.pinch.Committed(),
		PreventDefault: s.pinch.Active(),
	}
	if t, ok := s.tracker.Target(); ok {
		snap.Target = &t
	}
	if s.lastPosition != nil {
		p := *s.lastPosition
		snap.LastPosition = &p
	}
	if len(s.disabled) > 0 {
		snap.Disabled = slices.Sorted(maps.Keys(s.disabled))
	}
	return snap
}

func (s *Session) broadcast() {
	snap := s.buildSnapshot()
	for _, o := range s.observers {
		o.Observe(snap)
	}
}
