package session

import (
	"context"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"sensordemos/game"
	"sensordemos/geo"
	"sensordemos/gesture"
	"sensordemos/metrics"
	"sensordemos/notify"
	"sensordemos/proximity"
	"sensordemos/source"
)

type Options struct {
	AlertRadius float64 // meters, 0 means proximity.AlertRadiusMeters
	Sensitivity float64 // 0 means game.Sensitivity
	WinRadius   float64 // 0 means game.WinRadius

	Sink      notify.Sink
	Observers []Observer
	// Rand draws tilt targets. It belongs to one session; nil seeds a fresh one.
	Rand   *rand.Rand
	Logger *zap.Logger
}

// Session owns one instance of each kernel and applies commands from Inbox
// one at a time on the goroutine running Run.
type Session struct {
	ID    string
	Inbox chan any

	tracker *proximity.Tracker
	nav     *game.Navigator
	pinch   *gesture.Pinch

	lastPosition *geo.Point
	tiltInput    TiltInput
	display      gesture.Transform
	pair         [2]int // contact ids of the active pinch
	seq          int
	disabled     map[string]bool // sources that failed for good

	opts      Options
	sink      notify.Sink
	observers []Observer
	rng       *rand.Rand
	log       *zap.Logger

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	OnEnd func(id string) // called once Run returns
}

func New(id string, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	sink := opts.Sink
	if sink == nil {
		sink = notify.Fanout(nil)
	}
	s := &Session{
		ID:        id,
		Inbox:     make(chan any, 256),
		tracker:   proximity.NewTracker(proximity.WithAlertRadius(opts.AlertRadius)),
		pinch:     gesture.NewPinch(),
		display:   gesture.Identity,
		disabled:  make(map[string]bool),
		opts:      opts,
		sink:      sink,
		observers: opts.Observers,
		rng:       rng,
		log:       log.With(zap.String("session", id)),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	s.nav = s.newNavigator()
	return s
}

func (s *Session) newNavigator() *game.Navigator {
	return game.NewNavigator(game.RandomTarget(s.rng),
		game.WithSensitivity(s.opts.Sensitivity),
		game.WithWinRadius(s.opts.WinRadius),
	)
}

func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
}

// Done is closed when Run has returned.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) Run(ctx context.Context) {
	metrics.ActiveSessions.Inc()
	defer func() {
		metrics.ActiveSessions.Dec()
		close(s.done)
		if s.OnEnd != nil {
			s.OnEnd(s.ID)
		}
	}()

	s.log.Info("session started", zap.Float64("target_x", s.nav.Target().X), zap.Float64("target_y", s.nav.Target().Y))
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case cmd := <-s.Inbox:
			if s.handleCommand(cmd) {
				s.seq++
				s.broadcast()
			}
		}
	}
}

// Post queues cmd and reports false if the session has ended.
func (s *Session) Post(cmd any) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.Inbox <- cmd:
		return true
	case <-s.done:
		return false
	}
}

// Snapshot asks the session for its state after everything queued so far.
func (s *Session) Snapshot() (Snapshot, bool) {
	reply := make(chan Snapshot, 1)
	if !s.Post(Query{Reply: reply}) {
		return Snapshot{}, false
	}
	select {
	case snap := <-reply:
		return snap, true
	case <-s.done:
		return Snapshot{}, false
	}
}

// handleCommand applies cmd and reports whether observers should hear about it.
func (s *Session) handleCommand(cmd any) bool {
	switch c := cmd.(type) {
	case SetTarget:
		s.tracker.SetTarget(c.Point)
		s.log.Debug("target set", zap.Stringer("target", c.Point))
		return true
	case ClearTarget:
		s.tracker.ClearTarget()
		return true
	case Position:
		if s.disabled["position"] {
			return false
		}
		return s.handlePosition(c.Fix)
	case SourceFailure:
		return s.handleFailure(c)
	case Tilt:
		return s.step(c.Pitch, c.Roll)
	case Key:
		if s.disabled["keyboard"] {
			return false
		}
		pitch, roll := game.KeyTilt(c.Key)
		return s.step(pitch, roll)
	case Motion:
		if s.disabled["motion"] {
			return false
		}
		pitch, roll, ok := game.MotionTilt(c.Sample.Accel)
		if !ok {
			return false
		}
		return s.step(pitch, roll)
	case Touch:
		if s.disabled["touch"] {
			return false
		}
		return s.handleTouch(c.Event)
	case RestartGame:
		s.nav = s.newNavigator()
		s.log.Info("game restarted", zap.Float64("target_x", s.nav.Target().X), zap.Float64("target_y", s.nav.Target().Y))
		return true
	case tiltSelected:
		s.tiltInput = c.input
		return true
	case Query:
		c.Reply <- s.buildSnapshot()
		return false
	}
	return false
}

// handleFailure counts every failure. A transient one is logged and changes
// nothing; any other disables the source, logged once.
func (s *Session) handleFailure(c SourceFailure) bool {
	metrics.SourceErrors.WithLabelValues(c.Source).Inc()
	if s.disabled[c.Source] {
		return false
	}
	if source.IsTransient(c.Err) {
		s.log.Warn("source failure", zap.String("source", c.Source), zap.Error(c.Err))
		return false
	}
	s.disabled[c.Source] = true
	s.log.Error("source disabled", zap.String("source", c.Source), zap.Error(c.Err))
	return true
}

func (s *Session) handlePosition(fix source.Fix) bool {
	p := fix.Point
	if !p.Valid() {
		s.log.Debug("dropping invalid fix", zap.Float64("lat", p.Lat), zap.Float64("lon", p.Lon))
		return false
	}
	s.lastPosition = &p
	ev, ok := s.tracker.Update(p)
	if ok {
		metrics.AlertsFired.Inc()
		s.log.Info("proximity alert", zap.Int("meters", ev.Meters), zap.Stringer("target", ev.Target))
		s.sink.Notify(notify.FromAlert(ev))
	}
	return true
}

func (s *Session) step(pitch, roll float64) bool {
	if s.nav.Ball().Won || !game.ValidTilt(pitch, roll) {
		return false
	}
	ev, arrived := s.nav.Step(pitch, roll)
	if arrived {
		metrics.Arrivals.Inc()
		s.log.Info("target reached", zap.Float64("distance", ev.Distance))
		s.sink.Notify(notify.FromArrival(ev))
	}
	return true
}

func (s *Session) handleTouch(ev source.TouchEvent) bool {
	switch ev.Phase {
	case source.TouchStart:
		if len(ev.Touches) != 2 {
			return false
		}
		a, b := ev.Touches[0], ev.Touches[1]
		s.pair = [2]int{a.ID, b.ID}
		s.pinch.Begin(a.Point, b.Point)
		return true
	case source.TouchMove:
		if !s.pinch.Active() {
			return false
		}
		p1, ok1 := ev.Find(s.pair[0])
		p2, ok2 := ev.Find(s.pair[1])
		if !ok1 || !ok2 {
			return false
		}
		if tr, ok := s.pinch.Move(p1, p2); ok {
			s.display = tr
		}
		return true
	case source.TouchEnd:
		if !s.pinch.Active() {
			return false
		}
		// one finger lifting leaves the other in Touches; Find looks in both
		var points []gesture.Point
		for _, id := range s.pair {
			if p, ok := ev.Find(id); ok {
				points = append(points, p)
			}
		}
		if tr, ok := s.pinch.End(points...); ok {
			metrics.GesturesEnded.WithLabelValues("committed").Inc()
			s.log.Debug("pinch committed", zap.Float64("scale", tr.Scale), zap.Float64("rotation", tr.RotationDegrees))
		} else {
			metrics.GesturesEnded.WithLabelValues("skipped").Inc()
			s.log.Debug("pinch dropped without commit", zap.Int("points", len(points)))
		}
		s.display = s.pinch.Committed()
		return true
	case source.TouchCancel:
		if !s.pinch.Active() {
			return false
		}
		s.pinch.Cancel()
		metrics.GesturesEnded.WithLabelValues("skipped").Inc()
		s.display = s.pinch.Committed()
		return true
	}
	return false
}
