package session

import (
	"sensordemos/game"
	"sensordemos/geo"
	"sensordemos/source"
)

// SetTarget: user picked a destination
type SetTarget struct {
	Point geo.Point
}

// ClearTarget: user removed the destination
type ClearTarget struct{}

// Position: a fix from the position source
type Position struct {
	Fix source.Fix
}

// SourceFailure: a transient error reported by a source; no state changes
type SourceFailure struct {
	Source string
	Err    error
}

// Tilt: raw pitch/roll, already in degrees-equivalent
type Tilt struct {
	Pitch, Roll float64
}

// Key: one keypress from the keyboard fallback
type Key struct {
	Key game.Key
}

// Motion: one device-motion reading
type Motion struct {
	Sample source.MotionSample
}

// Touch: one touch event for the pinch gesture
type Touch struct {
	Event source.TouchEvent
}

// RestartGame: new random target, ball back to the start
type RestartGame struct{}

// Query: reply with the current snapshot
type Query struct {
	Reply chan<- Snapshot
}

type tiltSelected struct {
	input TiltInput
}
