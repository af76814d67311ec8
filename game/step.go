package game

import (
	"math"
	"math/rand/v2"
)

type Option func(*Navigator)

func WithSensitivity(s float64) Option {
	return func(n *Navigator) {
		if s > 0 {
			n.sensitivity = s
		}
	}
}

// WithWinRadius overrides the target's arrival radius.
func WithWinRadius(r float64) Option {
	return func(n *Navigator) {
		if r > 0 {
			n.target.Radius = r
		}
	}
}

// Navigator integrates tilt samples into a ball position.
type Navigator struct {
	ball        Ball
	target      TargetZone
	sensitivity float64
}

func NewNavigator(target TargetZone, opts ...Option) *Navigator {
	if target.Radius <= 0 {
		target.Radius = WinRadius
	}
	n := &Navigator{
		ball:        Ball{X: StartX, Y: StartY},
		target:      target,
		sensitivity: Sensitivity,
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// RandomTarget draws the target center uniformly in [TargetMin, TargetMax] on
// each axis. Only call it when a session starts.
func RandomTarget(r *rand.Rand) TargetZone {
	span := TargetMax - TargetMin
	return TargetZone{
		X:      TargetMin + r.Float64()*span,
		Y:      TargetMin + r.Float64()*span,
		Radius: WinRadius,
	}
}

func (n *Navigator) Ball() Ball           { return n.ball }
func (n *Navigator) Target() TargetZone   { return n.target }
func (n *Navigator) Sensitivity() float64 { return n.sensitivity }

// ValidTilt reports whether both components are finite. Other samples do not
// move the ball.
func ValidTilt(pitch, roll float64) bool {
	return finite(pitch) && finite(roll)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Step moves the ball by one tilt sample. Roll drives X and pitch drives Y.
// Once the target is reached every later call is a no-op, and so is a sample
// that fails ValidTilt.
func (n *Navigator) Step(pitch, roll float64) (ArrivalEvent, bool) {
	if n.ball.Won || !ValidTilt(pitch, roll) {
		return ArrivalEvent{}, false
	}

	n.ball.X = clamp(n.ball.X+roll*n.sensitivity, FieldMin, FieldMax)
	n.ball.Y = clamp(n.ball.Y+pitch*n.sensitivity, FieldMin, FieldMax)

	d := n.target.DistanceTo(n.ball.X, n.ball.Y)
	if !(d < n.target.Radius) {
		return ArrivalEvent{}, false
	}
	n.ball.Won = true
	return ArrivalEvent{Ball: n.ball, Target: n.target, Distance: d}, true
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
