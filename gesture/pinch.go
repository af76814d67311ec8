package gesture

import "math"

// Point is a contact point in screen coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Transform is a scale plus a rotation in degrees.
type Transform struct {
	Scale           float64
	RotationDegrees float64
}

// Identity is the transform of an untouched element.
var Identity = Transform{Scale: 1}

func Distance(p1, p2 Point) float64 {
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// Angle returns the direction from p1 to p2 in degrees, in (-180, 180].
func Angle(p1, p2 Point) float64 {
	return math.Atan2(p2.Y-p1.Y, p2.X-p1.X) * 180 / math.Pi
}

type start struct {
	distance float64
	angle    float64
}

// Pinch tracks one two-finger pinch/rotate gesture at a time. Base values
// change only when a gesture ends.
type Pinch struct {
	base   Transform
	active *start
}

func NewPinch() *Pinch {
	return &Pinch{base: Identity}
}

func (p *Pinch) Active() bool { return p.active != nil }

// Committed returns the transform as of the last completed gesture.
func (p *Pinch) Committed() Transform { return p.base }

// Begin records the starting pose. Calling it during a gesture restarts that
// gesture from the new pose without committing.
func (p *Pinch) Begin(p1, p2 Point) {
	p.active = &start{distance: Distance(p1, p2), angle: Angle(p1, p2)}
}

// Move returns the preview transform for the current pose. It reports false
// when no gesture is active.
func (p *Pinch) Move(p1, p2 Point) (Transform, bool) {
	if p.active == nil {
		return Transform{}, false
	}
	return p.apply(p1, p2), true
}

// End commits the gesture from its final pose and returns the new committed
// transform. With fewer than two points, or when the gesture began with
// coincident fingers, the gesture is dropped without commit and End reports
// false.
func (p *Pinch) End(points ...Point) (Transform, bool) {
	if p.active == nil {
		return p.base, false
	}
	defer func() { p.active = nil }()

	if len(points) < 2 || p.active.distance == 0 {
		return p.base, false
	}
	p.base = p.apply(points[0], points[1])
	return p.base, true
}

// Cancel drops the active gesture without commit.
func (p *Pinch) Cancel() {
	p.active = nil
}

// Reset drops any gesture and returns to Identity.
func (p *Pinch) Reset() {
	p.active = nil
	p.base = Identity
}

func (p *Pinch) apply(p1, p2 Point) Transform {
	if p.active.distance == 0 {
		return p.base
	}
	return Transform{
		Scale:           p.base.Scale * (Distance(p1, p2) / p.active.distance),
		RotationDegrees: p.base.RotationDegrees + (Angle(p1, p2) - p.active.angle),
	}
}
