package proximity

import (
	"fmt"
	"math"

	"sensordemos/geo"
)

// AlertRadiusMeters is the distance under which an armed target raises an alert.
const AlertRadiusMeters = 200.0

// AlertEvent is raised once per armed target when the position gets close enough.
type AlertEvent struct {
	Target   geo.Point
	Position geo.Point
	Distance float64 // exact meters
	Meters   int     // rounded meters, what users are shown
}

func (e AlertEvent) Message() string {
	return fmt.Sprintf("You are %d meters from your destination!", e.Meters)
}

type Option func(*Tracker)

// WithAlertRadius overrides AlertRadiusMeters. Non-positive values are ignored.
func WithAlertRadius(meters float64) Option {
	return func(t *Tracker) {
		if meters > 0 {
			t.radius = meters
		}
	}
}

// Tracker watches positions against one user-chosen target. It is not safe for
// concurrent use; a session goroutine owns it.
type Tracker struct {
	target *geo.Point
	armed  bool
	radius float64
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{armed: true, radius: AlertRadiusMeters}
	for _, o := range opts {
		o(t)
	}
	return t
}

// SetTarget replaces the target and re-arms the alert.
func (t *Tracker) SetTarget(p geo.Point) {
	t.target = &p
	t.armed = true
}

// ClearTarget drops the target. A later SetTarget starts armed.
func (t *Tracker) ClearTarget() {
	t.target = nil
	t.armed = true
}

func (t *Tracker) Target() (geo.Point, bool) {
	if t.target == nil {
		return geo.Point{}, false
	}
	return *t.target, true
}

func (t *Tracker) Armed() bool { return t.armed }

func (t *Tracker) Radius() float64 { return t.radius }

// Update feeds the current position. Without a target, or for a position
// outside the coordinate ranges, it does nothing.
func (t *Tracker) Update(current geo.Point) (AlertEvent, bool) {
	if t.target == nil || !t.armed || !current.Valid() {
		return AlertEvent{}, false
	}
	d := geo.Distance(current, *t.target)
	if !(d < t.radius) {
		return AlertEvent{}, false
	}
	t.armed = false
	return AlertEvent{
		Target:   *t.target,
		Position: current,
		Distance: d,
		Meters:   int(math.Round(d)),
	}, true
}
