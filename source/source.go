// Package source models the input streams the kernels consume: position fixes,
// motion readings, key presses and touch events. Every stream is reached
// through Subscribe, so sessions can be driven by real devices or by a Feed.
package source

import (
	"context"
	"errors"
	"time"

	"sensordemos/game"
	"sensordemos/geo"
	"sensordemos/gesture"
)

var (
	// ErrUnavailable means the platform has no such input at all.
	ErrUnavailable = errors.New("source unavailable")
	// ErrPermissionDenied means the user refused access to the input.
	ErrPermissionDenied = errors.New("source permission denied")
	// ErrTimeout means no usable sample arrived in time. The stream continues.
	ErrTimeout = errors.New("source timeout")
)

// Source delivers samples of type T to onSample and transient failures to
// onError until the subscription is cancelled. An error from Subscribe means
// the source cannot be used at all.
type Source[T any] interface {
	Subscribe(onSample func(T), onError func(error)) (Subscription, error)
}

type Subscription interface {
	Unsubscribe()
}

// Fix is one position reading.
type Fix struct {
	Point     geo.Point
	Accuracy  float64 // meters, 0 when unknown
	Timestamp time.Time
}

// MotionSample is one device-motion reading. Accel is nil when the device
// reported no acceleration data.
type MotionSample struct {
	Accel *game.Acceleration
}

type KeyPress struct {
	Key game.Key
}

type TouchPhase uint8

const (
	TouchStart TouchPhase = iota
	TouchMove
	TouchEnd
	TouchCancel
)

func (p TouchPhase) String() string {
	switch p {
	case TouchStart:
		return "start"
	case TouchMove:
		return "move"
	case TouchEnd:
		return "end"
	case TouchCancel:
		return "cancel"
	}
	return "unknown"
}

// Contact is one finger on the surface. ID stays the same for the life of the
// contact.
type Contact struct {
	ID int `json:"id"`
	gesture.Point
}

// TouchEvent carries the contacts still on the surface (Touches) and the ones
// that changed in this event (Changed). On TouchEnd, Changed holds the lifted
// contacts.
type TouchEvent struct {
	Phase   TouchPhase
	Touches []Contact
	Changed []Contact
}

// Find returns the position of contact id among Touches, then Changed.
func (e TouchEvent) Find(id int) (gesture.Point, bool) {
	for _, c := range e.Touches {
		if c.ID == id {
			return c.Point, true
		}
	}
	for _, c := range e.Changed {
		if c.ID == id {
			return c.Point, true
		}
	}
	return gesture.Point{}, false
}

// Permissioner is implemented by sources gated behind a user prompt.
type Permissioner interface {
	RequestPermission(ctx context.Context) (bool, error)
}
