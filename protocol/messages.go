package protocol

import (
	"errors"
	"fmt"
	"time"

	"sensordemos/game"
	"sensordemos/geo"
	"sensordemos/gesture"
	"sensordemos/source"
)

type Position struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Accuracy  float64   `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"ts,omitempty"`
}

func (p Position) Fix() source.Fix {
	return source.Fix{Point: geo.Point{Lat: p.Lat, Lon: p.Lon}, Accuracy: p.Accuracy, Timestamp: p.Timestamp}
}

// PositionError codes follow the geolocation API: "timeout", "unavailable",
// "denied".
type PositionError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func (e PositionError) Err() error {
	var base error
	switch e.Code {
	case "timeout":
		base = source.ErrTimeout
	case "unavailable":
		base = source.ErrUnavailable
	case "denied":
		base = source.ErrPermissionDenied
	default:
		base = errors.New("position error")
	}
	if e.Message == "" {
		return base
	}
	return fmt.Errorf("%s: %w", e.Message, base)
}

type Accel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

type Motion struct {
	Accel *Accel `json:"accel,omitempty"`
}

func (m Motion) Sample() source.MotionSample {
	if m.Accel == nil {
		return source.MotionSample{}
	}
	return source.MotionSample{Accel: &game.Acceleration{X: m.Accel.X, Y: m.Accel.Y, Z: m.Accel.Z}}
}

// Key names are "up", "down", "left", "right" or the browser's "ArrowUp" style.
type Key struct {
	Key string `json:"key"`
}

func (k Key) Press() source.KeyPress {
	return source.KeyPress{Key: game.ParseKey(k.Key)}
}

type Contact struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type Touch struct {
	Phase   string    `json:"phase"` // start, move, end, cancel
	Touches []Contact `json:"touches,omitempty"`
	Changed []Contact `json:"changed,omitempty"`
}

func (t Touch) Event() (source.TouchEvent, error) {
	var phase source.TouchPhase
	switch t.Phase {
	case "start":
		phase = source.TouchStart
	case "move":
		phase = source.TouchMove
	case "end":
		phase = source.TouchEnd
	case "cancel":
		phase = source.TouchCancel
	default:
		return source.TouchEvent{}, fmt.Errorf("unknown touch phase %q", t.Phase)
	}
	return source.TouchEvent{Phase: phase, Touches: contacts(t.Touches), Changed: contacts(t.Changed)}, nil
}

func contacts(in []Contact) []source.Contact {
	if len(in) == 0 {
		return nil
	}
	out := make([]source.Contact, len(in))
	for i, c := range in {
		out[i] = source.Contact{ID: c.ID, Point: gesture.Point{X: c.X, Y: c.Y}}
	}
	return out
}

type Target struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (t Target) Point() geo.Point { return geo.Point{Lat: t.Lat, Lon: t.Lon} }

type ClearTarget struct{}

type Restart struct{}
