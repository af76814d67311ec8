package game

// Key is an arrow key, or KeyOther for anything else pressed.
type Key uint8

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "other"
	}
}

// ParseKey maps the names produced by String back to keys.
func ParseKey(s string) Key {
	switch s {
	case "up", "ArrowUp":
		return KeyUp
	case "down", "ArrowDown":
		return KeyDown
	case "left", "ArrowLeft":
		return KeyLeft
	case "right", "ArrowRight":
		return KeyRight
	default:
		return KeyOther
	}
}

// KeyTilt is the fixed impulse of one keypress. Non-arrow keys give a zero step.
func KeyTilt(k Key) (pitch, roll float64) {
	switch k {
	case KeyUp:
		return -KeyImpulse, 0
	case KeyDown:
		return KeyImpulse, 0
	case KeyLeft:
		return 0, -KeyImpulse
	case KeyRight:
		return 0, KeyImpulse
	}
	return 0, 0
}

// Acceleration is acceleration including gravity, in m/s².
type Acceleration struct {
	X, Y, Z float64
}

// MotionTilt maps a motion reading to tilt: Y is pitch, X is roll. A nil
// reading carries no data and should be skipped.
func MotionTilt(a *Acceleration) (pitch, roll float64, ok bool) {
	if a == nil {
		return 0, 0, false
	}
	return a.Y, a.X, true
}
