package game

// Field coordinates are percentages of the playing field.
const (
	FieldMin    = 5.0
	FieldMax    = 95.0
	StartX      = 50.0
	StartY      = 50.0
	TargetMin   = 20.0 // keeps the target off the edges
	TargetMax   = 80.0
	Sensitivity = 0.5 // field percent per degree of tilt
	WinRadius   = 8.0
	KeyImpulse  = 2.0 // tilt-equivalent of one arrow keypress
)
