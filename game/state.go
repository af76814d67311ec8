package game

import "math"

// Ball is the player's position. Won is terminal for the session.
type Ball struct {
	X, Y float64
	Won  bool
}

// TargetZone is fixed for the lifetime of one session.
type TargetZone struct {
	X, Y   float64
	Radius float64
}

func (z TargetZone) DistanceTo(x, y float64) float64 {
	return math.Hypot(x-z.X, y-z.Y)
}

type ArrivalEvent struct {
	Ball     Ball
	Target   TargetZone
	Distance float64
}
