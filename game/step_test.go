package game

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestStepMovesBallBySensitivity(t *testing.T) {
	n := NewNavigator(TargetZone{X: 20, Y: 20})

	if _, won := n.Step(4, -6); won {
		t.Fatalf("unexpected arrival")
	}
	b := n.Ball()
	if b.X != 47 || b.Y != 52 {
		t.Fatalf("ball after step = (%f,%f), want (47,52)", b.X, b.Y)
	}
}

func TestStepClampsToField(t *testing.T) {
	n := NewNavigator(TargetZone{X: 80, Y: 80})

	n.Step(-1e6, -1e6)
	b := n.Ball()
	if b.X != FieldMin || b.Y != FieldMin {
		t.Fatalf("ball = (%f,%f), want clamped to %f", b.X, b.Y, FieldMin)
	}

	// clamp truncates: the excess is lost, one step back leaves the edge
	n.Step(2, 2)
	b = n.Ball()
	if b.X != FieldMin+1 || b.Y != FieldMin+1 {
		t.Fatalf("ball = (%f,%f), want (%f,%f)", b.X, b.Y, FieldMin+1, FieldMin+1)
	}
}

func TestStepStaysInBoundsForRandomInput(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	// target out of reach so the ball keeps moving
	n := NewNavigator(TargetZone{X: 500, Y: 500, Radius: 1})
	for i := 0; i < 10000; i++ {
		pitch := (r.Float64() - 0.5) * math.Pow(10, float64(r.IntN(6)))
		roll := (r.Float64() - 0.5) * math.Pow(10, float64(r.IntN(6)))
		n.Step(pitch, roll)
		b := n.Ball()
		if b.X < FieldMin || b.X > FieldMax || b.Y < FieldMin || b.Y > FieldMax {
			t.Fatalf("step %d left the field: (%f,%f)", i, b.X, b.Y)
		}
	}
}

func TestStepArrivalIsTerminal(t *testing.T) {
	n := NewNavigator(TargetZone{X: 50, Y: 50 - 1e-9, Radius: 8})

	ev, won := n.Step(-10, 0)
	if !won {
		t.Fatalf("expected arrival")
	}
	if n.Ball().Y != 45 {
		t.Fatalf("y = %f, want 45", n.Ball().Y)
	}
	if math.Abs(ev.Distance-5) > 1e-6 {
		t.Fatalf("arrival distance = %f, want 5", ev.Distance)
	}

	before := n.Ball()
	for i := 0; i < 10; i++ {
		if _, again := n.Step(30, -30); again {
			t.Fatalf("arrival fired twice")
		}
	}
	if n.Ball() != before {
		t.Fatalf("ball moved after winning: %+v -> %+v", before, n.Ball())
	}
	if !n.Ball().Won {
		t.Fatalf("won flag cleared")
	}
}

func TestStepArrivalRadiusIsExclusive(t *testing.T) {
	n := NewNavigator(TargetZone{X: 58, Y: 50, Radius: 8})
	if _, won := n.Step(0, 0); won {
		t.Fatalf("arrived at exactly the radius")
	}
	if _, won := n.Step(0, 0.2); !won {
		t.Fatalf("expected arrival just inside the radius")
	}
}

func TestOptions(t *testing.T) {
	n := NewNavigator(TargetZone{X: 20, Y: 20}, WithSensitivity(1), WithWinRadius(3))
	if n.Sensitivity() != 1 {
		t.Fatalf("sensitivity = %f, want 1", n.Sensitivity())
	}
	if n.Target().Radius != 3 {
		t.Fatalf("radius = %f, want 3", n.Target().Radius)
	}

	d := NewNavigator(TargetZone{X: 20, Y: 20}, WithSensitivity(0), WithWinRadius(-1))
	if d.Sensitivity() != Sensitivity || d.Target().Radius != WinRadius {
		t.Fatalf("non-positive options should be ignored: %f %f", d.Sensitivity(), d.Target().Radius)
	}
}

func TestRandomTargetRange(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 9))
	for i := 0; i < 1000; i++ {
		z := RandomTarget(r)
		if z.X < TargetMin || z.X > TargetMax || z.Y < TargetMin || z.Y > TargetMax {
			t.Fatalf("target out of range: %+v", z)
		}
		if z.Radius != WinRadius {
			t.Fatalf("radius = %f, want %f", z.Radius, WinRadius)
		}
	}
}

func TestStepIgnoresNonFiniteTilt(t *testing.T) {
	n := NewNavigator(TargetZone{X: 50, Y: 48})

	for _, tilt := range [][2]float64{
		{math.NaN(), 0},
		{0, math.NaN()},
		{math.Inf(1), 0},
		{0, math.Inf(-1)},
	} {
		if _, won := n.Step(tilt[0], tilt[1]); won {
			t.Fatalf("step(%v, %v) reported arrival", tilt[0], tilt[1])
		}
		if b := n.Ball(); b != (Ball{X: StartX, Y: StartY}) {
			t.Fatalf("step(%v, %v) moved ball to %+v", tilt[0], tilt[1], b)
		}
	}

	// a real sample afterwards still works
	n.Step(-4, 4)
	b := n.Ball()
	if b.X != 52 || b.Y != 48 || !b.Won {
		t.Fatalf("ball = %+v, want (52,48) and won", b)
	}
}

func TestValidTilt(t *testing.T) {
	if !ValidTilt(0, -3) {
		t.Fatalf("finite tilt rejected")
	}
	if ValidTilt(math.NaN(), 0) || ValidTilt(0, math.Inf(1)) {
		t.Fatalf("non-finite tilt accepted")
	}
}

func TestClampNaNGoesToLowerBound(t *testing.T) {
	if got := clamp(math.NaN(), FieldMin, FieldMax); got != FieldMin {
		t.Fatalf("clamp(NaN) = %f, want %f", got, FieldMin)
	}
}
