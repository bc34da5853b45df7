package integrators

import (
	"math"
	"testing"

	"orbitsearch/internal/dynamo"
	"orbitsearch/internal/physics"
)

func TestRK4Accuracy(t *testing.T) {
	sys := physics.NewRotation()
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, dt)
	}

	tEnd := float64(steps) * dt
	expectedX := math.Cos(tEnd)
	expectedY := math.Sin(tEnd)

	if math.Abs(x[0]-expectedX) > 1e-6 {
		t.Errorf("x error too large: got %.8f, expected %.8f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedY) > 1e-6 {
		t.Errorf("y error too large: got %.8f, expected %.8f", x[1], expectedY)
	}
}

func TestRK4ConvergenceOrder(t *testing.T) {
	sys := physics.NewDecay(1)
	integ := NewRK4()

	errAt := func(dt float64) float64 {
		x := dynamo.State{1.0}
		steps := int(math.Round(1.0 / dt))
		for i := 0; i < steps; i++ {
			x = integ.Step(sys, x, dt)
		}
		return math.Abs(x[0] - math.Exp(-1))
	}

	coarse := errAt(0.1)
	fine := errAt(0.05)
	// Fourth order: halving dt should shrink the error about 16x.
	if ratio := coarse / fine; ratio < 10 {
		t.Errorf("convergence ratio %.1f, want ~16", ratio)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	sys := physics.NewRotation()
	integ := NewEuler()

	x := dynamo.State{1.0, 0.0}
	dt := 0.001
	for i := 0; i < 1000; i++ {
		x = integ.Step(sys, x, dt)
	}
	if math.Abs(x[0]-math.Cos(1)) > 1e-2 {
		t.Errorf("euler drifted too far: got %.4f, expected %.4f", x[0], math.Cos(1))
	}
}
