package ode

import (
	"math"
	"testing"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x State, t float64) State {
	return State{x[1], -x[0]}
}

func (s *simpleDynamics) Dim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	sys := &simpleDynamics{}
	integ := NewRK4()

	dt := 0.01
	steps := 100

	x := State{1.0, 0.0}
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	sys := &simpleDynamics{}
	x := NewEuler().Step(sys, State{1.0, 0.0}, 0, 0.1)

	if x[0] != 1.0 || x[1] != -0.1 {
		t.Errorf("Euler step: got %v, want [1 -0.1]", x)
	}
}
