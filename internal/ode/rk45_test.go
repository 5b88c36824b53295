package ode

import (
	"math"
	"testing"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) Dim() int { return 2 }

func (h *harmonicOscillator) Derive(x State, t float64) State {
	return State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	sys := &harmonicOscillator{}
	x := State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(sys, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integrator := NewRK45()
	sys := &harmonicOscillator{}
	x0 := State{1.0, 0.0}

	initialEnergy := sys.Energy(x0)
	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integrator.Step(sys, x, float64(i)*dt, dt)
	}

	drift := math.Abs(sys.Energy(x)-initialEnergy) / initialEnergy
	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	integrator := NewRK45()
	sys := &harmonicOscillator{}

	x, ratio, newDt := integrator.StepAdaptive(sys, State{1.0, 0.0}, 0, 0.1, 1e-6, 1e-9)

	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if ratio < 0 || math.IsNaN(ratio) {
		t.Errorf("StepAdaptive returned invalid error ratio: %f", ratio)
	}
	if newDt <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", newDt)
	}
}

func TestRK45_StepControl(t *testing.T) {
	r := NewRK45()

	tests := []struct {
		name     string
		errRatio float64
		check    func(next float64) bool
	}{
		{"zero error grows by max scale", 0, func(next float64) bool { return next == 1.0 }},
		{"small error grows", 1e-6, func(next float64) bool { return next > 0.1 && next <= 1.0 }},
		{"large error shrinks", 100, func(next float64) bool { return next < 0.1 && next >= 0.02 }},
		{"NaN shrinks by min scale", math.NaN(), func(next float64) bool { return math.Abs(next-0.02) < 1e-15 }},
		{"Inf shrinks by min scale", math.Inf(1), func(next float64) bool { return math.Abs(next-0.02) < 1e-15 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if next := r.nextStep(0.1, tt.errRatio); !tt.check(next) {
				t.Errorf("nextStep(0.1, %v) = %v", tt.errRatio, next)
			}
		})
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	sys := &harmonicOscillator{}

	x4 := State{1.0, 0.0}
	x45 := State{1.0, 0.0}
	dt := 0.1

	for i := 0; i < 100; i++ {
		x4 = rk4.Step(sys, x4, float64(i)*dt, dt)
		x45 = rk45.Step(sys, x45, float64(i)*dt, dt)
	}

	t.Logf("RK4 final: [%.6f, %.6f]", x4[0], x4[1])
	t.Logf("RK45 final: [%.6f, %.6f]", x45[0], x45[1])

	e4 := sys.Energy(x4)
	e45 := sys.Energy(x45)

	if math.Abs(e45-1.0) > math.Abs(e4-1.0) {
		t.Log("Warning: RK45 not more accurate than RK4 for this case")
	}
}
