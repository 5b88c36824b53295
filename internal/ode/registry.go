package ode

import (
	"sort"

	"github.com/pkg/errors"
)

// DefaultIntegrator names the integrator used when none is configured.
const DefaultIntegrator = "rk45"

var integrators = map[string]func() Integrator{
	"rk45":  func() Integrator { return NewRK45() },
	"rk4":   func() Integrator { return NewRK4() },
	"euler": func() Integrator { return NewEuler() },
}

// NewIntegrator returns a fresh integrator by name.
func NewIntegrator(name string) (Integrator, error) {
	fn, ok := integrators[name]
	if !ok {
		return nil, errors.Errorf("unknown integrator: %s (available: %v)", name, IntegratorNames())
	}
	return fn(), nil
}

func IntegratorNames() []string {
	names := make([]string, 0, len(integrators))
	for name := range integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
