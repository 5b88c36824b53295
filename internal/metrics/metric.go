package metrics

import "math"

// Metric accumulates a scalar figure over the samples of a q(t) curve.
type Metric interface {
	Name() string
	Observe(t, q float64)
	Value() float64
	Reset()
}

// Saturation is the last observed q as a fraction of qe.
type Saturation struct {
	qe   float64
	last float64
	seen bool
}

func NewSaturation(qe float64) *Saturation {
	return &Saturation{qe: qe}
}

func (s *Saturation) Name() string { return "saturation" }

func (s *Saturation) Observe(t, q float64) {
	s.last = q
	s.seen = true
}

func (s *Saturation) Value() float64 {
	if !s.seen || s.qe == 0 {
		return 0
	}
	return s.last / s.qe
}

func (s *Saturation) Reset() {
	s.last = 0
	s.seen = false
}

// Monotonicity is the fraction of sample-to-sample moves that head toward qe
// or stay put. A well-resolved curve scores 1.
type Monotonicity struct {
	qe      float64
	prev    float64
	moves   int
	toward  int
	started bool
}

func NewMonotonicity(qe float64) *Monotonicity {
	return &Monotonicity{qe: qe}
}

func (m *Monotonicity) Name() string { return "monotonicity" }

func (m *Monotonicity) Observe(t, q float64) {
	if m.started {
		m.moves++
		if math.Abs(m.qe-q) <= math.Abs(m.qe-m.prev)+1e-12 {
			m.toward++
		}
	}
	m.prev = q
	m.started = true
}

func (m *Monotonicity) Value() float64 {
	if m.moves == 0 {
		return 1.0
	}
	return float64(m.toward) / float64(m.moves)
}

func (m *Monotonicity) Reset() {
	m.prev = 0
	m.moves = 0
	m.toward = 0
	m.started = false
}

// ClosedFormError tracks the largest deviation from a reference curve.
type ClosedFormError struct {
	ref   func(t float64) float64
	worst float64
}

func NewClosedFormError(ref func(t float64) float64) *ClosedFormError {
	return &ClosedFormError{ref: ref}
}

func (c *ClosedFormError) Name() string { return "closed_form_error" }

func (c *ClosedFormError) Observe(t, q float64) {
	c.worst = math.Max(c.worst, math.Abs(q-c.ref(t)))
}

func (c *ClosedFormError) Value() float64 { return c.worst }

func (c *ClosedFormError) Reset() { c.worst = 0 }

// Evaluate feeds every sample to each metric and returns the values by name.
func Evaluate(times, q []float64, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i, t := range times {
			m.Observe(t, q[i])
		}
		out[m.Name()] = m.Value()
	}
	return out
}
