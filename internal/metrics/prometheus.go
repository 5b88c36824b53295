package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/adsorb/internal/kinetics"
)

// Recorder holds the solver collectors on a private registry so a run can be
// dumped as a node-exporter textfile.
type Recorder struct {
	Registry *prometheus.Registry

	Steps        prometheus.Counter
	Rejected     prometheus.Counter
	Evaluations  prometheus.Counter
	LastStep     prometheus.Gauge
	Success      prometheus.Gauge
	FinalQ       prometheus.Gauge
	Duration     prometheus.Gauge
	CurveMetrics *prometheus.GaugeVec
}

func New() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adsorb_solver_steps_total",
			Help: "Accepted integration steps",
		}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adsorb_solver_rejected_steps_total",
			Help: "Rejected integration steps",
		}),
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adsorb_solver_rhs_evaluations_total",
			Help: "Rate law evaluations",
		}),
		LastStep: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adsorb_solver_last_step_size",
			Help: "Size of the last accepted step in minutes",
		}),
		Success: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adsorb_simulation_success",
			Help: "1 if the last simulation succeeded",
		}),
		FinalQ: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adsorb_simulation_final_q",
			Help: "Final amount adsorbed in mg/g",
		}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adsorb_simulation_duration_seconds",
			Help: "Wall-clock time of the last simulation",
		}),
		CurveMetrics: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "adsorb_curve_metric",
			Help: "Figures computed over the sampled curve",
		}, []string{"name"}),
	}

	r.Registry.MustRegister(
		r.Steps,
		r.Rejected,
		r.Evaluations,
		r.LastStep,
		r.Success,
		r.FinalQ,
		r.Duration,
		r.CurveMetrics,
	)
	return r
}

// Observe records the outcome of one simulation.
func (r *Recorder) Observe(sol *kinetics.Solution, elapsed time.Duration) {
	if sol == nil {
		r.Success.Set(0)
		r.Duration.Set(elapsed.Seconds())
		return
	}

	r.Steps.Add(float64(sol.Stats.Steps))
	r.Rejected.Add(float64(sol.Stats.Rejected))
	r.Evaluations.Add(float64(sol.Stats.Evaluations))
	r.LastStep.Set(sol.Stats.LastStep)
	r.Duration.Set(elapsed.Seconds())

	if sol.Success {
		r.Success.Set(1)
	} else {
		r.Success.Set(0)
	}
	if q, ok := sol.Final(); ok {
		r.FinalQ.Set(q)
	}
}

// ObserveCurve exports the values returned by Evaluate.
func (r *Recorder) ObserveCurve(values map[string]float64) {
	for name, v := range values {
		r.CurveMetrics.WithLabelValues(name).Set(v)
	}
}

func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.Registry); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
