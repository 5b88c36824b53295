package kinetics_test

import (
	"context"
	"fmt"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/adsorb/internal/kinetics"
	"github.com/san-kum/adsorb/internal/ode"
)

var _ = Describe("Simulate", func() {
	var (
		ctx    context.Context
		params kinetics.Params
	)

	BeforeEach(func() {
		ctx = context.Background()
		params = kinetics.DefaultParams()
	})

	Context("with the reference parameters", func() {
		var sol *kinetics.Solution

		BeforeEach(func() {
			var err error
			sol, err = kinetics.Simulate(ctx, kinetics.PseudoSecondOrder, params, kinetics.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
		})

		It("succeeds", func() {
			Expect(sol.Success).To(BeTrue())
			Expect(sol.Message).NotTo(BeEmpty())
		})

		It("covers the whole span with exactly the requested samples", func() {
			Expect(sol.Times).To(HaveLen(500))
			Expect(sol.Q).To(HaveLen(500))
			Expect(sol.Times[0]).To(Equal(0.0))
			Expect(sol.Times[499]).To(Equal(100.0))
			for i := 1; i < len(sol.Times); i++ {
				Expect(sol.Times[i]).To(BeNumerically(">", sol.Times[i-1]))
			}
		})

		It("is monotonically non-decreasing", func() {
			for i := 1; i < len(sol.Q); i++ {
				Expect(sol.Q[i]).To(BeNumerically(">=", sol.Q[i-1]), "sample %d", i)
			}
		})

		It("stays below the equilibrium capacity", func() {
			for i, q := range sol.Q {
				Expect(q).To(BeNumerically("<", params.Qe), "sample %d", i)
			}
		})

		It("matches the closed-form solution", func() {
			for i, t := range sol.Times {
				want := 50 - 1/(0.01*t+1.0/50)
				Expect(math.Abs(sol.Q[i]-want)).To(BeNumerically("<=", 1e-3*math.Abs(want)+1e-9), "t=%v", t)
			}
			Expect(sol.MaxAbsError(params)).To(BeNumerically("<", 1e-3))
		})

		It("ends at 49.02 mg/g", func() {
			final, ok := sol.Final()
			Expect(ok).To(BeTrue())
			Expect(final).To(BeNumerically("~", 50-1/1.02, 1e-5))
			Expect(fmt.Sprintf("%.2f", final)).To(Equal("49.02"))
		})

		It("reports solver statistics", func() {
			Expect(sol.Stats.Steps).To(BeNumerically(">=", 499))
			Expect(sol.Stats.Rejected).To(BeNumerically(">=", 0))
			Expect(sol.Stats.Evaluations).To(BeNumerically(">", 6*sol.Stats.Steps))
		})
	})

	Context("when the adsorbent starts at equilibrium", func() {
		It("stays constant at qe", func() {
			params.Q0 = params.Qe
			sol, err := kinetics.Simulate(ctx, kinetics.PseudoSecondOrder, params, kinetics.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.Success).To(BeTrue())
			for _, q := range sol.Q {
				Expect(q).To(BeNumerically("~", params.Qe, 1e-12))
			}
		})
	})

	Context("with a shifted time origin", func() {
		It("starts the curve at t_start", func() {
			params.TStart, params.TEnd, params.Samples = 5, 25, 41
			sol, err := kinetics.Simulate(ctx, kinetics.PseudoSecondOrder, params, kinetics.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.Times[0]).To(Equal(5.0))
			Expect(sol.Q[0]).To(Equal(0.0))
			Expect(sol.MaxAbsError(params)).To(BeNumerically("<", 1e-3))
		})
	})

	DescribeTable("fixed-step integrators track the closed form",
		func(name string, tol float64) {
			integ, err := ode.NewIntegrator(name)
			Expect(err).NotTo(HaveOccurred())

			opts := kinetics.DefaultOptions()
			opts.Integrator = integ

			sol, err := kinetics.Simulate(ctx, kinetics.PseudoSecondOrder, params, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.MaxAbsError(params)).To(BeNumerically("<", tol))
		},
		Entry("rk4", "rk4", 1e-6),
		Entry("euler", "euler", 0.5),
	)

	DescribeTable("fails when the rate law cannot be evaluated",
		func(edit func(*kinetics.Params)) {
			edit(&params)
			sol, err := kinetics.Simulate(ctx, kinetics.PseudoSecondOrder, params, kinetics.DefaultOptions())
			Expect(err).To(MatchError(ode.ErrIntegration))
			Expect(sol).NotTo(BeNil())
			Expect(sol.Success).To(BeFalse())
			Expect(sol.Message).NotTo(BeEmpty())
		},
		Entry("NaN rate constant", func(p *kinetics.Params) { p.K2 = math.NaN() }),
		Entry("infinite rate constant", func(p *kinetics.Params) { p.K2 = math.Inf(1) }),
		Entry("NaN capacity", func(p *kinetics.Params) { p.Qe = math.NaN() }),
	)

	It("returns no solution when the grid cannot be built", func() {
		params.Samples = 1
		sol, err := kinetics.Simulate(ctx, kinetics.PseudoSecondOrder, params, kinetics.DefaultOptions())
		Expect(err).To(MatchError(ode.ErrInvalidGrid))
		Expect(sol).To(BeNil())
	})

	It("accepts any rate law", func() {
		zero := func(t, q, k2, qe float64) float64 { return 0 }
		sol, err := kinetics.Simulate(ctx, zero, params, kinetics.Options{Solver: ode.DefaultConfig()})
		Expect(err).NotTo(HaveOccurred())
		final, _ := sol.Final()
		Expect(final).To(Equal(params.Q0))
	})
})
