// Package kinetics simulates pseudo-second-order adsorption kinetics.
//
// The rate law dq/dt = k2 (qe - q)^2 is integrated from q(t_start) = q0 over
// a fixed horizon and sampled on an evenly spaced grid:
//
//	sol, err := kinetics.Simulate(ctx, kinetics.PseudoSecondOrder, kinetics.DefaultParams(), kinetics.DefaultOptions())
//	if sol != nil && sol.Success {
//		q, _ := sol.Final()
//	}
//
// Units follow the usual convention: q in mg/g, t in min, k2 in g/(mg·min).
// Simulate performs no physical range checks; see Params.Validate.
package kinetics
