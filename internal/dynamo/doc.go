// Package dynamo provides the core primitives for fixed-step integration of
// scalar first-order ODEs y' = f(x, y) in decimal arithmetic.
//
// The package defines:
//
//   - [Point] and [Trajectory]: grid samples (x, y) indexed 0..n
//   - [System]: the right-hand side f(x, y)
//   - [Solution]: a closed-form exact solution used as ground truth
//   - [Integrator]: a fixed-step method producing a Trajectory
//   - [Sample]: the exact trajectory sampler
//   - [Ensemble]: runs independent integrations concurrently
//
// # Example
//
//	cfg := dynamo.DefaultConfig()
//	approx, _ := integrators.NewRK4().Integrate(ctx, models.NewExponential(2), cfg)
//	exact, _ := dynamo.Sample(ctx, models.NewExponential(2), cfg)
//	devs, _ := analysis.Compare(approx, exact)
//
// # Precision
//
// Every run carries its own *apd.Context in [Config]. Nothing in this
// package reads or mutates process-wide precision, so runs with different
// precision can coexist.
//
// # Thread Safety
//
// Trajectories are immutable once returned. Integrators hold no state
// between calls, but a System may; [Ensemble] gives each member its own.
package dynamo
