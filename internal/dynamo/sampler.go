package dynamo

import (
	"context"
)

// Sample evaluates sol at every grid point, including x0. x advances by
// repeated addition of h under cfg.Math, the same way the integrators
// advance, so point i of the result lines up digit for digit with point i
// of any integrator run using cfg.
func Sample(ctx context.Context, sol Solution, cfg Config) (Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := NewArith(cfg.Math)
	traj := make(Trajectory, 0, cfg.Steps+1)

	x := cfg.Origin().X
	for i := 0; i <= cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return traj, ctx.Err()
		default:
		}

		if i > 0 {
			next := a.Add(x, cfg.H)
			if err := a.Err(); err != nil {
				return traj, &StepError{Step: i, X: x, Wrapped: err}
			}
			x = next
		}
		y, err := sol.Exact(cfg.Math, x, cfg.Y0)
		if err != nil {
			return traj, &StepError{Step: i, X: x, Wrapped: err}
		}
		traj = append(traj, Point{X: x, Y: y})
	}

	return traj, nil
}
