package integrators

import (
	"context"

	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/decsim/internal/dynamo"
)

var (
	two = apd.New(2, 0)
	six = apd.New(6, 0)
)

// RK4 is the classic fourth-order Runge-Kutta method.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

// Step advances p by one step of size h.
func (r *RK4) Step(math *apd.Context, sys dynamo.System, p dynamo.Point, h *apd.Decimal) (dynamo.Point, error) {
	a := dynamo.NewArith(math)
	derive := func(x, y *apd.Decimal) *apd.Decimal {
		if a.Err() != nil {
			return new(apd.Decimal)
		}
		k, err := sys.Derive(math, x, y)
		if err != nil {
			a.Fail(err)
			return new(apd.Decimal)
		}
		return k
	}

	xMid := a.Add(p.X, a.Quo(h, two))
	xEnd := a.Add(p.X, h)

	k1 := derive(p.X, p.Y)
	k2 := derive(xMid, a.Add(p.Y, a.Quo(a.Mul(h, k1), two)))
	k3 := derive(xMid, a.Add(p.Y, a.Quo(a.Mul(h, k2), two)))
	k4 := derive(xEnd, a.Add(p.Y, a.Mul(h, k3)))

	sum := a.Add(a.Add(k1, a.Mul(two, k2)), a.Add(a.Mul(two, k3), k4))
	y := a.Add(p.Y, a.Quo(a.Mul(h, sum), six))

	if err := a.Err(); err != nil {
		return dynamo.Point{}, err
	}
	return dynamo.Point{X: xEnd, Y: y}, nil
}

func (r *RK4) Integrate(ctx context.Context, sys dynamo.System, cfg dynamo.Config) (dynamo.Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	traj := make(dynamo.Trajectory, 0, cfg.Steps+1)
	traj = append(traj, cfg.Origin())
	return r.extend(ctx, sys, cfg, traj, cfg.Steps)
}

// extend appends steps points to traj, starting from its last point.
func (r *RK4) extend(ctx context.Context, sys dynamo.System, cfg dynamo.Config, traj dynamo.Trajectory, steps int) (dynamo.Trajectory, error) {
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return traj, ctx.Err()
		default:
		}

		last := traj.Last()
		next, err := r.Step(cfg.Math, sys, last, cfg.H)
		if err != nil {
			return traj, &dynamo.StepError{Step: traj.Len() - 1, X: last.X, Wrapped: err}
		}
		traj = append(traj, next)
	}
	return traj, nil
}
