package integrators

import (
	"context"
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/decsim/internal/dynamo"
)

// Adams-Bashforth 4-step weights, newest first, over a common
// denominator of 24.
var (
	ab4Weights = [4]*apd.Decimal{
		apd.New(55, 0),
		apd.New(-59, 0),
		apd.New(37, 0),
		apd.New(-9, 0),
	}
	ab4Denom = apd.New(24, 0)
)

// ab4Bootstrap is the number of single steps taken before the four-point
// history exists.
const ab4Bootstrap = 3

// AdamsBashforth4 is the explicit 4-step Adams-Bashforth method. Points
// 1..3 come from RK4; the derivatives of the last four points are kept in
// a sliding window so each later step evaluates f once.
type AdamsBashforth4 struct {
	bootstrap *RK4
}

func NewAdamsBashforth4() *AdamsBashforth4 {
	return &AdamsBashforth4{bootstrap: NewRK4()}
}

func (ab *AdamsBashforth4) Integrate(ctx context.Context, sys dynamo.System, cfg dynamo.Config) (dynamo.Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Steps < ab4Bootstrap {
		return nil, fmt.Errorf("%w: adams-bashforth needs at least %d, got %d", dynamo.ErrTooFewSteps, ab4Bootstrap, cfg.Steps)
	}

	traj := make(dynamo.Trajectory, 0, cfg.Steps+1)
	traj = append(traj, cfg.Origin())
	traj, err := ab.bootstrap.extend(ctx, sys, cfg, traj, ab4Bootstrap)
	if err != nil {
		return traj, err
	}

	// window[0] is f at the newest point, window[3] at the oldest.
	var window [4]*apd.Decimal
	for j := range window {
		p := traj[ab4Bootstrap-j]
		f, err := sys.Derive(cfg.Math, p.X, p.Y)
		if err != nil {
			return traj, &dynamo.StepError{Step: ab4Bootstrap, X: p.X, Wrapped: err}
		}
		window[j] = f
	}

	for i := ab4Bootstrap; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return traj, ctx.Err()
		default:
		}

		last := traj.Last()
		next, err := ab.step(cfg, last, &window)
		if err != nil {
			return traj, &dynamo.StepError{Step: i, X: last.X, Wrapped: err}
		}
		traj = append(traj, next)

		if i+1 == cfg.Steps {
			break
		}
		f, err := sys.Derive(cfg.Math, next.X, next.Y)
		if err != nil {
			return traj, &dynamo.StepError{Step: i + 1, X: next.X, Wrapped: err}
		}
		copy(window[1:], window[:3])
		window[0] = f
	}

	return traj, nil
}

func (ab *AdamsBashforth4) step(cfg dynamo.Config, p dynamo.Point, window *[4]*apd.Decimal) (dynamo.Point, error) {
	a := dynamo.NewArith(cfg.Math)

	sum := a.Mul(ab4Weights[0], window[0])
	for j := 1; j < len(window); j++ {
		sum = a.Add(sum, a.Mul(ab4Weights[j], window[j]))
	}
	y := a.Add(p.Y, a.Quo(a.Mul(cfg.H, sum), ab4Denom))
	x := a.Add(p.X, cfg.H)

	if err := a.Err(); err != nil {
		return dynamo.Point{}, err
	}
	return dynamo.Point{X: x, Y: y}, nil
}
