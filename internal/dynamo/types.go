package dynamo

import (
	"context"
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// DefaultPrecision is the number of significant digits used when a run
// does not specify one.
const DefaultPrecision = 50

// Point is one grid sample. Its decimals must not be mutated once the
// point is part of a Trajectory.
type Point struct {
	X *apd.Decimal
	Y *apd.Decimal
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", p.X.Text('f'), p.Y.Text('f'))
}

// Trajectory holds points 0..n where point i sits at x0 + i*h.
type Trajectory []Point

func (t Trajectory) Len() int { return len(t) }

// Last returns the most recent point. It panics on an empty trajectory.
func (t Trajectory) Last() Point { return t[len(t)-1] }

func (t Trajectory) XAt(i int) *apd.Decimal { return t[i].X }

func (t Trajectory) YAt(i int) *apd.Decimal { return t[i].Y }

// System is the right-hand side of y' = f(x, y). Implementations must be
// pure: identical inputs give identical outputs and nothing is mutated.
type System interface {
	Derive(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error)

func (f SystemFunc) Derive(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
	return f(math, x, y)
}

// Solution evaluates the closed-form solution at x for the initial value y0.
type Solution interface {
	Exact(math *apd.Context, x, y0 *apd.Decimal) (*apd.Decimal, error)
}

// SolutionFunc adapts a plain function to Solution.
type SolutionFunc func(math *apd.Context, x, y0 *apd.Decimal) (*apd.Decimal, error)

func (f SolutionFunc) Exact(math *apd.Context, x, y0 *apd.Decimal) (*apd.Decimal, error) {
	return f(math, x, y0)
}

// Problem pairs a right-hand side with its exact solution.
type Problem interface {
	System
	Solution
	Name() string
}

type Integrator interface {
	Integrate(ctx context.Context, sys System, cfg Config) (Trajectory, error)
}

// Config is the run configuration. H and Steps are fixed for the run.
type Config struct {
	X0    *apd.Decimal
	Y0    *apd.Decimal
	H     *apd.Decimal
	Steps int
	Math  *apd.Context
}

// DefaultConfig reproduces the classic demo run: y(0) = 1, h = 0.05, n = 40.
func DefaultConfig() Config {
	return Config{
		X0:    apd.New(0, 0),
		Y0:    apd.New(1, 0),
		H:     apd.New(5, -2),
		Steps: 40,
		Math:  NewContext(DefaultPrecision, apd.RoundHalfEven),
	}
}

func (c Config) Validate() error {
	if c.X0 == nil || c.Y0 == nil || c.H == nil || c.Math == nil {
		return ErrMissingValue
	}
	if c.H.IsZero() {
		return ErrZeroStep
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w, got %d", ErrNegativeSteps, c.Steps)
	}
	return nil
}

// Origin returns point 0 with decimals owned by the trajectory.
func (c Config) Origin() Point {
	return Point{
		X: new(apd.Decimal).Set(c.X0),
		Y: new(apd.Decimal).Set(c.Y0),
	}
}

// Clone returns a config with its own decimal context.
func (c Config) Clone() Config {
	if c.Math != nil {
		m := *c.Math
		c.Math = &m
	}
	return c
}
