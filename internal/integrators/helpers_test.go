package integrators

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/decsim/internal/dynamo"
)

// growth is y' = 2y with exact solution y0 * e^(2x).
type growth struct{}

func (growth) Derive(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
	a := dynamo.NewArith(math)
	d := a.Mul(a.Int(2), y)
	return d, a.Err()
}

func (growth) Exact(math *apd.Context, x, y0 *apd.Decimal) (*apd.Decimal, error) {
	a := dynamo.NewArith(math)
	d := a.Mul(y0, a.Exp(a.Mul(a.Int(2), x)))
	return d, a.Err()
}

// gaussian is y' = 2xy with exact solution y0 * e^(x^2).
type gaussian struct{}

func (gaussian) Derive(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
	a := dynamo.NewArith(math)
	d := a.Mul(a.Mul(a.Int(2), x), y)
	return d, a.Err()
}

func (gaussian) Exact(math *apd.Context, x, y0 *apd.Decimal) (*apd.Decimal, error) {
	a := dynamo.NewArith(math)
	d := a.Mul(y0, a.Exp(a.Mul(x, x)))
	return d, a.Err()
}

type counting struct {
	dynamo.System
	calls int
}

func (c *counting) Derive(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
	c.calls++
	return c.System.Derive(math, x, y)
}

func runConfig(x0, y0, h string, steps int) dynamo.Config {
	return dynamo.Config{
		X0:    mustDecimal(x0),
		Y0:    mustDecimal(y0),
		H:     mustDecimal(h),
		Steps: steps,
		Math:  dynamo.NewContext(dynamo.DefaultPrecision, apd.RoundHalfEven),
	}
}

func mustDecimal(s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// finalDeviation returns |approx.y - exact.y| at the last point.
func finalDeviation(approx, exact dynamo.Trajectory) *apd.Decimal {
	d := new(apd.Decimal)
	if _, err := apd.BaseContext.Sub(d, approx.Last().Y, exact.Last().Y); err != nil {
		panic(err)
	}
	return d.Abs(d)
}
