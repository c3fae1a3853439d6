package models

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/decsim/internal/dynamo"
)

// Exponential is y' = k*y with exact solution y = y0 * e^(k*x), where y0
// is the value at x = 0.
type Exponential struct {
	Rate *apd.Decimal
}

func NewExponential(rate int64) *Exponential {
	return &Exponential{Rate: apd.New(rate, 0)}
}

func (e *Exponential) Name() string { return "exponential" }

func (e *Exponential) Derive(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
	a := dynamo.NewArith(math)
	d := a.Mul(e.Rate, y)
	return d, a.Err()
}

func (e *Exponential) Exact(math *apd.Context, x, y0 *apd.Decimal) (*apd.Decimal, error) {
	a := dynamo.NewArith(math)
	d := a.Mul(y0, a.Exp(a.Mul(e.Rate, x)))
	return d, a.Err()
}
