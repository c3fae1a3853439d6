package models

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/decsim/internal/dynamo"
)

// Gaussian is y' = k*x*y with exact solution y = y0 * e^(k*x^2/2), where
// y0 is the value at x = 0.
type Gaussian struct {
	Rate *apd.Decimal
}

func NewGaussian(rate int64) *Gaussian {
	return &Gaussian{Rate: apd.New(rate, 0)}
}

func (g *Gaussian) Name() string { return "gaussian" }

func (g *Gaussian) Derive(math *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
	a := dynamo.NewArith(math)
	d := a.Mul(a.Mul(g.Rate, x), y)
	return d, a.Err()
}

func (g *Gaussian) Exact(math *apd.Context, x, y0 *apd.Decimal) (*apd.Decimal, error) {
	a := dynamo.NewArith(math)
	power := a.Quo(a.Mul(g.Rate, a.Mul(x, x)), a.Int(2))
	d := a.Mul(y0, a.Exp(power))
	return d, a.Err()
}
