package dynamo

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// NewContext returns a decimal context rounding to precision significant
// digits. Trapped conditions surface as errors.
func NewContext(precision uint32, rounding apd.Rounder) *apd.Context {
	c := apd.BaseContext.WithPrecision(precision)
	c.Rounding = rounding
	return c
}

// Arith evaluates decimal expressions under one context and keeps the
// first error. After an error every method returns zero and does no work.
type Arith struct {
	math *apd.Context
	err  error
}

func NewArith(math *apd.Context) *Arith {
	return &Arith{math: math}
}

func (a *Arith) Err() error { return a.err }

// Fail records err unless an earlier error is already held.
func (a *Arith) Fail(err error) {
	if a.err == nil && err != nil {
		a.err = err
	}
}

func (a *Arith) Int(v int64) *apd.Decimal {
	return apd.New(v, 0)
}

func (a *Arith) Add(x, y *apd.Decimal) *apd.Decimal {
	return a.apply("add", func(d *apd.Decimal) (apd.Condition, error) { return a.math.Add(d, x, y) })
}

func (a *Arith) Sub(x, y *apd.Decimal) *apd.Decimal {
	return a.apply("sub", func(d *apd.Decimal) (apd.Condition, error) { return a.math.Sub(d, x, y) })
}

func (a *Arith) Mul(x, y *apd.Decimal) *apd.Decimal {
	return a.apply("mul", func(d *apd.Decimal) (apd.Condition, error) { return a.math.Mul(d, x, y) })
}

func (a *Arith) Quo(x, y *apd.Decimal) *apd.Decimal {
	return a.apply("quo", func(d *apd.Decimal) (apd.Condition, error) { return a.math.Quo(d, x, y) })
}

func (a *Arith) Exp(x *apd.Decimal) *apd.Decimal {
	return a.apply("exp", func(d *apd.Decimal) (apd.Condition, error) { return a.math.Exp(d, x) })
}

func (a *Arith) apply(op string, fn func(d *apd.Decimal) (apd.Condition, error)) *apd.Decimal {
	d := new(apd.Decimal)
	if a.err != nil {
		return d
	}
	if _, err := fn(d); err != nil {
		a.err = fmt.Errorf("%w: %s: %w", ErrArithmetic, op, err)
	}
	return d
}
