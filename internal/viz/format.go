package viz

import (
	"github.com/cockroachdb/apd/v3"
)

// Sig rounds d to digits significant digits for display. d is not
// modified. A digits value of 0 prints d in full.
func Sig(d *apd.Decimal, digits uint32) string {
	if d == nil {
		return "-"
	}
	if digits == 0 {
		return d.String()
	}

	c := apd.BaseContext.WithPrecision(digits)
	c.Rounding = apd.RoundHalfEven
	r := new(apd.Decimal)
	if _, err := c.Round(r, d); err != nil {
		return d.String()
	}
	return r.String()
}

// Float converts d for plotting. Values outside float64 range come back
// as zero.
func Float(d *apd.Decimal) float64 {
	f, err := d.Float64()
	if err != nil {
		return 0
	}
	return f
}
