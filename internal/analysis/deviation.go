package analysis

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/decsim/internal/dynamo"
)

// Deviation is the signed error approx.y - exact.y at grid point X.
type Deviation struct {
	X   *apd.Decimal
	Err *apd.Decimal
}

// Compare pairs approx and exact index by index. The caller guarantees the
// grids are aligned (same x0, h and n). Subtraction is exact: no digits are
// dropped here.
func Compare(approx, exact dynamo.Trajectory) ([]Deviation, error) {
	if approx.Len() != exact.Len() {
		return nil, fmt.Errorf("%w: approximate has %d points, exact has %d",
			dynamo.ErrLengthMismatch, approx.Len(), exact.Len())
	}

	exactMath := apd.BaseContext
	devs := make([]Deviation, approx.Len())
	for i := range approx {
		d := new(apd.Decimal)
		if _, err := exactMath.Sub(d, approx[i].Y, exact[i].Y); err != nil {
			return nil, fmt.Errorf("%w: point %d: %w", dynamo.ErrArithmetic, i, err)
		}
		devs[i] = Deviation{X: approx[i].X, Err: d}
	}
	return devs, nil
}

// Summary condenses a deviation series.
type Summary struct {
	MaxAbs *apd.Decimal
	MaxAt  *apd.Decimal
	Final  *apd.Decimal
}

// Summarize finds the largest absolute deviation and the final one. An
// empty series gives a zero Summary.
func Summarize(devs []Deviation) Summary {
	if len(devs) == 0 {
		return Summary{}
	}

	s := Summary{
		MaxAbs: new(apd.Decimal),
		MaxAt:  devs[0].X,
		Final:  devs[len(devs)-1].Err,
	}
	abs := new(apd.Decimal)
	for _, d := range devs {
		abs.Abs(d.Err)
		if abs.Cmp(s.MaxAbs) > 0 {
			s.MaxAbs.Set(abs)
			s.MaxAt = d.X
		}
	}
	return s
}
