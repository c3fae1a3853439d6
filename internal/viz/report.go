package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/decsim/internal/analysis"
	"github.com/san-kum/decsim/internal/experiment"
)

// Digits controls display precision in reports.
type Digits struct {
	X   uint32
	Err uint32
}

// WriteDeviations prints one "err at <x>: <deviation>" line per grid point.
func WriteDeviations(w io.Writer, devs []analysis.Deviation, digits Digits) error {
	for _, d := range devs {
		if _, err := fmt.Fprintf(w, "err at %s: %s\n", Sig(d.X, digits.X), Sig(d.Err, digits.Err)); err != nil {
			return err
		}
	}
	return nil
}

// Summary renders the headline numbers of a run.
func Summary(res *experiment.Result, digits Digits) string {
	s := res.Summary
	lines := []string{
		Header(fmt.Sprintf("%s / %s", res.Problem, res.Method)),
		Field("points", fmt.Sprint(res.Approx.Len())),
		Field("derivative evals", fmt.Sprint(res.Evaluations)),
		Field("final deviation", Sig(s.Final, digits.Err)),
		Field("max |deviation|", Sig(s.MaxAbs, digits.Err)+" at x="+Sig(s.MaxAt, digits.X)),
		Field("elapsed", res.Elapsed.String()),
	}
	return Panel.Render(strings.Join(lines, "\n"))
}

// CompareTable prints one row per method with its final and largest
// deviation.
func CompareTable(w io.Writer, results []*experiment.Result, digits Digits) error {
	if _, err := fmt.Fprintf(w, "%-8s  %-20s  %-20s  %-8s\n", "method", "final_dev", "max_abs_dev", "evals"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 62)); err != nil {
		return err
	}
	for _, res := range results {
		_, err := fmt.Fprintf(w, "%-8s  %-20s  %-20s  %-8d\n",
			res.Method,
			Sig(res.Summary.Final, digits.Err),
			Sig(res.Summary.MaxAbs, digits.Err),
			res.Evaluations,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
