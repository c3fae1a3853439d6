// Package analysis compares approximate trajectories against a reference.
//
//   - [Compare]: signed deviation approx.y - exact.y per grid point
//   - [Summarize]: largest absolute deviation and the final deviation
//
// Both inputs to [Compare] must come from the same grid (x0, h, n); the
// pairing is by index, not by x.
//
//	devs, err := analysis.Compare(approx, exact)
//	if err != nil {
//	    // lengths differ
//	}
//	s := analysis.Summarize(devs)
package analysis
