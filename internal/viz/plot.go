package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/decsim/internal/analysis"
)

const (
	plotWidth  = 80
	plotHeight = 12
)

// DeviationPlot draws one or more deviation series against the grid index.
func DeviationPlot(caption string, series ...[]analysis.Deviation) string {
	data := make([][]float64, 0, len(series))
	for _, devs := range series {
		if len(devs) == 0 {
			continue
		}
		data = append(data, deviationFloats(devs))
	}
	if len(data) == 0 {
		return ""
	}

	opts := []asciigraph.Option{
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	}
	if len(data) > 1 {
		opts = append(opts, asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red, asciigraph.Green))
	}
	return asciigraph.PlotMany(data, opts...)
}

func deviationFloats(devs []analysis.Deviation) []float64 {
	data := make([]float64, len(devs))
	for i, d := range devs {
		data[i] = Float(d.Err)
	}
	return data
}
