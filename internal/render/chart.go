package render

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/lcary/tide-tracker/internal/models"
)

// WritePNG renders the series as a standalone PNG chart. This target is
// for sharing and debugging on a desktop, not for the panel, so it uses a
// full chart library instead of the monochrome canvas.
func WritePNG(series models.Series, width, height int, out io.Writer) error {
	if err := series.Validate(); err != nil {
		return fmt.Errorf("refusing to chart invalid series: %w", err)
	}

	xs := make([]float64, len(series.Samples))
	ys := make([]float64, len(series.Samples))
	for i, sample := range series.Samples {
		xs[i] = float64(sample.OffsetMinutes) / 60.0
		ys[i] = sample.HeightFt
	}

	title := "Tide height, next 24h window"
	if series.Offline() {
		title = "Tide height (OFFLINE approximation)"
	}

	graph := chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name: "Hours from now",
		},
		YAxis: chart.YAxis{
			Name: "Height (ft)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Tide",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	if now, ok := series.NowSample(); ok {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    "Now",
			XValues: []float64{0},
			YValues: []float64{now.HeightFt},
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
			},
		})
	}

	return graph.Render(chart.PNG, out)
}
