package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcary/tide-tracker/internal/models"
)

func sinusoidSeries(source models.Source) models.Series {
	samples := make([]models.Sample, 0, models.SampleCount)
	for _, m := range models.CanonicalOffsets() {
		samples = append(samples, models.Sample{
			OffsetMinutes: m,
			HeightFt:      5.0 + 3.0*math.Sin(float64(m)/720.0*2*math.Pi),
		})
	}
	return models.Series{Samples: samples, Source: source}
}

func flatSeries() models.Series {
	samples := make([]models.Sample, 0, models.SampleCount)
	for _, m := range models.CanonicalOffsets() {
		samples = append(samples, models.Sample{OffsetMinutes: m, HeightFt: 5.0})
	}
	return models.Series{Samples: samples, Source: models.SourceLive}
}

func drawToText(t *testing.T, series models.Series) string {
	t.Helper()
	var buf bytes.Buffer
	grid := NewTextGrid(73, 26, &buf)

	require.NoError(t, New(1, 1).Draw(series, grid))
	require.NoError(t, grid.Flush())
	return buf.String()
}

func TestDrawTextTarget(t *testing.T) {
	out := drawToText(t, sinusoidSeries(models.SourceLive))

	assert.Equal(t, 1, strings.Count(out, string(markerGlyph)), "exactly one now-marker")
	assert.Contains(t, out, string(curveGlyph))
	assert.Contains(t, out, "-12h")
	assert.Contains(t, out, "Now")
	assert.Contains(t, out, "+12h")
	assert.Contains(t, out, "ft")
	assert.NotContains(t, out, offlineLabel)

	// Tick row plus every grid row.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 27)
	assert.Contains(t, lines[25], string(tickGlyph))
}

func TestDrawOfflineIndicator(t *testing.T) {
	out := drawToText(t, sinusoidSeries(models.SourceFallback))
	assert.Contains(t, out, offlineLabel)
}

func TestDrawFlatSeries(t *testing.T) {
	// Zero height range must not divide by zero or push the curve off
	// the canvas.
	out := drawToText(t, flatSeries())

	assert.Contains(t, out, string(curveGlyph))

	// All curve glyphs sit on a single row.
	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.ContainsRune(line, curveGlyph) {
			rows++
		}
	}
	assert.Equal(t, 1, rows)
}

func TestDrawRejectsInvalidSeries(t *testing.T) {
	var buf bytes.Buffer
	grid := NewTextGrid(73, 26, &buf)

	series := sinusoidSeries(models.SourceLive)
	series.Samples = series.Samples[:10]

	err := New(1, 1).Draw(series, grid)
	require.Error(t, err)
	assert.Zero(t, buf.Len(), "nothing is drawn for an invalid series")
}

func TestDrawRejectsTinyCanvas(t *testing.T) {
	var buf bytes.Buffer
	grid := NewTextGrid(73, 3, &buf)

	err := New(1, 1).Draw(sinusoidSeries(models.SourceLive), grid)
	assert.Error(t, err)
}

func TestDrawCurveSpansWidth(t *testing.T) {
	out := drawToText(t, sinusoidSeries(models.SourceLive))

	lines := strings.Split(out, "\n")
	leftmost, rightmost := 73, -1
	for _, line := range lines {
		for x, r := range []rune(line) {
			if r == curveGlyph || r == markerGlyph {
				if x < leftmost {
					leftmost = x
				}
				if x > rightmost {
					rightmost = x
				}
			}
		}
	}
	assert.Equal(t, 0, leftmost)
	assert.Equal(t, 72, rightmost)
}

func TestDrawExtremesNearCanvasEdges(t *testing.T) {
	series := sinusoidSeries(models.SourceLive)
	out := drawToText(t, series)

	lines := strings.Split(out, "\n")
	top, bottom := -1, -1
	for y, line := range lines {
		if strings.ContainsRune(line, curveGlyph) || strings.ContainsRune(line, markerGlyph) {
			if top == -1 {
				top = y
			}
			bottom = y
		}
	}

	// With 1-cell margins and 24 usable rows, the curve's peak maps to
	// row 1 and its trough to row 24.
	assert.Equal(t, 1, top)
	assert.Equal(t, 24, bottom)
}
