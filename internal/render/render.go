// Package render maps a tide series onto a drawing surface. The mapping
// algorithm is implemented once against the Canvas capability set; the
// bitmap and text-grid targets are two implementations of that interface,
// not two copies of the geometry.
package render

import (
	"fmt"

	"github.com/lcary/tide-tracker/internal/models"
)

const offlineLabel = "OFFLINE"

// Canvas is the capability set a render target provides. Coordinates are
// target units: pixels for the bitmap, character cells for the text grid.
// DrawText's y names the top of the text cell.
type Canvas interface {
	Size() (width, height int)
	DrawLine(x0, y0, x1, y1 int) error
	DrawPoint(x, y int) error
	DrawText(x, y int, s string) error
	TextWidth(s string) int
	Flush() error
}

// Renderer holds the vertical margins reserved for text chrome, in target
// units (one font height for the bitmap, one row for the text grid).
type Renderer struct {
	TopMargin    int
	BottomMargin int
}

func New(topMargin, bottomMargin int) *Renderer {
	return &Renderer{TopMargin: topMargin, BottomMargin: bottomMargin}
}

// Draw renders the curve, now-marker, axis labels and offline indicator.
// Primitive failures are best-effort: a failing segment does not abort the
// rest of the frame, but the call reports one overall outcome so the
// caller can skip pushing a broken frame to hardware. Draw never flushes;
// that is the caller's decision.
func (r *Renderer) Draw(series models.Series, canvas Canvas) error {
	if err := series.Validate(); err != nil {
		return fmt.Errorf("refusing to render invalid series: %w", err)
	}

	width, height := canvas.Size()
	usable := height - r.TopMargin - r.BottomMargin
	if width < 2 || usable < 2 {
		return fmt.Errorf("canvas %dx%d too small for margins %d/%d",
			width, height, r.TopMargin, r.BottomMargin)
	}

	min, max := series.HeightRange()
	heightRange := max - min
	if heightRange == 0 {
		// A flat series still needs a defined vertical scale.
		heightRange = 1.0
	}

	toY := func(heightFt float64) int {
		normalized := (heightFt - min) / heightRange
		return r.TopMargin + int((1-normalized)*float64(usable-1)+0.5)
	}
	toX := func(i int) int {
		return i * (width - 1) / (models.SampleCount - 1)
	}

	var firstErr error
	failures := 0
	attempt := func(err error) {
		if err != nil {
			failures++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	prevX, prevY := 0, 0
	for i, sample := range series.Samples {
		x, y := toX(i), toY(sample.HeightFt)
		if i > 0 {
			attempt(canvas.DrawLine(prevX, prevY, x, y))
		}
		prevX, prevY = x, y

		if sample.OffsetMinutes == 0 {
			attempt(canvas.DrawPoint(x, y))
			attempt(r.drawHeightLabel(canvas, x, y, sample.HeightFt))
		}
	}

	labelY := height - r.BottomMargin
	attempt(canvas.DrawText(0, labelY, "-12h"))
	attempt(canvas.DrawText((width-canvas.TextWidth("Now"))/2, labelY, "Now"))
	attempt(canvas.DrawText(width-canvas.TextWidth("+12h"), labelY, "+12h"))

	if series.Offline() {
		attempt(canvas.DrawText(width-canvas.TextWidth(offlineLabel), 0, offlineLabel))
	}

	if firstErr != nil {
		return fmt.Errorf("%d render primitives failed: %w", failures, firstErr)
	}
	return nil
}

// drawHeightLabel prints the current height next to the now-marker,
// nudged to stay inside the canvas.
func (r *Renderer) drawHeightLabel(canvas Canvas, markerX, markerY int, heightFt float64) error {
	label := fmt.Sprintf("%.1f ft", heightFt)
	width, height := canvas.Size()

	x := markerX + 3
	if x+canvas.TextWidth(label) > width {
		x = markerX - 3 - canvas.TextWidth(label)
	}
	if x < 0 {
		x = 0
	}

	y := markerY - r.TopMargin
	if y < r.TopMargin {
		y = markerY + 2
	}
	if y > height-r.BottomMargin-1 {
		y = height - r.BottomMargin - 1
	}

	return canvas.DrawText(x, y, label)
}
