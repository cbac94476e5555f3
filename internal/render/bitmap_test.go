package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcary/tide-tracker/internal/models"
)

func countBlack(b *Bitmap) int {
	img := b.Image()
	black := 0
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			if img.GrayAt(x, y).Y == 0 {
				black++
			}
		}
	}
	return black
}

func TestBitmapStartsWhite(t *testing.T) {
	b := NewBitmap(40, 30)
	assert.Zero(t, countBlack(b))

	width, height := b.Size()
	assert.Equal(t, 40, width)
	assert.Equal(t, 30, height)
}

func TestBitmapDrawLine(t *testing.T) {
	b := NewBitmap(40, 30)

	require.NoError(t, b.DrawLine(0, 10, 39, 10))

	img := b.Image()
	for x := 0; x < 40; x++ {
		assert.Equal(t, uint8(0), img.GrayAt(x, 10).Y, "x=%d", x)
		assert.Equal(t, uint8(0), img.GrayAt(x, 11).Y, "stroke row x=%d", x)
	}
	assert.Equal(t, color.Gray{Y: 255}, img.GrayAt(0, 9))
}

func TestBitmapDrawPoint(t *testing.T) {
	b := NewBitmap(40, 30)

	require.NoError(t, b.DrawPoint(20, 15))

	img := b.Image()
	assert.Equal(t, uint8(0), img.GrayAt(20, 15).Y)
	assert.Equal(t, uint8(0), img.GrayAt(20+markerRadius, 15).Y)
	assert.Equal(t, uint8(255), img.GrayAt(20+markerRadius+1, 15).Y)
}

func TestBitmapClipsOutOfBounds(t *testing.T) {
	b := NewBitmap(40, 30)

	require.NoError(t, b.DrawPoint(-10, -10))
	require.NoError(t, b.DrawLine(-5, -5, 50, 50))
	require.NoError(t, b.DrawText(38, 28, "clipped"))

	// The diagonal passes through the canvas, so something landed; the
	// point and most of the text did not.
	assert.Greater(t, countBlack(b), 0)
}

func TestBitmapText(t *testing.T) {
	b := NewBitmap(100, 30)

	require.NoError(t, b.DrawText(0, 0, "Now"))
	assert.Greater(t, countBlack(b), 0)

	assert.Greater(t, b.TextWidth("Now"), 0)
	assert.Greater(t, b.TextWidth("+12h"), b.TextWidth("h"))
}

func TestDrawBitmapTarget(t *testing.T) {
	b := NewBitmap(250, 122)

	require.NoError(t, New(13, 13).Draw(sinusoidSeries(models.SourceLive), b))
	require.NoError(t, b.Flush())

	assert.Greater(t, countBlack(b), 200, "curve plus labels cover many pixels")
}
