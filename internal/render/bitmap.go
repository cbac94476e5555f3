package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// markerRadius is the filled-circle radius of the now-marker, in pixels.
const markerRadius = 3

// Bitmap is a monochrome pixel-buffer canvas. It draws black on white into
// an image.Gray that a hardware sink can push to a panel. Out-of-bounds
// pixels are clipped, so its primitives never fail.
type Bitmap struct {
	img  *image.Gray
	face font.Face
}

func NewBitmap(width, height int) *Bitmap {
	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
	return &Bitmap{
		img:  img,
		face: basicfont.Face7x13,
	}
}

// Image exposes the backing buffer for the hardware sink.
func (b *Bitmap) Image() *image.Gray {
	return b.img
}

func (b *Bitmap) Size() (int, int) {
	bounds := b.img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// DrawLine draws a Bresenham segment with a 2-pixel stroke.
func (b *Bitmap) DrawLine(x0, y0, x1, y1 int) error {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.set(x0, y0)
		b.set(x0, y0+1) // second stroke row
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return nil
}

// DrawPoint draws a filled circle centered on (x, y).
func (b *Bitmap) DrawPoint(x, y int) error {
	for dy := -markerRadius; dy <= markerRadius; dy++ {
		for dx := -markerRadius; dx <= markerRadius; dx++ {
			if dx*dx+dy*dy <= markerRadius*markerRadius {
				b.set(x+dx, y+dy)
			}
		}
	}
	return nil
}

func (b *Bitmap) DrawText(x, y int, s string) error {
	d := font.Drawer{
		Dst:  b.img,
		Src:  image.NewUniform(color.Gray{Y: 0}),
		Face: b.face,
		Dot:  fixed.P(x, y+b.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
	return nil
}

func (b *Bitmap) TextWidth(s string) int {
	return font.MeasureString(b.face, s).Ceil()
}

// Flush is a no-op: the buffer is handed off via Image.
func (b *Bitmap) Flush() error {
	return nil
}

func (b *Bitmap) set(x, y int) {
	if image.Pt(x, y).In(b.img.Rect) {
		b.img.SetGray(x, y, color.Gray{Y: 0})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
