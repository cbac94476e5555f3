package render

import (
	"fmt"
	"io"
)

const (
	curveGlyph  = '•'
	markerGlyph = '●'
	tickGlyph   = '|'
	// tickEvery spaces the hour ticks: one per 6 curve columns.
	tickEvery = 6
)

// TextGrid is a character-cell canvas for terminal output. Cells are
// buffered until Flush, which writes the grid plus an hour-tick row to the
// underlying writer.
type TextGrid struct {
	width  int
	height int
	cells  [][]rune
	out    io.Writer
}

func NewTextGrid(width, height int, out io.Writer) *TextGrid {
	cells := make([][]rune, height)
	for i := range cells {
		row := make([]rune, width)
		for j := range row {
			row[j] = ' '
		}
		cells[i] = row
	}
	return &TextGrid{
		width:  width,
		height: height,
		cells:  cells,
		out:    out,
	}
}

func (g *TextGrid) Size() (int, int) {
	return g.width, g.height
}

// DrawLine traces a Bresenham segment with the curve glyph. The marker
// glyph is never overwritten so the now-marker survives later segments.
func (g *TextGrid) DrawLine(x0, y0, x1, y1 int) error {
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
		g.set(x0, y0, curveGlyph, false)
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

func (g *TextGrid) DrawPoint(x, y int) error {
	g.set(x, y, markerGlyph, true)
	return nil
}

func (g *TextGrid) DrawText(x, y int, s string) error {
	for i, r := range []rune(s) {
		g.set(x+i, y, r, true)
	}
	return nil
}

func (g *TextGrid) TextWidth(s string) int {
	return len([]rune(s))
}

// Flush writes the buffered grid. An hour-tick row goes between the curve
// area and the bottom label row, matching the terminal chart layout.
func (g *TextGrid) Flush() error {
	for y, row := range g.cells {
		if y == g.height-1 {
			if err := g.writeTickRow(); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(g.out, string(row)); err != nil {
			return err
		}
	}
	return nil
}

func (g *TextGrid) writeTickRow() error {
	ticks := make([]rune, g.width)
	for i := range ticks {
		if i%tickEvery == 0 {
			ticks[i] = tickGlyph
		} else {
			ticks[i] = ' '
		}
	}
	_, err := fmt.Fprintln(g.out, string(ticks))
	return err
}

func (g *TextGrid) set(x, y int, r rune, overwriteMarker bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	if !overwriteMarker && g.cells[y][x] == markerGlyph {
		return
	}
	g.cells[y][x] = r
}
