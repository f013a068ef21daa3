package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const halfBlock = '▀'

// asciiRamp orders glyphs from empty to dense.
const asciiRamp = " .:-=+*#%@"

// Cell is one terminal character: two stacked pixels, or text.
type Cell struct {
	Top    colorful.Color
	Bottom colorful.Color
	Text   rune // Non-zero for overlaid text
	Fg     colorful.Color
	Bg     colorful.Color
}

// Canvas is a grid of terminal cells built from a frame.
type Canvas struct {
	Cols  int
	Rows  int
	Cells []Cell
	bg    colorful.Color
}

// Canvas folds pixel rows in pairs into terminal cells. An odd final pixel
// row is paired with the background.
func (f *Frame) Canvas(bg colorful.Color) *Canvas {
	rows := (f.Height + 1) / 2
	c := &Canvas{Cols: f.Width, Rows: rows, Cells: make([]Cell, f.Width*rows), bg: bg}
	for y := 0; y < rows; y++ {
		for x := 0; x < f.Width; x++ {
			bottom := bg
			if 2*y+1 < f.Height {
				bottom = f.Pix[(2*y+1)*f.Width+x]
			}
			c.Cells[y*f.Width+x] = Cell{Top: f.Pix[2*y*f.Width+x], Bottom: bottom}
		}
	}
	return c
}

// At returns the cell at (col, row).
func (c *Canvas) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return Cell{}
	}
	return c.Cells[row*c.Cols+col]
}

// PutText writes s starting at (col, row), clipping at the right edge.
func (c *Canvas) PutText(col, row int, s string, fg, bg colorful.Color) {
	if row < 0 || row >= c.Rows {
		return
	}
	x := col
	for _, r := range s {
		if x >= c.Cols {
			return
		}
		if x >= 0 {
			c.Cells[row*c.Cols+x] = Cell{Text: r, Fg: fg, Bg: bg}
		}
		x++
	}
}

// Text returns the canvas as plain text lines, without styling. Pixel cells
// map to a luminance ramp measured against the background.
func (c *Canvas) Text() string {
	var b strings.Builder
	_, _, bgL := c.bg.Hcl()
	for y := 0; y < c.Rows; y++ {
		for x := 0; x < c.Cols; x++ {
			cell := c.Cells[y*c.Cols+x]
			if cell.Text != 0 {
				b.WriteRune(cell.Text)
				continue
			}
			b.WriteByte(asciiGlyph(cell, bgL))
		}
		if y < c.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func asciiGlyph(cell Cell, bgL float64) byte {
	_, _, lt := cell.Top.Hcl()
	_, _, lb := cell.Bottom.Hcl()
	d := (abs(lt-bgL) + abs(lb-bgL)) / 2
	idx := int(d * float64(len(asciiRamp)-1) * 1.5)
	if idx >= len(asciiRamp) {
		idx = len(asciiRamp) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return asciiRamp[idx]
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Styled renders the canvas with truecolor half blocks.
func (c *Canvas) Styled() string {
	var b strings.Builder
	styles := make(map[[2]string]lipgloss.Style)
	style := func(fg, bg colorful.Color) lipgloss.Style {
		key := [2]string{fg.Clamped().Hex(), bg.Clamped().Hex()}
		if s, ok := styles[key]; ok {
			return s
		}
		s := lipgloss.NewStyle().Foreground(lipgloss.Color(key[0])).Background(lipgloss.Color(key[1]))
		styles[key] = s
		return s
	}

	for y := 0; y < c.Rows; y++ {
		for x := 0; x < c.Cols; x++ {
			cell := c.Cells[y*c.Cols+x]
			switch {
			case cell.Text != 0:
				b.WriteString(style(cell.Fg, cell.Bg).Render(string(cell.Text)))
			case cell.Top.Hex() == cell.Bottom.Hex():
				b.WriteString(style(cell.Top, cell.Bottom).Render(" "))
			default:
				b.WriteString(style(cell.Top, cell.Bottom).Render(string(halfBlock)))
			}
		}
		if y < c.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
