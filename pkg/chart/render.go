package chart

import (
	"math"

	plot "github.com/chriskim06/drawille-go"
)

// Colors picks the canvas line palette for one render.
type Colors struct {
	Actual    plot.Color
	Reference plot.Color
}

// DefaultColors returns a palette readable on the given background.
func DefaultColors(darkBackground bool) Colors {
	if darkBackground {
		return Colors{Actual: plot.Red, Reference: plot.DimGray}
	}
	return Colors{Actual: plot.Black, Reference: plot.LightGray}
}

// Render draws the series into a braille canvas of width by height cells
// and returns it as a multi-line string. The reference line is filled
// first so the actual line draws over it. Empty series or degenerate
// sizes render as an empty string.
func Render(s *Series, width, height int, colors Colors) string {
	if s.Empty() || width < 2 || height < 1 {
		return ""
	}
	n := len(s.Points)

	canvas := plot.NewCanvas(width, height)
	canvas.NumDataPoints = n
	canvas.ShowAxis = false

	actual := make([]float64, n)
	for i, pt := range s.Points {
		actual[i] = axisValue(float64(pt.Count), s.LogScale)
	}

	data := make([][]float64, 0, 2)
	lineColors := make([]plot.Color, 0, 2)
	if len(s.Zipf) == n {
		ref := make([]float64, n)
		for i, v := range s.Zipf {
			ref[i] = axisValue(v, s.LogScale)
		}
		data = append(data, ref)
		lineColors = append(lineColors, colors.Reference)
	}
	data = append(data, actual)
	lineColors = append(lineColors, colors.Actual)

	canvas.LineColors = lineColors
	canvas.Fill(data)
	return canvas.String()
}

// CursorColumn maps the cursor's point index to a character column of a
// width-cell canvas, for the caret row drawn beneath the chart. Returns
// -1 when nothing is selected.
func (s *Series) CursorColumn(width int) int {
	if s.CursorIdx < 0 || width < 1 {
		return -1
	}
	n := len(s.Points)
	if n <= 1 {
		return 0
	}
	col := s.CursorIdx * (width - 1) / (n - 1)
	if col >= width {
		col = width - 1
	}
	return col
}

// axisValue maps a raw count onto the y axis, through log10 when the log
// scale is active. Counts below one are pinned so the log never goes
// negative.
func axisValue(v float64, logScale bool) float64 {
	if !logScale {
		return v
	}
	if v < 1 {
		v = 1
	}
	return math.Log10(v)
}
