package textfit

import "github.com/ironsheep/poster-tools-mcp/internal/geom"

// Line is one positioned line of a laid out block.
//
// X is the left edge of the line and Y its vertical center, both in image
// pixels. Width is the measured advance at the block's size.
type Line struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
}

// Block is text laid out at a single size, centered in a rectangle.
type Block struct {
	Lines       []Line  `json:"lines"`
	Size        float64 `json:"size"`
	LineSpacing float64 `json:"line_spacing"`
	Height      float64 `json:"height"`
}

// Layout centers text in rect at size. Lines are stacked from
// rect center - Height/2 + spacing/2, one spacing apart, each centered
// horizontally. Empty text yields a block with no lines and zero height.
func Layout(text string, rect geom.Rect, size float64, m Measurer) Block {
	lines := SplitLines(text)
	if len(lines) == 0 || m == nil {
		return Block{Lines: []Line{}, Size: size}
	}

	spacing := m.LineSpacing(size)
	height := spacing * float64(len(lines))
	cx, cy := rect.Center()

	b := Block{
		Lines:       make([]Line, 0, len(lines)),
		Size:        size,
		LineSpacing: spacing,
		Height:      height,
	}
	y := cy - height/2 + spacing/2
	for _, l := range lines {
		w := m.Width(l, size)
		b.Lines = append(b.Lines, Line{Text: l, X: cx - w/2, Y: y, Width: w})
		y += spacing
	}
	return b
}
