package placement

import (
	"github.com/ironsheep/poster-tools-mcp/internal/geom"
)

// Default minimum candidate size in pixels.
const (
	DefaultMinWidth  = 200
	DefaultMinHeight = 100
)

// Candidate is an empty rectangular region eligible for text placement.
type Candidate struct {
	Rect   geom.Rect `json:"rect"`
	Weight float64   `json:"weight"`
	Area   float64   `json:"area"`

	// Grid extent the candidate was found at, in cells.
	CellX int `json:"cell_x"`
	CellY int `json:"cell_y"`
	CellW int `json:"cell_w"`
	CellH int `json:"cell_h"`
}

// Search scans the grid for empty rectangles at least minWidth x minHeight
// pixels and returns them unranked, in discovery order.
//
// The scan is row-major. From each empty origin the rectangle first grows
// right as far as the row stays empty, then grows down for as long as every
// cell under that fixed width is empty. This greedy shape is not always the
// largest rectangle available at the origin. Accepted rectangles are marked
// claimed so their cells never seed another candidate.
func (g *Grid) Search(minWidth, minHeight float64) []Candidate {
	cellW, cellH := g.CellSize()
	candidates := make([]Candidate, 0)

	for startY := 0; startY < g.Size; startY++ {
		for startX := 0; startX < g.Size; startX++ {
			if g.At(startX, startY) != CellEmpty {
				continue
			}

			w := 0
			for startX+w < g.Size && g.At(startX+w, startY) == CellEmpty {
				w++
			}

			h := 1
			for startY+h < g.Size && g.rowEmpty(startX, startY+h, w) {
				h++
			}

			rect := geom.Rect{
				Left:   float64(startX) * cellW,
				Top:    float64(startY) * cellH,
				Right:  float64(startX+w) * cellW,
				Bottom: float64(startY+h) * cellH,
			}
			if rect.Width() < minWidth || rect.Height() < minHeight {
				continue
			}

			g.mark(startX, startY, startX+w-1, startY+h-1, CellClaimed)
			candidates = append(candidates, Candidate{
				Rect:  rect,
				Area:  rect.Area(),
				CellX: startX,
				CellY: startY,
				CellW: w,
				CellH: h,
			})
		}
	}

	return candidates
}

// rowEmpty reports whether w cells starting at (x, y) are all empty.
func (g *Grid) rowEmpty(x, y, w int) bool {
	for i := 0; i < w; i++ {
		if g.At(x+i, y) != CellEmpty {
			return false
		}
	}
	return true
}
