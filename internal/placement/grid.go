package placement

import (
	"math"
	"strings"

	"github.com/ironsheep/poster-tools-mcp/internal/detection"
)

// Cell is the state of one occupancy grid cell.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellOccupied
	CellClaimed
)

// GridOptions configures occupancy grid construction.
type GridOptions struct {
	// Size is the number of cells along each axis.
	Size int

	// Margin is the number of cells along every edge that are always
	// occupied, so text is never placed flush against the border.
	Margin int
}

// DefaultGridOptions returns a 20x20 grid with a one cell margin.
func DefaultGridOptions() GridOptions {
	return GridOptions{Size: 20, Margin: 1}
}

// Grid is a coarse occupancy map over an image.
//
// A Grid is built for one image and is mutated by Search; it must not be
// shared between goroutines or reused across images.
type Grid struct {
	Size   int
	Width  int
	Height int
	cells  []Cell
}

// NewGrid returns an all-empty grid for a width x height image.
func NewGrid(width, height, size int) *Grid {
	if size < 1 {
		size = 1
	}
	return &Grid{
		Size:   size,
		Width:  width,
		Height: height,
		cells:  make([]Cell, size*size),
	}
}

// BuildGrid rasterizes detections onto a new grid and then applies the edge
// margin.
func BuildGrid(width, height int, dets []detection.Detection, opts GridOptions) *Grid {
	g := NewGrid(width, height, opts.Size)
	if width <= 0 || height <= 0 {
		g.Fill(CellOccupied)
		return g
	}

	for _, d := range dets {
		x1 := g.cellIndex(d.Box.Left, float64(width))
		y1 := g.cellIndex(d.Box.Top, float64(height))
		x2 := g.cellIndex(d.Box.Right, float64(width))
		y2 := g.cellIndex(d.Box.Bottom, float64(height))
		g.mark(x1, y1, x2, y2, CellOccupied)
	}

	g.applyMargin(opts.Margin)
	return g
}

// At returns the state of cell (x, y). Cells outside the grid read as
// occupied.
func (g *Grid) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= g.Size || y >= g.Size {
		return CellOccupied
	}
	return g.cells[y*g.Size+x]
}

// Set changes the state of cell (x, y). Out of range cells are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= g.Size || y >= g.Size {
		return
	}
	g.cells[y*g.Size+x] = c
}

// Fill sets every cell to c.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// Count returns the number of cells in state c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// CellSize returns the pixel dimensions of one cell.
func (g *Grid) CellSize() (w, h float64) {
	return float64(g.Width) / float64(g.Size), float64(g.Height) / float64(g.Size)
}

// String renders the grid as rows of '.', '#', and '+' for empty, occupied,
// and claimed cells. Used in debug logs and test failures.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			switch g.At(x, y) {
			case CellEmpty:
				b.WriteByte('.')
			case CellOccupied:
				b.WriteByte('#')
			default:
				b.WriteByte('+')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// cellIndex maps a pixel coordinate to its cell along one axis.
func (g *Grid) cellIndex(coord, dim float64) int {
	if math.IsNaN(coord) {
		return 0
	}
	idx := int(math.Floor(coord / dim * float64(g.Size)))
	if idx < 0 {
		return 0
	}
	if idx > g.Size-1 {
		return g.Size - 1
	}
	return idx
}

// mark sets every cell in the inclusive range to c.
func (g *Grid) mark(x1, y1, x2, y2 int, c Cell) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			g.Set(x, y, c)
		}
	}
}

func (g *Grid) applyMargin(margin int) {
	if margin <= 0 {
		return
	}
	last := g.Size - 1
	g.mark(0, 0, last, margin-1, CellOccupied)
	g.mark(0, g.Size-margin, last, last, CellOccupied)
	g.mark(0, 0, margin-1, last, CellOccupied)
	g.mark(g.Size-margin, 0, last, last, CellOccupied)
}
