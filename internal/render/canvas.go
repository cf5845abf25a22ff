package render

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/poster-tools-mcp/internal/geom"
	"github.com/ironsheep/poster-tools-mcp/internal/imaging"
	"github.com/ironsheep/poster-tools-mcp/internal/textfit"
)

// Canvas draws onto an RGBA copy of a source image. Its bounds always start
// at (0,0) so layout coordinates map straight to pixels.
type Canvas struct {
	img   *image.RGBA
	fonts *textfit.FontMeasurer
}

// NewCanvas copies src into a fresh RGBA image. Text is set with faces from
// fonts, which may be shared with the fit sizer.
func NewCanvas(src image.Image, fonts *textfit.FontMeasurer) *Canvas {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Canvas{img: dst, fonts: fonts}
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// StrokeRect outlines r, width pixels thick, inside its bounds.
func (c *Canvas) StrokeRect(r geom.Rect, col color.Color, width int) {
	imaging.DrawRectOutline(c.img, r.Image(), col, width)
}

// StrokeWidth is the outline offset used for stroked text at size.
func StrokeWidth(size float64) int {
	w := int(math.Round(size / 24))
	if w < 1 {
		return 1
	}
	return w
}

// DrawText sets run centered vertically on run.Y. A stroked run is drawn
// again at every offset within StrokeWidth of the anchor in the run color,
// which thickens the glyph outlines.
func (c *Canvas) DrawText(run TextRun) error {
	return c.fonts.WithFace(run.Size, func(face font.Face) {
		m := face.Metrics()
		baseline := run.Y + float64(m.Ascent-m.Descent)/128

		d := &font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(run.Color),
			Face: face,
		}
		drawAt := func(dx, dy float64) {
			d.Dot = fixed.Point26_6{
				X: fixed.Int26_6(math.Round((run.X + dx) * 64)),
				Y: fixed.Int26_6(math.Round((baseline + dy) * 64)),
			}
			d.DrawString(run.Text)
		}

		if run.Stroke {
			sw := float64(StrokeWidth(run.Size))
			for _, o := range [][2]float64{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}} {
				drawAt(o[0]*sw, o[1]*sw)
			}
		}
		drawAt(0, 0)
	})
}

// DrawGrid draws the cell boundaries of a cells x cells occupancy grid.
func (c *Canvas) DrawGrid(cells int, col color.Color) {
	imaging.DrawGridLines(c.img, cells, col)
}

// LabelRanks numbers each rectangle from 1 at its top-left corner.
func (c *Canvas) LabelRanks(rects []geom.Rect) {
	fg := color.RGBA{A: 255}
	bg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for i, r := range rects {
		pt := r.Image().Min
		imaging.DrawLabel(c.img, pt.X+4, pt.Y+4, strconv.Itoa(i+1), fg, bg)
	}
}
