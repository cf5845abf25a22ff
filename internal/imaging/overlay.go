package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// fill paints r, clipped to img.
func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// DrawGridLines draws the cell boundaries of a cells x cells occupancy grid
// over img. Boundaries fall on the same pixel positions the placement grid
// uses: cell i starts at floor(i * width / cells).
func DrawGridLines(img *image.RGBA, cells int, c color.Color) {
	if cells < 2 {
		return
	}
	b := img.Bounds()
	for i := 1; i < cells; i++ {
		x := b.Min.X + i*b.Dx()/cells
		y := b.Min.Y + i*b.Dy()/cells
		fill(img, image.Rect(x, b.Min.Y, x+1, b.Max.Y), c)
		fill(img, image.Rect(b.Min.X, y, b.Max.X, y+1), c)
	}
}

// DrawRectOutline draws the outline of r, thickness pixels wide, growing
// inward. The part of r outside img is cut off first, so a box hanging off
// the edge is outlined along the edge.
func DrawRectOutline(img *image.RGBA, r image.Rectangle, c color.Color, thickness int) {
	r = r.Canon().Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	t := max(thickness, 1)
	t = min(t, (r.Dx()+1)/2, (r.Dy()+1)/2)

	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), c) // top
	fill(img, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), c) // bottom
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), c) // left
	fill(img, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), c) // right
}

// DrawLabel writes text in a 7x13 bitmap face on a bg box whose top-left
// corner is (x, y). Used to number candidates in debug overlays.
func DrawLabel(img *image.RGBA, x, y int, text string, fg, bg color.Color) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x+1, y+1+face.Ascent),
	}

	width := d.MeasureString(text).Ceil() + 2
	fill(img, image.Rect(x, y, x+width, y+face.Height+2), bg)
	d.DrawString(text)
}
