package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/poster-tools-mcp/internal/geom"
	"github.com/ironsheep/poster-tools-mcp/internal/textfit"
)

func newTestCanvas(t *testing.T, w, h int, bg color.RGBA) *Canvas {
	t.Helper()

	fonts, err := textfit.NewFontMeasurer()
	if err != nil {
		t.Fatalf("NewFontMeasurer failed: %v", err)
	}
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.SetRGBA(x, y, bg)
		}
	}
	return NewCanvas(src, fonts)
}

// countColor counts pixels inside r equal to c.
func countColor(img *image.RGBA, r image.Rectangle, c color.RGBA) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestNewCanvas_CopiesAndRebases(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	src := image.NewRGBA(image.Rect(10, 20, 40, 60))
	src.SetRGBA(10, 20, red)

	fonts, err := textfit.NewFontMeasurer()
	if err != nil {
		t.Fatalf("NewFontMeasurer failed: %v", err)
	}
	c := NewCanvas(src, fonts)

	if got := c.Image().Bounds(); got != image.Rect(0, 0, 30, 40) {
		t.Fatalf("bounds = %v, want (0,0)-(30,40)", got)
	}
	if got := c.Image().RGBAAt(0, 0); got != red {
		t.Errorf("origin pixel = %v, want red", got)
	}

	c.Image().SetRGBA(0, 0, color.RGBA{A: 255})
	if src.RGBAAt(10, 20) != red {
		t.Error("drawing on the canvas changed the source image")
	}
}

func TestCanvas_DrawText(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	c := newTestCanvas(t, 400, 200, black)

	run := TextRun{Text: "HELLO", X: 100, Y: 100, Size: 48, Color: white}
	if err := c.DrawText(run); err != nil {
		t.Fatalf("DrawText failed: %v", err)
	}

	inside := countColor(c.Image(), image.Rect(90, 60, 300, 140), white)
	if inside == 0 {
		t.Fatal("no text pixels drawn around the anchor")
	}
	total := countColor(c.Image(), c.Image().Bounds(), white)
	if total != inside {
		t.Errorf("%d text pixels fell outside the expected band", total-inside)
	}
}

func TestCanvas_StrokeThickens(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}

	plain := newTestCanvas(t, 400, 200, black)
	stroked := newTestCanvas(t, 400, 200, black)

	run := TextRun{Text: "HELLO", X: 100, Y: 100, Size: 48, Color: white}
	if err := plain.DrawText(run); err != nil {
		t.Fatalf("DrawText failed: %v", err)
	}
	run.Stroke = true
	if err := stroked.DrawText(run); err != nil {
		t.Fatalf("DrawText failed: %v", err)
	}

	all := plain.Image().Bounds()
	if p, s := countColor(plain.Image(), all, white), countColor(stroked.Image(), all, white); s <= p {
		t.Errorf("stroked text covers %d pixels, plain %d", s, p)
	}
}

func TestCanvas_DrawTextInvalidSize(t *testing.T) {
	c := newTestCanvas(t, 50, 50, color.RGBA{A: 255})
	if err := c.DrawText(TextRun{Text: "A", Size: 0}); err == nil {
		t.Error("DrawText should fail for size 0")
	}
}

func TestCanvas_StrokeRect(t *testing.T) {
	green := color.RGBA{G: 255, A: 255}
	c := newTestCanvas(t, 100, 100, color.RGBA{A: 255})

	c.StrokeRect(geom.Rect{Left: 10, Top: 10, Right: 60, Bottom: 40}, green, 1)

	if c.Image().RGBAAt(10, 10) != green || c.Image().RGBAAt(59, 39) != green {
		t.Error("outline corners not drawn")
	}
	if c.Image().RGBAAt(30, 25) == green {
		t.Error("outline filled the interior")
	}
}

func TestStrokeWidth(t *testing.T) {
	tests := []struct {
		size float64
		want int
	}{
		{0, 1},
		{12, 1},
		{48, 2},
		{120, 5},
	}
	for _, tt := range tests {
		if got := StrokeWidth(tt.size); got != tt.want {
			t.Errorf("StrokeWidth(%v) = %d, want %d", tt.size, got, tt.want)
		}
	}
}
