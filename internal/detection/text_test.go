package detection

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/poster-tools-mcp/internal/geom"
)

func solidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// textPatternImage draws rows of short strokes in the band y=20..85, which
// reads as a few lines of small lettering.
func textPatternImage(width, height int) *image.RGBA {
	img := solidImage(width, height, color.White)
	for y := 20; y < 80; y += 10 {
		for x := 20; x < width-20; x++ {
			if x%15 < 5 {
				img.Set(x, y, color.Black)
				img.Set(x, y+1, color.Black)
				img.Set(x, y+5, color.Black)
			}
		}
	}
	return img
}

func TestTextRegions_BlankImage(t *testing.T) {
	if got := TextRegions(solidImage(200, 150, color.White), 0.1); len(got) != 0 {
		t.Errorf("blank image produced %d text regions", len(got))
	}
}

func TestTextRegions_CheckerboardIsNotText(t *testing.T) {
	img := solidImage(200, 150, color.White)
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.Black)
			}
		}
	}
	if got := TextRegions(img, 0.1); len(got) != 0 {
		t.Errorf("checkerboard produced %d text regions", len(got))
	}
}

func TestTextRegions_Properties(t *testing.T) {
	img := textPatternImage(300, 150)

	low := TextRegions(img, 0.1)
	high := TextRegions(img, 0.8)
	if len(high) > len(low) {
		t.Errorf("higher threshold found more regions: low=%d high=%d", len(low), len(high))
	}

	bounds := geom.Rect{Right: 300, Bottom: 150}
	for i, d := range low {
		if d.Label != TextLabel || d.ClassID != -1 {
			t.Errorf("region %d has label %q class %d", i, d.Label, d.ClassID)
		}
		if d.Box.Left < bounds.Left || d.Box.Top < bounds.Top || d.Box.Right > bounds.Right || d.Box.Bottom > bounds.Bottom {
			t.Errorf("region %d outside the image: %+v", i, d.Box)
		}
		if d.Confidence < 0.1 || d.Confidence > 1 {
			t.Errorf("region %d confidence %v out of range", i, d.Confidence)
		}
		if i > 0 && d.Confidence > low[i-1].Confidence {
			t.Errorf("regions not sorted by confidence at %d", i)
		}
	}
}

func TestTextRegions_OffsetBounds(t *testing.T) {
	src := textPatternImage(300, 150)
	shifted := image.NewRGBA(image.Rect(50, 50, 350, 200))
	for y := 0; y < 150; y++ {
		for x := 0; x < 300; x++ {
			shifted.Set(x+50, y+50, src.At(x, y))
		}
	}

	a := TextRegions(src, 0.1)
	b := TextRegions(shifted, 0.1)
	if len(a) != len(b) {
		t.Fatalf("offset image found %d regions, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i].Box != b[i].Box {
			t.Errorf("region %d: %+v vs %+v", i, a[i].Box, b[i].Box)
		}
	}
}

func TestHorizontalScore(t *testing.T) {
	tests := []struct {
		name string
		set  func(edges [][]bool)
		want float64
	}{
		{"empty", func([][]bool) {}, 0},
		{"horizontal line", func(e [][]bool) {
			for x := 0; x < 10; x++ {
				e[5][x] = true
			}
		}, 1.0 / 11.0},
		{"vertical line", func(e [][]bool) {
			for y := 0; y < 10; y++ {
				e[y][5] = true
			}
		}, 10.0 / 11.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := make([][]bool, 10)
			for i := range edges {
				edges[i] = make([]bool, 10)
			}
			tt.set(edges)
			if got := horizontalScore(edges, 0, 0, 10, 10); got != tt.want {
				t.Errorf("horizontalScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeOverlapping(t *testing.T) {
	dets := []Detection{
		{Confidence: 0.4, Box: geom.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}},
		{Confidence: 0.7, Box: geom.Rect{Left: 5, Top: 5, Right: 20, Bottom: 15}},
		{Confidence: 0.5, Box: geom.Rect{Left: 30, Top: 30, Right: 40, Bottom: 40}},
		// Touching edges do not overlap.
		{Confidence: 0.9, Box: geom.Rect{Left: 40, Top: 30, Right: 50, Bottom: 40}},
	}

	got := mergeOverlapping(dets)
	if len(got) != 3 {
		t.Fatalf("got %d regions, want 3", len(got))
	}
	if want := (geom.Rect{Left: 0, Top: 0, Right: 20, Bottom: 15}); got[0].Box != want {
		t.Errorf("merged box = %+v, want %+v", got[0].Box, want)
	}
	if got[0].Confidence != 0.7 {
		t.Errorf("merged confidence = %v, want 0.7", got[0].Confidence)
	}
	if len(mergeOverlapping(nil)) != 0 {
		t.Error("merging nothing should give nothing")
	}
}
