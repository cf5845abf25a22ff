package style

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/poster-tools-mcp/internal/geom"
)

func summaryOf(c color.RGBA, count int) Summary {
	sw := Swatch{Color: c, Population: 100}
	return Summary{Swatches: []Swatch{sw}, Dominant: sw, Count: count}
}

func TestSelect(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}

	tests := []struct {
		name       string
		dominant   color.RGBA
		count      int
		wantColor  color.RGBA
		wantStroke bool
	}{
		{"near black calm", color.RGBA{10, 10, 10, 255}, 3, white, false},
		{"near black busy", color.RGBA{10, 10, 10, 255}, 4, white, true},
		{"white calm", color.RGBA{250, 250, 250, 255}, 1, black, false},
		{"white busy", color.RGBA{250, 250, 250, 255}, 9, black, true},
		{"mid gray dark side", color.RGBA{126, 126, 126, 255}, 2, white, false},
		{"mid gray light side", color.RGBA{130, 130, 130, 255}, 2, black, false},
		{"saturated blue", color.RGBA{0, 0, 255, 255}, 2, white, false},
		{"saturated yellow", color.RGBA{255, 255, 0, 255}, 2, black, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Select(summaryOf(tt.dominant, tt.count), DefaultStrokeThreshold)

			if st.Color != tt.wantColor {
				t.Errorf("Color: got %v, want %v", st.Color, tt.wantColor)
			}
			if st.Stroke != tt.wantStroke {
				t.Errorf("Stroke: got %v, want %v", st.Stroke, tt.wantStroke)
			}
			if !st.Bold {
				t.Error("text should always be bold")
			}
			if st.Family != DefaultFamily {
				t.Errorf("Family: got %s, want %s", st.Family, DefaultFamily)
			}
		})
	}
}

func TestLuminance(t *testing.T) {
	if got := Luminance(color.RGBA{255, 255, 255, 255}); got < 254.99 || got > 255.01 {
		t.Errorf("white: got %f, want 255", got)
	}
	if got := Luminance(color.RGBA{0, 0, 0, 255}); got != 0 {
		t.Errorf("black: got %f, want 0", got)
	}
	if got := Luminance(color.RGBA{100, 0, 0, 255}); got < 29.89 || got > 29.91 {
		t.Errorf("dark red: got %f, want 29.9", got)
	}
}

type fakeQuantizer struct {
	summary Summary
	err     error
	region  image.Rectangle
	calls   int
}

func (f *fakeQuantizer) Quantize(img image.Image, region image.Rectangle) (Summary, error) {
	f.calls++
	f.region = region
	return f.summary, f.err
}

func TestAnalyze_ClampsRegion(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	q := &fakeQuantizer{summary: summaryOf(color.RGBA{200, 200, 200, 255}, 1)}

	s, ok := Analyze(img, geom.Rect{Left: 80, Top: -10, Right: 150, Bottom: 20}, q)
	if !ok {
		t.Fatal("Analyze should succeed")
	}
	if q.region != image.Rect(80, 0, 100, 20) {
		t.Errorf("region: got %v, want (80,0)-(100,20)", q.region)
	}
	if s.Dominant.Color.R != 200 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestAnalyze_DegenerateRegion(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	q := &fakeQuantizer{summary: summaryOf(color.RGBA{255, 255, 255, 255}, 1)}

	tests := []struct {
		name string
		rect geom.Rect
	}{
		{"zero width", geom.Rect{Left: 10, Top: 10, Right: 10, Bottom: 40}},
		{"outside", geom.Rect{Left: 200, Top: 10, Right: 300, Bottom: 40}},
		{"inverted", geom.Rect{Left: 50, Top: 40, Right: 10, Bottom: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Analyze(img, tt.rect, q)
			if ok {
				t.Error("Analyze should report failure")
			}
			st := Select(s, DefaultStrokeThreshold)
			if st.Hex != "#FFFFFF" || st.Stroke {
				t.Errorf("fallback style: got %+v, want white without stroke", st)
			}
		})
	}

	if q.calls != 0 {
		t.Errorf("quantizer should not be called for empty regions, called %d times", q.calls)
	}
}

func TestAnalyze_QuantizerError(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	q := &fakeQuantizer{err: errors.New("boom")}

	s, ok := Analyze(img, geom.Rect{Right: 100, Bottom: 50}, q)
	if ok {
		t.Error("Analyze should report failure")
	}
	if !IsDark(s.Dominant.Color) {
		t.Error("fallback should be dark")
	}
}

func TestAnalyze_NilInputs(t *testing.T) {
	if _, ok := Analyze(nil, geom.Rect{Right: 10, Bottom: 10}, &fakeQuantizer{}); ok {
		t.Error("nil image should fail")
	}
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if _, ok := Analyze(img, geom.Rect{Right: 10, Bottom: 10}, nil); ok {
		t.Error("nil quantizer should fail")
	}
}
