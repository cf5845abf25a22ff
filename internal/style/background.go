package style

import (
	"image"
	"image/color"

	"github.com/ironsheep/poster-tools-mcp/internal/geom"
)

// Swatch is one representative color of a region and how many sampled
// pixels it stands for.
type Swatch struct {
	Color      color.RGBA `json:"-"`
	Hex        string     `json:"hex"`
	Population int        `json:"population"`
}

// Summary describes the colors behind a candidate region.
type Summary struct {
	// Swatches is ordered by population, most common first.
	Swatches []Swatch `json:"swatches"`

	// Dominant is the most populous swatch.
	Dominant Swatch `json:"dominant"`

	// Count is the number of distinct swatches found.
	Count int `json:"count"`
}

// Quantizer reduces the pixels of a region to a small palette.
type Quantizer interface {
	Quantize(img image.Image, region image.Rectangle) (Summary, error)
}

// DarkSummary is returned when a region cannot be analyzed. It reads as a
// plain black background so the selected text is white without a stroke.
func DarkSummary() Summary {
	black := Swatch{Color: color.RGBA{A: 255}, Hex: "#000000"}
	return Summary{Dominant: black}
}

// Analyze summarizes the colors of img inside rect. The rectangle is
// clamped to the image bounds first; an empty region or a quantizer error
// yields DarkSummary and false.
func Analyze(img image.Image, rect geom.Rect, q Quantizer) (Summary, bool) {
	if img == nil || q == nil {
		return DarkSummary(), false
	}

	bounds := img.Bounds()
	region := rect.Image().Add(bounds.Min).Intersect(bounds)
	if region.Empty() {
		return DarkSummary(), false
	}

	s, err := q.Quantize(img, region)
	if err != nil || len(s.Swatches) == 0 {
		return DarkSummary(), false
	}
	return s, true
}
