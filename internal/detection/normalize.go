package detection

import (
	"math"

	"github.com/ironsheep/poster-tools-mcp/internal/geom"
)

// DefaultThreshold is the minimum score a detection needs to be kept.
const DefaultThreshold = 0.5

// UnknownLabel is used when a class index has no entry in the label table.
const UnknownLabel = "Unknown"

// Detection is a single normalized object detection.
//
// Box is in pixel coordinates of the source image with Left <= Right and
// Top <= Bottom, clamped to the image bounds.
type Detection struct {
	ClassID    int       `json:"class_id"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	Box        geom.Rect `json:"box"`
}

// Normalizer converts raw detector outputs into Detections.
//
// A Normalizer holds no per-call state and may be shared between goroutines.
type Normalizer struct {
	// Labels maps class index to display label.
	Labels []string

	// Threshold is the minimum score, inclusive.
	Threshold float64
}

// NewNormalizer returns a Normalizer with the default threshold.
func NewNormalizer(labels []string) *Normalizer {
	return &Normalizer{Labels: labels, Threshold: DefaultThreshold}
}

// Normalize classifies the output tensors of one inference call and converts
// every usable row into a Detection scaled to a width x height image.
//
// Rows with a missing or low score, a missing or degenerate box, or NaN
// values are skipped individually; Normalize never fails as a whole. The
// result is in detector row order.
func (n *Normalizer) Normalize(tensors []Tensor, width, height int) []Detection {
	out, _ := Classify(tensors)
	if out.Boxes == nil || width <= 0 || height <= 0 {
		return []Detection{}
	}

	w, h := float64(width), float64(height)
	count := out.count()
	dets := make([]Detection, 0, count)

	for i := 0; i < count; i++ {
		score, ok := value(out.Scores, i)
		if !ok || math.IsNaN(score) || score < n.Threshold {
			continue
		}

		b, ok := box(out.Boxes, i)
		if !ok || hasNaN(b[:]) {
			continue
		}

		// Rows are [top, left, bottom, right] in normalized units.
		top, left := geom.Clamp01(b[0]), geom.Clamp01(b[1])
		bottom, right := geom.Clamp01(b[2]), geom.Clamp01(b[3])
		rect := geom.Rect{
			Left:   math.Min(left, right) * w,
			Top:    math.Min(top, bottom) * h,
			Right:  math.Max(left, right) * w,
			Bottom: math.Max(top, bottom) * h,
		}
		if rect.Empty() {
			continue
		}

		classID := -1
		if c, ok := value(out.Classes, i); ok && c >= 0 && c < math.MaxInt32 {
			classID = int(c)
		}

		dets = append(dets, Detection{
			ClassID:    classID,
			Label:      n.label(classID),
			Confidence: geom.Clamp01(score),
			Box:        rect,
		})
	}

	return dets
}

func (n *Normalizer) label(classID int) string {
	if classID < 0 || classID >= len(n.Labels) {
		return UnknownLabel
	}
	return n.Labels[classID]
}

func hasNaN(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
