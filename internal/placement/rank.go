package placement

import (
	"math"
	"sort"

	"github.com/ironsheep/poster-tools-mcp/internal/detection"
	"github.com/ironsheep/poster-tools-mcp/internal/geom"
)

// Weights splits a candidate's score between how central it is and how
// close to square it is. The two should sum to 1.
type Weights struct {
	Center float64
	Size   float64
}

// DefaultWeights favors centrality 60/40 over shape.
func DefaultWeights() Weights {
	return Weights{Center: 0.6, Size: 0.4}
}

// Score returns the placement weight of rect inside a width x height image.
//
//	center = 1 - (|dx| + |dy|) / 2   with dx, dy normalized by half the image size
//	size   = min(w, h) / max(w, h)
//	weight = wts.Center*center + wts.Size*size
//
// Each component is clamped to [0,1] and the result never contains NaN.
func Score(rect geom.Rect, width, height int, wts Weights) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}

	halfW, halfH := float64(width)/2, float64(height)/2
	cx, cy := rect.Center()
	dx := math.Abs(cx-halfW) / halfW
	dy := math.Abs(cy-halfH) / halfH
	center := geom.Clamp01(1 - (dx+dy)/2)

	size := 0.0
	rw, rh := rect.Width(), rect.Height()
	if hi := math.Max(rw, rh); hi > 0 {
		size = geom.Clamp01(math.Min(rw, rh) / hi)
	}

	w := wts.Center*center + wts.Size*size
	if math.IsNaN(w) {
		return 0
	}
	return w
}

// Rank scores every candidate and sorts best-first. The sort is stable, so
// equal weights keep discovery order. candidates[0] is the best placement.
func Rank(candidates []Candidate, width, height int, wts Weights) []Candidate {
	for i := range candidates {
		candidates[i].Weight = Score(candidates[i].Rect, width, height, wts)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight > candidates[j].Weight
	})
	return candidates
}

// Options configures a full placement run.
type Options struct {
	Grid      GridOptions
	MinWidth  float64
	MinHeight float64
	Weights   Weights
}

// DefaultOptions returns the standard placement tunables.
func DefaultOptions() Options {
	return Options{
		Grid:      DefaultGridOptions(),
		MinWidth:  DefaultMinWidth,
		MinHeight: DefaultMinHeight,
		Weights:   DefaultWeights(),
	}
}

// Find builds the occupancy grid for the detections, searches it, and ranks
// the result. An empty slice means no region met the minimum size.
func Find(width, height int, dets []detection.Detection, opts Options) []Candidate {
	g := BuildGrid(width, height, dets, opts.Grid)
	return Rank(g.Search(opts.MinWidth, opts.MinHeight), width, height, opts.Weights)
}
