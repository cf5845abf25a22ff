package placement

import (
	"math"
	"testing"

	"github.com/ironsheep/poster-tools-mcp/internal/detection"
	"github.com/ironsheep/poster-tools-mcp/internal/geom"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		rect geom.Rect
		want float64
	}{
		// Centered square: both components are 1.
		{"centered square", geom.Rect{Left: 400, Top: 400, Right: 600, Bottom: 600}, 1.0},
		// Centered 2:1 rectangle: size component 0.5.
		{"centered wide", geom.Rect{Left: 400, Top: 450, Right: 600, Bottom: 550}, 0.6 + 0.4*0.5},
		// Square in the corner: center at (50,50), dx = dy = 0.9.
		{"corner square", geom.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}, 0.6*0.1 + 0.4},
		{"degenerate", geom.Rect{Left: 500, Top: 500, Right: 500, Bottom: 500}, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.rect, 1000, 1000, DefaultWeights())
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScore_InRange(t *testing.T) {
	rects := []geom.Rect{
		{Left: -500, Top: -500, Right: -100, Bottom: -400},
		{Left: 0, Top: 0, Right: 1000, Bottom: 10},
		{Left: math.NaN(), Top: 0, Right: 10, Bottom: 10},
	}
	for _, r := range rects {
		w := Score(r, 1000, 500, DefaultWeights())
		if math.IsNaN(w) || w < 0 || w > 1 {
			t.Errorf("Score(%+v) = %f, want within [0,1]", r, w)
		}
	}

	if w := Score(geom.Rect{Right: 10, Bottom: 10}, 0, 0, DefaultWeights()); w != 0 {
		t.Errorf("zero-size image: got %f, want 0", w)
	}
}

func TestScore_MirrorSymmetry(t *testing.T) {
	const width, height = 1200, 800
	rects := []geom.Rect{
		{Left: 60, Top: 40, Right: 500, Bottom: 300},
		{Left: 700, Top: 100, Right: 1140, Bottom: 760},
		{Left: 10, Top: 10, Right: 30, Bottom: 700},
	}

	for _, r := range rects {
		mirrored := geom.Rect{Left: width - r.Right, Top: r.Top, Right: width - r.Left, Bottom: r.Bottom}
		a := Score(r, width, height, DefaultWeights())
		b := Score(mirrored, width, height, DefaultWeights())
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("weight changed under mirroring: %f vs %f for %+v", a, b, r)
		}
	}
}

func TestRank_StableDescending(t *testing.T) {
	cands := []Candidate{
		{Rect: geom.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}},
		{Rect: geom.Rect{Left: 400, Top: 400, Right: 600, Bottom: 600}},
		{Rect: geom.Rect{Left: 900, Top: 900, Right: 1000, Bottom: 1000}}, // ties with the first
		{Rect: geom.Rect{Left: 300, Top: 450, Right: 700, Bottom: 550}},
	}
	ranked := Rank(cands, 1000, 1000, DefaultWeights())

	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Weight < ranked[i].Weight {
			t.Errorf("not descending at %d: %f < %f", i, ranked[i-1].Weight, ranked[i].Weight)
		}
	}

	if ranked[0].Rect.Left != 400 {
		t.Errorf("best candidate: got %+v", ranked[0].Rect)
	}
	// The two corner squares tie; discovery order is kept.
	if ranked[2].Rect.Left != 0 || ranked[3].Rect.Left != 900 {
		t.Errorf("tie order not preserved: %+v, %+v", ranked[2].Rect, ranked[3].Rect)
	}
}

func TestFind_MirroredDetections(t *testing.T) {
	const width, height = 2000, 2000
	dets := []detection.Detection{det(200, 200, 900, 1800)}
	mirrored := []detection.Detection{det(width-900, 200, width-200, 1800)}

	a := Find(width, height, dets, DefaultOptions())
	b := Find(width, height, mirrored, DefaultOptions())
	if len(a) == 0 || len(b) == 0 {
		t.Fatalf("expected candidates on both sides, got %d and %d", len(a), len(b))
	}

	for _, ca := range a {
		mirror := geom.Rect{Left: width - ca.Rect.Right, Top: ca.Rect.Top, Right: width - ca.Rect.Left, Bottom: ca.Rect.Bottom}
		if w := Score(mirror, width, height, DefaultWeights()); math.Abs(w-ca.Weight) > 1e-9 {
			t.Errorf("mirrored weight %f differs from %f", w, ca.Weight)
		}
	}
}

func TestFind_NoPlacement(t *testing.T) {
	dets := []detection.Detection{det(0, 0, 1000, 1000)}
	if cands := Find(1000, 1000, dets, DefaultOptions()); len(cands) != 0 {
		t.Errorf("expected no candidates, got %d", len(cands))
	}
}
