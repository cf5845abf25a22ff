package detection

import (
	"image"
	"math"
	"sort"

	"github.com/ironsheep/poster-tools-mcp/internal/geom"
)

// TextLabel marks detections that cover existing lettering in the photo.
const TextLabel = "text"

// textWindows are the sliding window sizes tried, roughly one per common
// text height.
var textWindows = []struct{ w, h int }{
	{100, 30},
	{150, 40},
	{200, 50},
	{80, 25},
}

// TextRegions finds areas whose edges look like horizontal lines of text and
// returns them as detections labelled TextLabel, most confident first.
//
// This is a heuristic used when OCR is unavailable: a window qualifies when
// its edge density is moderate (5-40%) and its edge runs are mostly
// horizontal. Overlapping windows are merged into one box. Boxes are in
// pixels relative to the image origin.
func TextRegions(img image.Image, minConfidence float64) []Detection {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	edges := edgeMap(img)

	var found []Detection
	for _, ws := range textWindows {
		stepX, stepY := ws.w/2, ws.h/2
		for y := 0; y+ws.h <= height; y += stepY {
			for x := 0; x+ws.w <= width; x += stepX {
				n := 0
				for wy := y; wy < y+ws.h; wy++ {
					for wx := x; wx < x+ws.w; wx++ {
						if edges[wy][wx] {
							n++
						}
					}
				}

				density := float64(n) / float64(ws.w*ws.h)
				if density < 0.05 || density > 0.4 {
					continue
				}
				conf := horizontalScore(edges, x, y, ws.w, ws.h) * (1 - math.Abs(density-0.2)/0.2)
				if conf < minConfidence {
					continue
				}
				found = append(found, Detection{
					ClassID:    -1,
					Label:      TextLabel,
					Confidence: geom.Clamp01(math.Round(conf*1000) / 1000),
					Box: geom.Rect{
						Left:   float64(x),
						Top:    float64(y),
						Right:  float64(x + ws.w),
						Bottom: float64(y + ws.h),
					},
				})
			}
		}
	}

	merged := mergeOverlapping(found)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	return merged
}

// edgeMap marks pixels whose gray level differs by more than 30 from the
// right or lower neighbour. The outermost pixels are never edges.
func edgeMap(img image.Image) [][]bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	gray := make([][]float64, h)
	for y := 0; y < h; y++ {
		gray[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			gray[y][x] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
		}
	}

	edges := make([][]bool, h)
	for y := 0; y < h; y++ {
		edges[y] = make([]bool, w)
		if y == 0 || y == h-1 {
			continue
		}
		for x := 1; x < w-1; x++ {
			dx := math.Abs(gray[y][x] - gray[y][x+1])
			dy := math.Abs(gray[y][x] - gray[y+1][x])
			edges[y][x] = dx > 30 || dy > 30
		}
	}
	return edges
}

// horizontalScore is the share of edge runs in the window that run
// horizontally.
func horizontalScore(edges [][]bool, x, y, w, h int) float64 {
	horizontal, vertical := 0, 0

	for row := y; row < y+h; row++ {
		inRun := false
		for col := x; col < x+w; col++ {
			if edges[row][col] && !inRun {
				horizontal++
			}
			inRun = edges[row][col]
		}
	}
	for col := x; col < x+w; col++ {
		inRun := false
		for row := y; row < y+h; row++ {
			if edges[row][col] && !inRun {
				vertical++
			}
			inRun = edges[row][col]
		}
	}

	if horizontal+vertical == 0 {
		return 0
	}
	return float64(horizontal) / float64(horizontal+vertical)
}

// mergeOverlapping folds each detection into the first earlier one it
// overlaps, growing that box and keeping the higher confidence.
func mergeOverlapping(dets []Detection) []Detection {
	merged := make([]Detection, 0, len(dets))
	for _, d := range dets {
		folded := false
		for i := range merged {
			if overlaps(d.Box, merged[i].Box) {
				merged[i].Box = union(d.Box, merged[i].Box)
				merged[i].Confidence = math.Max(d.Confidence, merged[i].Confidence)
				folded = true
				break
			}
		}
		if !folded {
			merged = append(merged, d)
		}
	}
	return merged
}

func overlaps(a, b geom.Rect) bool {
	return a.Left < b.Right && a.Right > b.Left && a.Top < b.Bottom && a.Bottom > b.Top
}

func union(a, b geom.Rect) geom.Rect {
	return geom.Rect{
		Left:   math.Min(a.Left, b.Left),
		Top:    math.Min(a.Top, b.Top),
		Right:  math.Max(a.Right, b.Right),
		Bottom: math.Max(a.Bottom, b.Bottom),
	}
}
