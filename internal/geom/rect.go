// Package geom holds the pixel-space rectangle shared by the detection,
// placement, and rendering packages.
package geom

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle in pixel coordinates.
//
// Left/Top are inclusive and Right/Bottom are exclusive, matching
// image.Rectangle. Values are floating point because detector boxes and grid
// cells rarely land on whole pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width returns Right - Left, or 0 for inverted or NaN rectangles.
func (r Rect) Width() float64 {
	if w := r.Right - r.Left; w > 0 {
		return w
	}
	return 0
}

// Height returns Bottom - Top, or 0 for inverted or NaN rectangles.
func (r Rect) Height() float64 {
	if h := r.Bottom - r.Top; h > 0 {
		return h
	}
	return 0
}

// Area returns Width * Height.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (x, y float64) {
	return (r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Canon returns r with its edges ordered so Left <= Right and Top <= Bottom.
func (r Rect) Canon() Rect {
	return Rect{
		Left:   math.Min(r.Left, r.Right),
		Top:    math.Min(r.Top, r.Bottom),
		Right:  math.Max(r.Left, r.Right),
		Bottom: math.Max(r.Top, r.Bottom),
	}
}

// Clamp restricts the rectangle to [0,width] x [0,height]. NaN coordinates
// collapse to 0.
func (r Rect) Clamp(width, height float64) Rect {
	return Rect{
		Left:   clamp(r.Left, 0, width),
		Top:    clamp(r.Top, 0, height),
		Right:  clamp(r.Right, 0, width),
		Bottom: clamp(r.Bottom, 0, height),
	}
}

// Image converts to an integer image.Rectangle. The outer edges are rounded
// outward so the pixel region covers the whole rectangle. Empty or inverted
// rectangles convert to the zero rectangle.
func (r Rect) Image() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.Left)),
		int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)),
		int(math.Ceil(r.Bottom)),
	)
}

// FromImage converts an image.Rectangle into a Rect.
func FromImage(r image.Rectangle) Rect {
	return Rect{
		Left:   float64(r.Min.X),
		Top:    float64(r.Min.Y),
		Right:  float64(r.Max.X),
		Bottom: float64(r.Max.Y),
	}
}

// Clamp01 restricts v to [0,1]; NaN becomes 0.
func Clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
