// Package imaging holds the pixel-level plumbing behind poster composition.
//
// It loads and caches photos, crops regions, reduces a region to a small
// palette of swatches for background analysis, draws debug overlays (grid
// lines, rectangle outlines, numeric labels) and writes finished posters to
// disk or base64.
//
// Coordinates follow image.Image conventions: (0,0) is the top-left pixel,
// X grows rightward and Y grows downward. Regions are half-open, so
// image.Rect(x1, y1, x2, y2) includes x1..x2-1 and y1..y2-1.
//
// ImageCache is safe for concurrent use. The remaining functions are
// stateless and only read their input images, except the Draw* helpers which
// mutate the destination they are given.
package imaging
