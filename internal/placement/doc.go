// Package placement finds empty regions of an image where text can go.
//
// The image is divided into a coarse square grid. Cells touched by a
// detection, plus a fixed margin along the edges, are occupied. A greedy scan
// then carves the remaining cells into rectangles, and each rectangle is
// weighted by how close it sits to the image center and how close to square
// it is.
//
// All functions are synchronous. The Grid is the only mutable state and is
// created per call by Find or BuildGrid.
package placement
