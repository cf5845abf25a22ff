// Package textfit sizes and lays out a block of text inside a rectangle.
//
// Text metrics come from a Measurer so the sizing rules can be exercised
// without a font. FontMeasurer is the production implementation, backed by
// the Go Bold typeface from golang.org/x/image.
package textfit
