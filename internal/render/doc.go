// Package render turns a laid out text block into drawing calls.
//
// Draw and DrawOverlay only talk to a Surface, so they can be checked with
// a recording fake. Canvas is the Surface used for real posters: an RGBA
// copy of the photo with text set through golang.org/x/image/font.
package render
