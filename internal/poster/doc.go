// Package poster runs the full placement pipeline for one photo: find empty
// space around the detections, pick a text style for the best space, size
// the text to fit and draw it.
package poster
