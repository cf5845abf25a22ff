// Package style chooses a legible text style for a region of a photo.
//
// Analyze hands the region to a Quantizer and gets back a Summary: a handful
// of swatches with the most populous one marked dominant. Select turns that
// summary into a TextStyle. The dominant color's luminance decides between
// white and black text, and a background with many swatches adds an outline.
//
// Regions that cannot be analyzed (empty after clamping to the image, or a
// quantizer failure) are treated as dark, which gives white text.
package style
