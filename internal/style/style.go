package style

import (
	"image/color"
)

// DefaultStrokeThreshold is the swatch count above which a background is
// considered busy enough to need an outline.
const DefaultStrokeThreshold = 3

// DefaultFamily is the fixed text face.
const DefaultFamily = "Go Bold"

// TextStyle is how the poster text is drawn.
type TextStyle struct {
	Color    color.RGBA `json:"-"`
	Hex      string     `json:"color"`
	Stroke   bool       `json:"stroke"`
	Bold     bool       `json:"bold"`
	Family   string     `json:"family"`
	FontSize float64    `json:"font_size"`
}

// Luminance returns the perceived brightness of c on a 0-255 scale using
// ITU-R BT.601 weights.
func Luminance(c color.RGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// IsDark reports whether text on c should be light.
func IsDark(c color.RGBA) bool {
	return Luminance(c) < 128
}

// Select picks the text color and stroke for a background. Text is white
// on dark backgrounds and black otherwise. Backgrounds with more than
// strokeThreshold swatches get an outline in the text color.
//
// FontSize is left at zero; the fit sizer fills it in.
func Select(s Summary, strokeThreshold int) TextStyle {
	st := TextStyle{
		Color:  color.RGBA{A: 255},
		Hex:    "#000000",
		Bold:   true,
		Family: DefaultFamily,
		Stroke: s.Count > strokeThreshold,
	}
	if IsDark(s.Dominant.Color) {
		st.Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		st.Hex = "#FFFFFF"
	}
	return st
}
