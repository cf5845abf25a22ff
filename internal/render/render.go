package render

import (
	"fmt"
	"image/color"

	"github.com/ironsheep/poster-tools-mcp/internal/detection"
	"github.com/ironsheep/poster-tools-mcp/internal/geom"
	"github.com/ironsheep/poster-tools-mcp/internal/placement"
	"github.com/ironsheep/poster-tools-mcp/internal/style"
	"github.com/ironsheep/poster-tools-mcp/internal/textfit"
)

// TextRun is one line of text to draw. X is the left edge and Y the
// vertical center of the line.
type TextRun struct {
	Text   string
	X, Y   float64
	Size   float64
	Color  color.RGBA
	Stroke bool
}

// Surface is a 2D drawing target.
type Surface interface {
	StrokeRect(r geom.Rect, c color.Color, width int)
	DrawText(run TextRun) error
}

// Draw emits one text run per non-blank line of b in style st.
func Draw(s Surface, b textfit.Block, st style.TextStyle) error {
	for i, l := range b.Lines {
		if l.Text == "" {
			continue
		}
		run := TextRun{
			Text:   l.Text,
			X:      l.X,
			Y:      l.Y,
			Size:   b.Size,
			Color:  st.Color,
			Stroke: st.Stroke,
		}
		if err := s.DrawText(run); err != nil {
			return fmt.Errorf("failed to draw line %d: %w", i, err)
		}
	}
	return nil
}

// Overlay colors.
var (
	DetectionColor = color.RGBA{R: 255, G: 64, B: 64, A: 255}
	CandidateColor = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	ChosenColor    = color.RGBA{R: 0, G: 220, B: 90, A: 255}
	GridColor      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// DrawOverlay outlines every detection box and every candidate. The
// candidate at index chosen is drawn last, in ChosenColor; pass -1 when
// nothing was chosen.
func DrawOverlay(s Surface, dets []detection.Detection, cands []placement.Candidate, chosen int) {
	for _, d := range dets {
		s.StrokeRect(d.Box, DetectionColor, 2)
	}
	for i, c := range cands {
		if i != chosen {
			s.StrokeRect(c.Rect, CandidateColor, 2)
		}
	}
	if chosen >= 0 && chosen < len(cands) {
		s.StrokeRect(cands[chosen].Rect, ChosenColor, 3)
	}
}
