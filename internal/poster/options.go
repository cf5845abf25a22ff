package poster

import (
	"github.com/ironsheep/poster-tools-mcp/internal/config"
	"github.com/ironsheep/poster-tools-mcp/internal/detection"
	"github.com/ironsheep/poster-tools-mcp/internal/placement"
	"github.com/ironsheep/poster-tools-mcp/internal/textfit"
)

// PlacementOptions maps settings onto the placement search.
func PlacementOptions(s config.Settings) placement.Options {
	return placement.Options{
		Grid:      placement.GridOptions{Size: s.GridSize, Margin: s.GridMargin},
		MinWidth:  s.MinCandidateWidth,
		MinHeight: s.MinCandidateHeight,
		Weights:   placement.Weights{Center: s.CenterWeight, Size: s.SizeWeight},
	}
}

// FitOptions maps settings onto the font size search.
func FitOptions(s config.Settings) textfit.Options {
	return textfit.Options{
		MinSize: s.MinFontSize,
		MaxSize: s.MaxFontSize,
		Margin:  s.FitMargin,
	}
}

// NewNormalizer returns a detection normalizer using labels and the
// configured confidence threshold. Nil labels fall back to COCO.
func NewNormalizer(s config.Settings, labels []string) *detection.Normalizer {
	if labels == nil {
		labels = detection.COCOLabels
	}
	n := detection.NewNormalizer(labels)
	n.Threshold = s.ConfidenceThreshold
	return n
}
