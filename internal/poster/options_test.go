package poster

import (
	"testing"

	"github.com/ironsheep/poster-tools-mcp/internal/config"
	"github.com/ironsheep/poster-tools-mcp/internal/detection"
	"github.com/ironsheep/poster-tools-mcp/internal/placement"
	"github.com/ironsheep/poster-tools-mcp/internal/textfit"
)

func TestDefaultsMatchPackageDefaults(t *testing.T) {
	s := config.Defaults()

	if got, want := PlacementOptions(s), placement.DefaultOptions(); got != want {
		t.Errorf("PlacementOptions = %+v, want %+v", got, want)
	}
	if got, want := FitOptions(s), textfit.DefaultOptions(); got != want {
		t.Errorf("FitOptions = %+v, want %+v", got, want)
	}
}

func TestNewNormalizer(t *testing.T) {
	s := config.Defaults()
	s.ConfidenceThreshold = 0.25

	n := NewNormalizer(s, nil)
	if n.Threshold != 0.25 {
		t.Errorf("Threshold = %v, want 0.25", n.Threshold)
	}
	if len(n.Labels) != len(detection.COCOLabels) {
		t.Errorf("nil labels should fall back to COCO, got %d labels", len(n.Labels))
	}

	custom := NewNormalizer(s, []string{"cat"})
	if len(custom.Labels) != 1 {
		t.Errorf("custom labels not used: %v", custom.Labels)
	}
}
