package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ironsheep/poster-tools-mcp/internal/validate"
)

func init() {
	validate.RegisterStructRule("weightsum", "{0} plus center_weight must not exceed 1", weightSum, Settings{})
}

// weightSum keeps the two ranking weights within a combined budget of 1.
func weightSum(sl validator.StructLevel) {
	s := sl.Current().Interface().(Settings)
	if s.CenterWeight+s.SizeWeight > 1+1e-9 {
		sl.ReportError(s.SizeWeight, "size_weight", "SizeWeight", "weightsum", "")
	}
}

// Settings holds every placement, styling and sizing tunable.
type Settings struct {
	// ConfidenceThreshold drops detections scoring below it.
	ConfidenceThreshold float64 `json:"confidence_threshold" validate:"gte=0,lte=1"`

	GridSize   int `json:"grid_size" validate:"gte=3,lte=200"`
	GridMargin int `json:"grid_margin" validate:"gte=0,ltefield=GridSize"`

	MinCandidateWidth  float64 `json:"min_candidate_width" validate:"gt=0"`
	MinCandidateHeight float64 `json:"min_candidate_height" validate:"gt=0"`

	// CenterWeight and SizeWeight rank candidates and together must not
	// exceed 1.
	CenterWeight float64 `json:"center_weight" validate:"gte=0,lte=1"`
	SizeWeight   float64 `json:"size_weight" validate:"gte=0,lte=1"`

	StrokeThreshold int `json:"stroke_threshold" validate:"gte=0"`

	MinFontSize float64 `json:"min_font_size" validate:"gt=0"`
	MaxFontSize float64 `json:"max_font_size" validate:"gtefield=MinFontSize"`
	FitMargin   float64 `json:"fit_margin" validate:"gt=0,lte=1"`

	// OCRLanguage is the Tesseract language used for text obstacles.
	OCRLanguage string `json:"ocr_language" validate:"required,printascii"`
}

// Defaults returns the standard tunables.
func Defaults() Settings {
	return Settings{
		ConfidenceThreshold: 0.5,
		GridSize:            20,
		GridMargin:          1,
		MinCandidateWidth:   200,
		MinCandidateHeight:  100,
		CenterWeight:        0.6,
		SizeWeight:          0.4,
		StrokeThreshold:     3,
		MinFontSize:         12,
		MaxFontSize:         512,
		FitMargin:           0.9,
		OCRLanguage:         "eng",
	}
}

// Validate reports every field outside its allowed range.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Load reads Settings from POSTER_MCP_* variables on top of Defaults and
// validates the result.
func Load() (Settings, error) {
	return LoadFrom(New().Prefix(EnvPrefix))
}

// LoadFrom reads Settings through c.
func LoadFrom(c Conf) (Settings, error) {
	s := Defaults()
	var errs []error

	float := func(key string, dst *float64) {
		val, err := c.GetFloat(key, *dst)
		if err != nil {
			errs = append(errs, err)
		}
		*dst = val
	}
	integer := func(key string, dst *int) {
		val, err := c.GetInt(key, *dst)
		if err != nil {
			errs = append(errs, err)
		}
		*dst = val
	}

	float("CONFIDENCE", &s.ConfidenceThreshold)
	integer("GRID_SIZE", &s.GridSize)
	integer("GRID_MARGIN", &s.GridMargin)
	float("MIN_WIDTH", &s.MinCandidateWidth)
	float("MIN_HEIGHT", &s.MinCandidateHeight)
	float("CENTER_WEIGHT", &s.CenterWeight)
	float("SIZE_WEIGHT", &s.SizeWeight)
	integer("STROKE_THRESHOLD", &s.StrokeThreshold)
	float("MIN_FONT", &s.MinFontSize)
	float("MAX_FONT", &s.MaxFontSize)
	float("FIT_MARGIN", &s.FitMargin)
	s.OCRLanguage = c.Get("OCR_LANG", s.OCRLanguage)

	if len(errs) > 0 {
		return s, errors.Join(errs...)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}
