package poster

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ironsheep/poster-tools-mcp/internal/config"
	"github.com/ironsheep/poster-tools-mcp/internal/detection"
	"github.com/ironsheep/poster-tools-mcp/internal/geom"
	"github.com/ironsheep/poster-tools-mcp/internal/placement"
	"github.com/ironsheep/poster-tools-mcp/internal/render"
	"github.com/ironsheep/poster-tools-mcp/internal/style"
	"github.com/ironsheep/poster-tools-mcp/internal/textfit"
)

// ErrNoPlacement is returned when no empty region meets the minimum size.
var ErrNoPlacement = errors.New("no suitable placement found")

// ComposeOptions controls what Compose draws besides the text.
type ComposeOptions struct {
	// Overlay draws the occupancy grid, detection boxes and numbered
	// candidate outlines under the text.
	Overlay bool
}

// Result is everything a compose run decided.
type Result struct {
	RunID      string                `json:"run_id"`
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	Detections []detection.Detection `json:"detections"`
	Candidates []placement.Candidate `json:"candidates"`
	Chosen     placement.Candidate   `json:"chosen"`

	// Analyzed is false when the background could not be sampled and the
	// dark default was used.
	Analyzed   bool          `json:"analyzed"`
	Background style.Summary `json:"background"`

	Style style.TextStyle `json:"style"`
	Block textfit.Block   `json:"block"`

	Image *image.RGBA `json:"-"`
}

// Composer places and draws text on photos. It holds no per-run state and
// may be shared.
type Composer struct {
	settings  config.Settings
	quantizer style.Quantizer
	fonts     *textfit.FontMeasurer
	log       zerolog.Logger
}

// New returns a Composer using settings for every tunable.
func New(settings config.Settings, quantizer style.Quantizer, fonts *textfit.FontMeasurer, log zerolog.Logger) *Composer {
	return &Composer{
		settings:  settings,
		quantizer: quantizer,
		fonts:     fonts,
		log:       log,
	}
}

// Settings returns the tunables the composer was built with.
func (c *Composer) Settings() config.Settings {
	return c.settings
}

// Compose finds the best empty region of img given dets, styles and sizes
// text for it, and draws the result onto a copy of img.
//
// ctx is only checked before the run starts. When no region qualifies the
// returned Result still carries the detections and an empty candidate list,
// together with ErrNoPlacement.
func (c *Composer) Compose(ctx context.Context, img image.Image, dets []detection.Detection, text string, opts ComposeOptions) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	res := &Result{
		RunID:      uuid.NewString(),
		Width:      b.Dx(),
		Height:     b.Dy(),
		Detections: dets,
	}
	log := c.log.With().Str("run_id", res.RunID).Logger()

	res.Candidates = placement.Find(res.Width, res.Height, dets, PlacementOptions(c.settings))
	log.Debug().
		Int("detections", len(dets)).
		Int("candidates", len(res.Candidates)).
		Msg("searched for empty space")
	if len(res.Candidates) == 0 {
		return res, ErrNoPlacement
	}
	res.Chosen = res.Candidates[0]

	res.Background, res.Analyzed = style.Analyze(img, res.Chosen.Rect, c.quantizer)
	if !res.Analyzed {
		log.Warn().Interface("rect", res.Chosen.Rect).Msg("background not analyzable, assuming dark")
	}
	res.Style = style.Select(res.Background, c.settings.StrokeThreshold)

	rect := res.Chosen.Rect
	res.Style.FontSize = textfit.FitSize(text, rect.Width(), rect.Height(), c.fonts, FitOptions(c.settings))
	res.Block = textfit.Layout(text, rect, res.Style.FontSize, c.fonts)

	canvas := render.NewCanvas(img, c.fonts)
	if opts.Overlay {
		drawOverlay(canvas, res, c.settings.GridSize)
	}
	if err := render.Draw(canvas, res.Block, res.Style); err != nil {
		return nil, fmt.Errorf("failed to render text: %w", err)
	}
	res.Image = canvas.Image()

	log.Info().
		Float64("weight", res.Chosen.Weight).
		Str("color", res.Style.Hex).
		Bool("stroke", res.Style.Stroke).
		Float64("size", res.Style.FontSize).
		Int("lines", len(res.Block.Lines)).
		Msg("composed poster")
	return res, nil
}

func drawOverlay(canvas *render.Canvas, res *Result, gridSize int) {
	canvas.DrawGrid(gridSize, render.GridColor)
	render.DrawOverlay(canvas, res.Detections, res.Candidates, 0)

	rects := make([]geom.Rect, len(res.Candidates))
	for i, cand := range res.Candidates {
		rects[i] = cand.Rect
	}
	canvas.LabelRanks(rects)
}
