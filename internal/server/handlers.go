package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/ironsheep/poster-tools-mcp/internal/detection"
	"github.com/ironsheep/poster-tools-mcp/internal/geom"
	"github.com/ironsheep/poster-tools-mcp/internal/imaging"
	"github.com/ironsheep/poster-tools-mcp/internal/ocr"
	"github.com/ironsheep/poster-tools-mcp/internal/placement"
	"github.com/ironsheep/poster-tools-mcp/internal/poster"
	"github.com/ironsheep/poster-tools-mcp/internal/style"
	"github.com/ironsheep/poster-tools-mcp/internal/textfit"
	"github.com/ironsheep/poster-tools-mcp/internal/validate"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "poster_compose").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// argsError marks a failure caused by the caller's arguments rather than by
// running the tool.
type argsError struct{ err error }

func (e *argsError) Error() string { return e.err.Error() }
func (e *argsError) Unwrap() error { return e.err }

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Bad arguments and unknown tools return -32602; failures while running the
// tool return -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	log := s.log.With().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Logger()
	if err != nil {
		var ae *argsError
		if errors.As(err, &ae) {
			log.Debug().Err(err).Msg("rejected tool arguments")
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		log.Warn().Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	log.Debug().Msg("tool succeeded")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Poster pipeline
	case "poster_normalize_detections":
		return s.handleNormalizeDetections(args)
	case "poster_find_spaces":
		return s.handleFindSpaces(args)
	case "poster_background":
		return s.handleBackground(args)
	case "poster_fit_text":
		return s.handleFitText(args)
	case "poster_compose":
		return s.handleCompose(ctx, args)

	default:
		return nil, &argsError{fmt.Errorf("unknown tool: %s", name)}
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals and validates tool arguments into v.
func (s *Server) decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &argsError{fmt.Errorf("invalid arguments: %w", err)}
	}
	if err := validate.Struct(v); err != nil {
		return &argsError{fmt.Errorf("invalid arguments: %w", err)}
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path" validate:"required"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Detection Handlers ===

type normalizeArgs struct {
	Tensors    []detection.Tensor `json:"tensors" validate:"required,min=1"`
	Labels     []string           `json:"labels"`
	LabelsPath string             `json:"labels_path"`
	Width      int                `json:"width" validate:"gt=0"`
	Height     int                `json:"height" validate:"gt=0"`
	Threshold  *float64           `json:"threshold" validate:"omitempty,gte=0,lte=1"`
}

type normalizeResult struct {
	Detections []detection.Detection `json:"detections"`
	Count      int                   `json:"count"`
	Roles      []string              `json:"roles"`
}

func (s *Server) handleNormalizeDetections(args json.RawMessage) (interface{}, error) {
	var a normalizeArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	labels, err := s.labels(a.Labels, a.LabelsPath)
	if err != nil {
		return nil, err
	}

	n := poster.NewNormalizer(s.settings, labels)
	if a.Threshold != nil {
		n.Threshold = *a.Threshold
	}
	dets := n.Normalize(a.Tensors, a.Width, a.Height)

	_, roles := detection.Classify(a.Tensors)
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return &normalizeResult{Detections: dets, Count: len(dets), Roles: names}, nil
}

func (s *Server) labels(inline []string, path string) ([]string, error) {
	if path == "" {
		return inline, nil
	}
	labels, err := detection.LoadLabelsFile(path)
	if err != nil {
		return nil, &argsError{err}
	}
	return labels, nil
}

// obstacleArgs are the ways a caller can say what is already in the photo.
type obstacleArgs struct {
	Detections []detection.Detection `json:"detections"`
	Tensors    []detection.Tensor    `json:"tensors"`
	Labels     []string              `json:"labels"`
	LabelsPath string                `json:"labels_path"`
	AvoidText  bool                  `json:"avoid_text"`
}

// obstacles gathers the given detections, the normalized tensors and, when
// asked, existing lettering into one list clamped to img. Caller boxes with
// swapped edges are reordered before clamping.
func (s *Server) obstacles(img image.Image, a obstacleArgs) ([]detection.Detection, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	dets := make([]detection.Detection, 0, len(a.Detections))
	for _, d := range a.Detections {
		d.Box = d.Box.Canon().Clamp(float64(w), float64(h))
		if d.Label == "" {
			d.Label = detection.UnknownLabel
		}
		dets = append(dets, d)
	}

	if len(a.Tensors) > 0 {
		labels, err := s.labels(a.Labels, a.LabelsPath)
		if err != nil {
			return nil, err
		}
		dets = append(dets, poster.NewNormalizer(s.settings, labels).Normalize(a.Tensors, w, h)...)
	}

	if a.AvoidText {
		dets = append(dets, s.textObstacles(img)...)
	}
	return dets, nil
}

// textObstacles finds lettering with OCR, falling back to the edge-density
// heuristic when OCR is not configured or fails.
func (s *Server) textObstacles(img image.Image) []detection.Detection {
	if s.ocr != nil {
		dets, err := ocr.TextObstacles(s.ocr, img, s.settings.ConfidenceThreshold)
		if err == nil {
			return dets
		}
		s.log.Warn().Err(err).Msg("OCR failed, using edge heuristic for text")
	}
	return detection.TextRegions(img, s.settings.ConfidenceThreshold)
}

// === Placement Handlers ===

type findSpacesArgs struct {
	Path string `json:"path" validate:"required"`
	obstacleArgs
	MinWidth  *float64 `json:"min_width" validate:"omitempty,gt=0"`
	MinHeight *float64 `json:"min_height" validate:"omitempty,gt=0"`
}

type findSpacesResult struct {
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	Obstacles  []detection.Detection `json:"obstacles"`
	Candidates []placement.Candidate `json:"candidates"`
	Grid       string                `json:"grid"`
}

func (s *Server) handleFindSpaces(args json.RawMessage) (interface{}, error) {
	var a findSpacesArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	dets, err := s.obstacles(img, a.obstacleArgs)
	if err != nil {
		return nil, err
	}

	opts := poster.PlacementOptions(s.settings)
	if a.MinWidth != nil {
		opts.MinWidth = *a.MinWidth
	}
	if a.MinHeight != nil {
		opts.MinHeight = *a.MinHeight
	}

	b := img.Bounds()
	grid := placement.BuildGrid(b.Dx(), b.Dy(), dets, opts.Grid)
	occupancy := grid.String()
	cands := placement.Rank(grid.Search(opts.MinWidth, opts.MinHeight), b.Dx(), b.Dy(), opts.Weights)

	return &findSpacesResult{
		Width:      b.Dx(),
		Height:     b.Dy(),
		Obstacles:  dets,
		Candidates: cands,
		Grid:       occupancy,
	}, nil
}

// === Styling Handlers ===

type backgroundArgs struct {
	Path string     `json:"path" validate:"required"`
	Rect *geom.Rect `json:"rect" validate:"required"`
}

type backgroundResult struct {
	Rect       geom.Rect       `json:"rect"`
	Analyzed   bool            `json:"analyzed"`
	Background style.Summary   `json:"background"`
	Style      style.TextStyle `json:"style"`
}

func (s *Server) handleBackground(args json.RawMessage) (interface{}, error) {
	var a backgroundArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	rect := a.Rect.Clamp(float64(b.Dx()), float64(b.Dy()))
	summary, ok := style.Analyze(img, rect, s.palette)
	return &backgroundResult{
		Rect:       rect,
		Analyzed:   ok,
		Background: summary,
		Style:      style.Select(summary, s.settings.StrokeThreshold),
	}, nil
}

type fitTextArgs struct {
	Text   string  `json:"text"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

type fitTextResult struct {
	Size  float64       `json:"size"`
	Block textfit.Block `json:"block"`
}

func (s *Server) handleFitText(args json.RawMessage) (interface{}, error) {
	var a fitTextArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	size := textfit.FitSize(a.Text, a.Width, a.Height, s.fonts, poster.FitOptions(s.settings))
	box := geom.Rect{Right: a.Width, Bottom: a.Height}
	return &fitTextResult{
		Size:  size,
		Block: textfit.Layout(a.Text, box, size, s.fonts),
	}, nil
}

// === Composition Handlers ===

type composeArgs struct {
	Path string `json:"path" validate:"required"`
	Text string `json:"text"`
	obstacleArgs
	Overlay bool   `json:"overlay"`
	Format  string `json:"format" validate:"omitempty,oneof=png jpeg jpg bmp"`
}

type composeResult struct {
	*poster.Result
	Image *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleCompose(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a composeArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	dets, err := s.obstacles(img, a.obstacleArgs)
	if err != nil {
		return nil, err
	}

	res, err := s.composer.Compose(ctx, img, dets, a.Text, poster.ComposeOptions{Overlay: a.Overlay})
	if err != nil {
		return nil, err
	}

	enc, err := imaging.Encode(res.Image, a.Format)
	if err != nil {
		return nil, err
	}
	return &composeResult{Result: res, Image: enc}, nil
}
