package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ironsheep/poster-tools-mcp/internal/config"
	"github.com/ironsheep/poster-tools-mcp/internal/imaging"
	"github.com/ironsheep/poster-tools-mcp/internal/ocr"
	"github.com/ironsheep/poster-tools-mcp/internal/poster"
	"github.com/ironsheep/poster-tools-mcp/internal/textfit"
)

// Version is reported in the initialize handshake.
const Version = "0.2.0"

// Server handles MCP protocol communication
type Server struct {
	settings config.Settings
	log      zerolog.Logger

	cache    *imaging.ImageCache
	palette  *imaging.Palette
	fonts    *textfit.FontMeasurer
	composer *poster.Composer
	ocr      ocr.Recognizer

	in  io.Reader
	out io.Writer
}

// Option customizes a Server.
type Option func(*Server)

// WithRecognizer sets the OCR engine used for avoid_text. Passing nil
// disables OCR and leaves the edge-density heuristic.
func WithRecognizer(r ocr.Recognizer) Option {
	return func(s *Server) { s.ocr = r }
}

// WithIO replaces stdin/stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.in = in
		s.out = out
	}
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON-RPC error codes used by the server.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// New creates a server using settings for every tunable. OCR defaults to
// Tesseract in settings.OCRLanguage.
func New(settings config.Settings, log zerolog.Logger, opts ...Option) (*Server, error) {
	fonts, err := textfit.NewFontMeasurer()
	if err != nil {
		return nil, err
	}
	palette := imaging.NewPalette()

	s := &Server{
		settings: settings,
		log:      log,
		cache:    imaging.NewImageCache(),
		palette:  palette,
		fonts:    fonts,
		composer: poster.New(settings, palette, fonts, log.With().Str("component", "composer").Logger()),
		ocr:      ocr.NewTesseract(settings.OCRLanguage),
		in:       os.Stdin,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run reads one JSON-RPC request per line until the input ends or ctx is
// canceled, writing responses as single JSON lines. Cancellation is noticed
// even while waiting on an idle input; the blocked read is then left to end
// with the process.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	// Tensor payloads can be large.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	lines := make(chan []byte)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()

	encoder := json.NewEncoder(s.out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var line []byte
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return ctxErr
					}
					return fmt.Errorf("scanner error: %w", err)
				}
				return nil
			}
			line = l
		}

		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn().Err(err).Msg("failed to parse request")
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.log.Error().Err(err).Msg("failed to encode response")
			}
		}
	}
}

// Close releases cached images and font faces.
func (s *Server) Close() error {
	s.cache.Clear()
	return s.fonts.Close()
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    codeMethodNotFound,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "poster-tools-mcp",
				"version": Version,
			},
		},
	}
}
