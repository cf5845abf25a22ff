package textfit

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// FontMeasurer measures text set in Go Bold.
//
// Faces are created lazily per size and kept for reuse. An opentype face is
// not safe for concurrent use, so every access goes through the mutex,
// including drawing done through WithFace.
type FontMeasurer struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewFontMeasurer parses the embedded Go Bold font.
func NewFontMeasurer() (*FontMeasurer, error) {
	fnt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FontMeasurer{
		font:  fnt,
		faces: make(map[float64]font.Face),
	}, nil
}

// face returns the cached face for size. Callers must hold mu.
func (m *FontMeasurer) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	m.faces[size] = f
	return f, nil
}

// WithFace calls fn with the face for size while holding the measurer lock.
func (m *FontMeasurer) WithFace(size float64, fn func(font.Face)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, err := m.face(size)
	if err != nil {
		return err
	}
	fn(f)
	return nil
}

// Width returns the advance of line at size, or 0 for an unusable size.
func (m *FontMeasurer) Width(line string, size float64) float64 {
	var w float64
	_ = m.WithFace(size, func(f font.Face) {
		w = float64(font.MeasureString(f, line)) / 64
	})
	return w
}

// LineSpacing returns the face's recommended line height at size.
func (m *FontMeasurer) LineSpacing(size float64) float64 {
	var h float64
	_ = m.WithFace(size, func(f font.Face) {
		h = float64(f.Metrics().Height) / 64
	})
	return h
}

// Close releases every cached face.
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for size, f := range m.faces {
		_ = f.Close()
		delete(m.faces, size)
	}
	return nil
}
