package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/poster-tools-mcp/internal/detection"
	"github.com/ironsheep/poster-tools-mcp/internal/geom"
)

// Word is one recognized word. Box is in pixels relative to the image
// origin, and Confidence is in [0,1].
type Word struct {
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"`
	Box        image.Rectangle `json:"-"`
}

// Recognizer finds words in an image.
type Recognizer interface {
	Words(img image.Image) ([]Word, error)
}

// Tesseract is a Recognizer backed by the Tesseract engine.
type Tesseract struct {
	Language       string
	TessdataPrefix string
}

// NewTesseract returns a recognizer for language, e.g. "eng".
func NewTesseract(language string) *Tesseract {
	return &Tesseract{Language: language}
}

// Words runs word-level recognition over img.
func (t *Tesseract) Words(img image.Image) ([]Word, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(t.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		words = append(words, Word{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Box:        box.Box,
		})
	}
	return words, nil
}

// Version returns the linked Tesseract version.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}

// ToDetections converts words into obstacles for a width x height image.
// Blank words and words below minConfidence are dropped, boxes are clamped
// to the image, and boxes that end up empty are dropped.
func ToDetections(words []Word, width, height int, minConfidence float64) []detection.Detection {
	dets := make([]detection.Detection, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" || w.Confidence < minConfidence {
			continue
		}
		box := geom.FromImage(w.Box.Canon()).Clamp(float64(width), float64(height))
		if box.Empty() {
			continue
		}
		dets = append(dets, detection.Detection{
			ClassID:    -1,
			Label:      detection.TextLabel,
			Confidence: geom.Clamp01(w.Confidence),
			Box:        box,
		})
	}
	return dets
}

// TextObstacles recognizes words in img with r and returns them as
// detections.
func TextObstacles(r Recognizer, img image.Image, minConfidence float64) ([]detection.Detection, error) {
	words, err := r.Words(img)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return ToDetections(words, b.Dx(), b.Dy(), minConfidence), nil
}
