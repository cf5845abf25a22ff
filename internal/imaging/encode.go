package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 92

// EncodedImage is an image serialized for a JSON response.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Encode serializes img as base64 in format: "png" (also the default for
// ""), "jpeg" or "jpg", or "bmp".
func Encode(img image.Image, format string) (*EncodedImage, error) {
	var (
		enc  imgio.Encoder
		mime string
	)
	switch strings.ToLower(format) {
	case "", "png":
		enc, mime = imgio.PNGEncoder(), "image/png"
	case "jpeg", "jpg":
		enc, mime = imgio.JPEGEncoder(JPEGQuality), "image/jpeg"
	case "bmp":
		enc, mime = imgio.BMPEncoder(), "image/bmp"
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}

	var buf bytes.Buffer
	if err := enc(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &EncodedImage{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    mime,
	}, nil
}

// Bytes decodes the base64 payload.
func (e *EncodedImage) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(e.ImageBase64)
}
