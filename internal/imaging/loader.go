package imaging

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// ImageCache keeps decoded images keyed by the path they were loaded from.
//
// Photos are often analyzed several times in one session (find spaces, then
// inspect a background, then compose), so the server holds one cache for its
// lifetime. An entry is dropped when the file's size or modification time
// changes, when the file can no longer be read, or on Clear. The cache is safe
// for concurrent use.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

type cachedImage struct {
	img     image.Image
	size    int64
	modTime time.Time
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load returns the image at path, decoding it on first use or after the file
// changed on disk.
//
// PNG, JPEG, GIF, BMP and TIFF are supported. EXIF orientation is applied so
// pixel coordinates match the photo as displayed, which matters because
// detector boxes are reported in display orientation.
func (c *ImageCache) Load(path string) (image.Image, error) {
	fi, err := os.Stat(path)
	if err != nil {
		c.Evict(path)
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	c.mu.RLock()
	e, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		if e.size == fi.Size() && e.modTime.Equal(fi.ModTime()) {
			return e.img, nil
		}
		c.Evict(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = cachedImage{img: img, size: fi.Size(), modTime: fi.ModTime()}
	c.mu.Unlock()

	return img, nil
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict drops the image cached for path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes an image file.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is sniffed from the file content ("png", "jpeg", "gif", "bmp",
	// "tiff", "webp"), not from the extension; "unknown" otherwise.
	Format   string `json:"format"`
	MimeType string `json:"mime_type"`

	// ColorDepth is bits per channel of the decoded image.
	ColorDepth    int   `json:"color_depth"`
	HasAlpha      bool  `json:"has_alpha"`
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads path through cache and reports its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to sniff format: %w", err)
	}

	info := &ImageInfo{
		Width:         img.Bounds().Dx(),
		Height:        img.Bounds().Dy(),
		Format:        "unknown",
		MimeType:      mime.String(),
		ColorDepth:    8,
		FileSizeBytes: stat.Size(),
	}
	if sub, ok := strings.CutPrefix(mime.String(), "image/"); ok {
		info.Format = sub
	}

	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.HasAlpha = true
		info.ColorDepth = 16
	case *image.Gray16:
		info.ColorDepth = 16
	}
	return info, nil
}

// DimensionsResult is the pixel size of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions loads path through cache and reports its size.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
