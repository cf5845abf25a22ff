package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// CropRegion extracts a rectangular region from an image and, when the
// region holds more than maxArea pixels, shrinks it so it holds roughly
// maxArea while keeping its aspect ratio. A maxArea of 0 disables shrinking.
//
// The region uses the image's own coordinate space: Min is inclusive and Max
// is exclusive.
//
// # Errors
//
//   - the region extends outside the image bounds
//   - the region is empty
func CropRegion(img image.Image, region image.Rectangle, maxArea int) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if !region.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			region.Min.X, region.Min.Y, region.Max.X, region.Max.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if region.Empty() {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(img, region)

	area := region.Dx() * region.Dy()
	if maxArea > 0 && area > maxArea {
		scale := math.Sqrt(float64(maxArea) / float64(area))
		newWidth := int(math.Max(1, math.Round(float64(region.Dx())*scale)))
		newHeight := int(math.Max(1, math.Round(float64(region.Dy())*scale)))
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Box)
	}

	return cropped, nil
}
