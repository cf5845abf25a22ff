package imaging

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/poster-tools-mcp/internal/style"
)

// Palette extracts a small set of representative colors from an image
// region. It implements style.Quantizer.
//
// # Algorithm
//
//  1. Crop the region and shrink it to at most MaxArea pixels.
//  2. Bucket every pixel by dropping the low 4 bits of each channel:
//     quantized = (original / 16) * 16
//  3. Walk the buckets from most to least common and fold each one into the
//     first swatch whose CIE Lab distance is below MergeDistance. Merged
//     colors are blended in Lab space, weighted by population.
//  4. Drop swatches holding less than MinShare of the pixels and keep at
//     most MaxSwatches.
//
// Colors that survive step 4 are the region's swatches; the most populous
// one is dominant.
type Palette struct {
	// MaxSwatches caps the number of swatches returned.
	MaxSwatches int

	// MaxArea is the pixel budget the region is shrunk to before bucketing.
	MaxArea int

	// MergeDistance is the Lab distance under which two colors count as
	// the same swatch. go-colorful Lab distances are roughly 0-1.
	MergeDistance float64

	// MinShare is the minimum fraction of pixels a swatch must hold.
	MinShare float64
}

// NewPalette returns a Palette with the default tuning.
func NewPalette() *Palette {
	return &Palette{
		MaxSwatches:   16,
		MaxArea:       112 * 112,
		MergeDistance: 0.1,
		MinShare:      0.02,
	}
}

type bucket struct {
	key   uint32
	color colorful.Color
	count int
}

// Quantize summarizes the colors inside region.
func (p *Palette) Quantize(img image.Image, region image.Rectangle) (style.Summary, error) {
	sub, err := CropRegion(img, region, p.MaxArea)
	if err != nil {
		return style.Summary{}, fmt.Errorf("failed to sample region: %w", err)
	}

	counts := make(map[uint32]int)
	total := 0
	b := sub.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := sub.NRGBAAt(x, y)
			r8, g8, b8 := c.R/16*16, c.G/16*16, c.B/16*16
			counts[uint32(r8)<<16|uint32(g8)<<8|uint32(b8)]++
			total++
		}
	}
	if total == 0 {
		return style.Summary{}, fmt.Errorf("region (%d,%d)-(%d,%d) has no pixels",
			region.Min.X, region.Min.Y, region.Max.X, region.Max.Y)
	}

	buckets := make([]bucket, 0, len(counts))
	for key, cnt := range counts {
		buckets = append(buckets, bucket{
			key:   key,
			color: colorful.Color{R: float64(key>>16&0xFF) / 255, G: float64(key>>8&0xFF) / 255, B: float64(key&0xFF) / 255},
			count: cnt,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].key < buckets[j].key
	})

	merged := make([]bucket, 0)
	for _, bk := range buckets {
		folded := false
		for i := range merged {
			if merged[i].color.DistanceLab(bk.color) < p.MergeDistance {
				t := float64(bk.count) / float64(merged[i].count+bk.count)
				merged[i].color = merged[i].color.BlendLab(bk.color, t).Clamped()
				merged[i].count += bk.count
				folded = true
				break
			}
		}
		if !folded {
			merged = append(merged, bk)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].count > merged[j].count
	})

	minCount := int(p.MinShare * float64(total))
	swatches := make([]style.Swatch, 0, len(merged))
	for i, m := range merged {
		if p.MaxSwatches > 0 && len(swatches) >= p.MaxSwatches {
			break
		}
		if i > 0 && m.count < minCount {
			continue
		}
		swatches = append(swatches, toSwatch(m))
	}

	return style.Summary{
		Swatches: swatches,
		Dominant: swatches[0],
		Count:    len(swatches),
	}, nil
}

func toSwatch(b bucket) style.Swatch {
	r, g, bl := b.color.RGB255()
	return style.Swatch{
		Color:      color.RGBA{R: r, G: g, B: bl, A: 255},
		Hex:        fmt.Sprintf("#%02X%02X%02X", r, g, bl),
		Population: b.count,
	}
}
