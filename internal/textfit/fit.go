package textfit

import "strings"

// Measurer reports text metrics at a font size, in pixels.
type Measurer interface {
	// Width is the advance width of a single line.
	Width(line string, size float64) float64
	// LineSpacing is the distance between consecutive baselines.
	LineSpacing(size float64) float64
}

// Options bounds the font size search.
type Options struct {
	MinSize float64 `json:"min_size"`
	MaxSize float64 `json:"max_size"`
	// Margin is the share of the rectangle the block may fill on each axis.
	Margin float64 `json:"margin"`
}

// DefaultOptions returns MinSize 12, MaxSize 512 and Margin 0.9.
func DefaultOptions() Options {
	return Options{MinSize: 12, MaxSize: 512, Margin: 0.9}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinSize <= 0 {
		o.MinSize = d.MinSize
	}
	if o.MaxSize < o.MinSize {
		o.MaxSize = d.MaxSize
		if o.MaxSize < o.MinSize {
			o.MaxSize = o.MinSize
		}
	}
	if o.Margin <= 0 || o.Margin > 1 {
		o.Margin = d.Margin
	}
	return o
}

// SplitLines breaks text on explicit line breaks. Empty text has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// FitSize returns the largest whole font size, stepping up from MinSize,
// at which every line of text fits within Margin*width and the block height
// (line spacing times line count) fits within Margin*height.
//
// The result is never below MinSize, even when MinSize itself overflows, and
// never above MaxSize. Empty text returns MinSize.
func FitSize(text string, width, height float64, m Measurer, opts Options) float64 {
	opts = opts.withDefaults()
	lines := SplitLines(text)
	if len(lines) == 0 || m == nil {
		return opts.MinSize
	}

	maxW := opts.Margin * width
	maxH := opts.Margin * height
	fits := func(size float64) bool {
		if m.LineSpacing(size)*float64(len(lines)) > maxH {
			return false
		}
		for _, l := range lines {
			if m.Width(l, size) > maxW {
				return false
			}
		}
		return true
	}

	size := opts.MinSize
	for next := size + 1; next <= opts.MaxSize && fits(next); next++ {
		size = next
	}
	return size
}
