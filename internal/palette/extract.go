package palette

import (
	"errors"
	"fmt"
)

// DefaultQuality samples every 10th pixel.
const DefaultQuality = 10

// Pixels with alpha below this are treated as background and not sampled.
const minAlpha = 125

// ErrNoColors is returned when sampling yields no usable pixel.
var ErrNoColors = errors.New("no colors sampled")

// Sample is the input handed to a Quantizer: the distinct sampled colors in
// first-seen order plus the normalized buffer they came from.
type Sample struct {
	Buffer   Buffer
	Swatches []Swatch
	Pixels   int
}

// Quantizer reduces a sample to at most k representative colors.
type Quantizer interface {
	Name() string
	Quantize(sample Sample, k int) ([]Color, error)
}

// Extract samples every quality-th pixel of buf and returns a palette of
// maxColors colors. When the sample holds fewer than maxColors distinct colors
// every pixel is rescanned, so an image with at least maxColors distinct
// colors always yields exactly maxColors. When the distinct colors still fit
// they are returned directly, most frequent first.
func Extract(q Quantizer, buf Buffer, quality, maxColors int) ([]Color, error) {
	if maxColors < 1 {
		return nil, fmt.Errorf("palette size %d out of range", maxColors)
	}
	if quality < 1 {
		quality = DefaultQuality
	}
	if q == nil {
		q = MedianCut{}
	}

	sample := collect(buf, quality)
	if len(sample.Swatches) == 0 {
		return nil, ErrNoColors
	}
	if len(sample.Swatches) < maxColors && quality > 1 {
		sample = collect(buf, 1)
	}
	ranked := byCount(sample.Swatches)
	if len(ranked) <= maxColors {
		return colorsOf(ranked), nil
	}

	colors, err := q.Quantize(sample, maxColors)
	if err != nil {
		return nil, fmt.Errorf("%s quantizer: %w", q.Name(), err)
	}
	return fill(colors, ranked, maxColors), nil
}

func collect(buf Buffer, quality int) Sample {
	channels := buf.Layout.Channels()
	index := make(map[Color]int)
	sample := Sample{Buffer: buf}
	for p := 0; p < buf.Len(); p += quality {
		off := p * channels
		if off+channels > len(buf.Pix) {
			break
		}
		if buf.Layout == LayoutRGBA && buf.Pix[off+3] < minAlpha {
			continue
		}
		c := Color{R: buf.Pix[off], G: buf.Pix[off+1], B: buf.Pix[off+2]}
		sample.Pixels++
		if i, ok := index[c]; ok {
			sample.Swatches[i].Count++
			continue
		}
		index[c] = len(sample.Swatches)
		sample.Swatches = append(sample.Swatches, Swatch{Color: c, Count: 1})
	}
	return sample
}

// fill removes duplicates from colors, truncates to k, and tops the palette
// up with the most frequent real swatches not already present.
func fill(colors []Color, ranked []Swatch, k int) []Color {
	seen := make(map[Color]struct{}, k)
	out := make([]Color, 0, k)
	add := func(c Color) {
		if len(out) == k {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, c := range colors {
		add(c)
	}
	for _, s := range ranked {
		add(s.Color)
	}
	return out
}

func colorsOf(swatches []Swatch) []Color {
	out := make([]Color, len(swatches))
	for i, s := range swatches {
		out[i] = s.Color
	}
	return out
}
