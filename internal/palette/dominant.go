package palette

import (
	"cmp"
	"slices"

	"github.com/cenkalti/dominantcolor"
)

// Dominant delegates to dominantcolor, which clusters a downscaled copy of
// the full image. It ignores the sampling step.
type Dominant struct{}

func (Dominant) Name() string { return string(MethodDominant) }

func (Dominant) Quantize(sample Sample, k int) ([]Color, error) {
	found := dominantcolor.FindWeight(sample.Buffer.Image(), k)
	if len(found) == 0 {
		return nil, ErrNoColors
	}
	slices.SortStableFunc(found, func(a, b dominantcolor.Color) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	out := make([]Color, 0, len(found))
	for _, c := range found {
		out = append(out, Color{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B})
	}
	return out, nil
}
