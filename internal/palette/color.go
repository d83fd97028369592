package palette

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit RGB triple. Alpha is never carried.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// fromUnit converts a color with channels in [0,1] to 8-bit, clamping
// out-of-gamut values.
func fromUnit(r, g, b float64) Color {
	r8, g8, b8 := colorful.Color{R: r, G: g, B: b}.Clamped().RGB255()
	return Color{R: r8, G: g8, B: b8}
}

func (c Color) unit() [3]float64 {
	return [3]float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// Swatch is a distinct sampled color and the number of sampled pixels that
// carried it.
type Swatch struct {
	Color Color
	Count int
}

// byCount orders swatches by descending count. The sort is stable so ties
// keep first-seen order.
func byCount(swatches []Swatch) []Swatch {
	out := slices.Clone(swatches)
	slices.SortStableFunc(out, func(a, b Swatch) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}
