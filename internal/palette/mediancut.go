package palette

import (
	"cmp"
	"slices"

	"github.com/muesli/clusters"
	"gonum.org/v1/gonum/stat"
)

const defaultRefineIterations = 4

// MedianCut partitions the sampled colors into boxes by repeatedly splitting
// the most populous box at the weighted median of its widest channel, then
// refines the box averages with a few weighted Lloyd iterations. The result
// depends only on the sample, so identical images produce identical palettes.
type MedianCut struct {
	// Iterations is the number of refinement passes. Zero uses the default;
	// a negative value disables refinement.
	Iterations int
}

func (MedianCut) Name() string { return string(MethodMedianCut) }

type colorBox struct {
	swatches   []Swatch
	population int
}

func (m MedianCut) Quantize(sample Sample, k int) ([]Color, error) {
	if len(sample.Swatches) == 0 {
		return nil, ErrNoColors
	}
	boxes := []colorBox{newBox(sample.Swatches)}
	for len(boxes) < k {
		i := splittable(boxes)
		if i < 0 {
			break
		}
		lo, hi := boxes[i].split()
		boxes[i] = lo
		boxes = slices.Insert(boxes, i+1, hi)
	}

	centers := make(clusters.Clusters, len(boxes))
	for i, b := range boxes {
		centers[i] = clusters.Cluster{Center: b.mean()}
	}

	iterations := m.Iterations
	if iterations == 0 {
		iterations = defaultRefineIterations
	}
	weights := refine(centers, sample.Swatches, iterations)

	order := make([]int, len(centers))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(weights[b], weights[a])
	})

	out := make([]Color, 0, len(order))
	for _, i := range order {
		if weights[i] == 0 {
			continue
		}
		c := centers[i].Center
		out = append(out, fromUnit(c[0], c[1], c[2]))
	}
	return out, nil
}

func newBox(swatches []Swatch) colorBox {
	b := colorBox{swatches: swatches}
	for _, s := range swatches {
		b.population += s.Count
	}
	return b
}

// splittable returns the index of the most populous box holding more than one
// color, or -1 when every box is a single color.
func splittable(boxes []colorBox) int {
	best := -1
	for i, b := range boxes {
		if len(b.swatches) < 2 {
			continue
		}
		if best < 0 || b.population > boxes[best].population {
			best = i
		}
	}
	return best
}

func channel(c Color, ch int) uint8 {
	switch ch {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

func (b colorBox) widestChannel() int {
	widest, span := 0, -1
	for ch := range 3 {
		lo, hi := uint8(255), uint8(0)
		for _, s := range b.swatches {
			v := channel(s.Color, ch)
			lo = min(lo, v)
			hi = max(hi, v)
		}
		if int(hi)-int(lo) > span {
			widest, span = ch, int(hi)-int(lo)
		}
	}
	return widest
}

// split cuts the box at the weighted median of its widest channel. Both halves
// are non-empty.
func (b colorBox) split() (colorBox, colorBox) {
	ch := b.widestChannel()
	sorted := slices.Clone(b.swatches)
	slices.SortStableFunc(sorted, func(x, y Swatch) int {
		return cmp.Compare(channel(x.Color, ch), channel(y.Color, ch))
	})

	cut, running := 1, 0
	for i, s := range sorted[:len(sorted)-1] {
		running += s.Count
		cut = i + 1
		if running*2 >= b.population {
			break
		}
	}
	return newBox(sorted[:cut]), newBox(sorted[cut:])
}

func (b colorBox) mean() clusters.Coordinates {
	values := make([][]float64, 3)
	weights := make([]float64, len(b.swatches))
	for ch := range values {
		values[ch] = make([]float64, len(b.swatches))
	}
	for i, s := range b.swatches {
		u := s.Color.unit()
		for ch := range 3 {
			values[ch][i] = u[ch]
		}
		weights[i] = float64(s.Count)
	}
	return clusters.Coordinates{
		stat.Mean(values[0], weights),
		stat.Mean(values[1], weights),
		stat.Mean(values[2], weights),
	}
}

// refine moves every center to the weighted mean of the swatches nearest to
// it and returns the final per-center pixel counts. A center that attracts no
// swatch keeps its position.
func refine(centers clusters.Clusters, swatches []Swatch, iterations int) []int {
	points := make([]clusters.Coordinates, len(swatches))
	for i, s := range swatches {
		u := s.Color.unit()
		points[i] = clusters.Coordinates{u[0], u[1], u[2]}
	}

	assign := func() ([][4]float64, []int) {
		sums := make([][4]float64, len(centers))
		counts := make([]int, len(centers))
		for i, p := range points {
			n := centers.Nearest(p)
			w := float64(swatches[i].Count)
			sums[n][0] += p[0] * w
			sums[n][1] += p[1] * w
			sums[n][2] += p[2] * w
			sums[n][3] += w
			counts[n] += swatches[i].Count
		}
		return sums, counts
	}

	for range max(iterations, 0) {
		sums, _ := assign()
		for i, s := range sums {
			if s[3] == 0 {
				continue
			}
			centers[i].Center = clusters.Coordinates{s[0] / s[3], s[1] / s[3], s[2] / s[3]}
		}
	}
	_, counts := assign()
	return counts
}
