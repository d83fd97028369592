package palette

import (
	"cmp"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// KMeans partitions the sampled pixels with k-means++. The seeding is random,
// so repeated runs on the same image may return different palettes.
type KMeans struct{}

func (KMeans) Name() string { return string(MethodKMeans) }

func (KMeans) Quantize(sample Sample, k int) ([]Color, error) {
	dataset := make(clusters.Observations, 0, sample.Pixels)
	for _, s := range sample.Swatches {
		u := s.Color.unit()
		for range s.Count {
			dataset = append(dataset, clusters.Coordinates{u[0], u[1], u[2]})
		}
	}
	if len(dataset) == 0 {
		return nil, ErrNoColors
	}

	cc, err := kmeans.New().Partition(dataset, min(k, len(dataset)))
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return cmp.Compare(len(b.Observations), len(a.Observations))
	})

	out := make([]Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		out = append(out, fromUnit(c.Center[0], c.Center[1], c.Center[2]))
	}
	return out, nil
}
