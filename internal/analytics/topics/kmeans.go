package topics

import (
	"fmt"
	"math"
	"math/rand"
)

const kmeansIterations = 20

// kmeans runs Lloyd's algorithm over dense vectors and returns the cluster
// index per document. Initialization is seeded so repeated calls over the
// same corpus assign identically.
func kmeans(vectors [][]float64, k int) ([]int, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("kmeans: empty input")
	}
	if k <= 0 || k > len(vectors) {
		return nil, fmt.Errorf("kmeans: invalid cluster count %d for %d documents", k, len(vectors))
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("kmeans: zero-dimensional vectors")
	}

	rng := rand.New(rand.NewSource(int64(len(vectors))*31 + int64(k)))
	centers := make([][]float64, k)
	for i, idx := range rng.Perm(len(vectors))[:k] {
		centers[i] = append([]float64(nil), vectors[idx]...)
	}

	assign := make([]int, len(vectors))
	for it := 0; it < kmeansIterations; it++ {
		changed := false
		for i, vec := range vectors {
			best, bestDist := 0, math.Inf(1)
			for ci, center := range centers {
				if d := sqDist(vec, center); d < bestDist {
					best, bestDist = ci, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if it > 0 && !changed {
			break
		}

		counts := make([]int, k)
		sums := make([][]float64, k)
		for ci := range sums {
			sums[ci] = make([]float64, dim)
		}
		for i, vec := range vectors {
			ci := assign[i]
			counts[ci]++
			for j, v := range vec {
				sums[ci][j] += v
			}
		}
		for ci := range centers {
			if counts[ci] == 0 {
				continue // keep the previous center for empty clusters
			}
			for j := range centers[ci] {
				centers[ci][j] = sums[ci][j] / float64(counts[ci])
			}
		}
	}

	return assign, nil
}

func sqDist(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
