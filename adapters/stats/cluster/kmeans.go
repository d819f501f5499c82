// Package cluster implements k-means partitioning with k-means++
// initialization. The random source is seeded explicitly so identical
// inputs and the same seed always produce identical assignments.
package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"penguinlab/internal/errors"
)

// Config controls a k-means run.
type Config struct {
	K       int
	MaxIter int
	Seed    int64
}

// Result holds a fitted partition.
type Result struct {
	K           int
	Assignments []int       // cluster index per observation
	Centroids   [][]float64 // K x d
	Sizes       []int       // observations per cluster
	Inertia     float64     // sum of squared distances to assigned centroid
	Iterations  int
}

// Run partitions the row-major matrix rows into cfg.K clusters.
func Run(rows [][]float64, cfg Config) (*Result, error) {
	n := len(rows)
	if n == 0 {
		return nil, errors.InvalidInput("no observations to cluster")
	}
	if cfg.K < 2 {
		return nil, errors.InvalidInput("cluster count must be at least 2")
	}
	if n < cfg.K {
		return nil, errors.InvalidInput(fmt.Sprintf("cannot form %d clusters from %d observations", cfg.K, n))
	}
	if cfg.MaxIter < 1 {
		cfg.MaxIter = 100
	}

	d := len(rows[0])
	rng := rand.New(rand.NewSource(cfg.Seed))
	centroids := seedCentroids(rows, cfg.K, rng)

	assign := make([]int, n)
	result := &Result{K: cfg.K, Centroids: centroids}

	for it := 0; it < cfg.MaxIter; it++ {
		changed := false
		result.Inertia = 0

		// Assignment step.
		for i, row := range rows {
			best, bestDist := nearestCentroid(row, centroids)
			if assign[i] != best {
				changed = true
			}
			assign[i] = best
			result.Inertia += bestDist
		}
		result.Iterations = it + 1

		// Update step: move each centroid to the mean of its members.
		sums := make([][]float64, cfg.K)
		counts := make([]int, cfg.K)
		for k := range sums {
			sums[k] = make([]float64, d)
		}
		for i, row := range rows {
			k := assign[i]
			counts[k]++
			for j, v := range row {
				sums[k][j] += v
			}
		}
		for k := 0; k < cfg.K; k++ {
			if counts[k] == 0 {
				// Empty cluster keeps its previous centroid.
				continue
			}
			for j := 0; j < d; j++ {
				centroids[k][j] = sums[k][j] / float64(counts[k])
			}
		}

		if !changed {
			break
		}
	}

	result.Assignments = assign
	result.Sizes = make([]int, cfg.K)
	for _, k := range assign {
		result.Sizes[k]++
	}
	return result, nil
}

// Labels renders the assignments as categorical labels for the derived
// cluster column ("cluster 1" .. "cluster K").
func (r *Result) Labels() []string {
	labels := make([]string, len(r.Assignments))
	for i, k := range r.Assignments {
		labels[i] = fmt.Sprintf("cluster %d", k+1)
	}
	return labels
}

// seedCentroids picks initial centers with k-means++: the first uniformly,
// the rest proportional to squared distance from the nearest chosen center.
func seedCentroids(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(rows)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), rows[rng.Intn(n)]...))

	distSq := make([]float64, n)
	for len(centroids) < k {
		total := 0.0
		for i, row := range rows {
			_, d2 := nearestCentroid(row, centroids)
			distSq[i] = d2
			total += d2
		}

		if total == 0 {
			// All points coincide with chosen centers; fall back to uniform.
			centroids = append(centroids, append([]float64(nil), rows[rng.Intn(n)]...))
			continue
		}

		r := rng.Float64() * total
		cumulative := 0.0
		picked := n - 1
		for i, d2 := range distSq {
			cumulative += d2
			if cumulative >= r {
				picked = i
				break
			}
		}
		centroids = append(centroids, append([]float64(nil), rows[picked]...))
	}
	return centroids
}

// nearestCentroid returns the index of and squared distance to the closest centroid
func nearestCentroid(row []float64, centroids [][]float64) (int, float64) {
	best, bestDist := -1, math.MaxFloat64
	for k, c := range centroids {
		d2 := 0.0
		for j, v := range row {
			diff := v - c[j]
			d2 += diff * diff
		}
		if d2 < bestDist {
			bestDist = d2
			best = k
		}
	}
	return best, bestDist
}
