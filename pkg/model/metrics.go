package model

import (
	"fmt"
	"math"

	"github.com/ryuk2git/tuitiontier/pkg/core"
	"github.com/ryuk2git/tuitiontier/pkg/stats"
)

// Inertia is the sum of squared distances from each row to its assigned centroid.
func Inertia(X [][]float64, labels []int, centroids [][]float64) (float64, error) {
	if len(X) != len(labels) {
		return 0, fmt.Errorf("%w: %d rows, %d labels", core.ErrDimensionMismatch, len(X), len(labels))
	}
	s := 0.0
	for i, x := range X {
		k := labels[i]
		if k < 0 || k >= len(centroids) {
			return 0, fmt.Errorf("row %d: label %d out of range", i, k)
		}
		s += stats.SquaredDistance(x, centroids[k])
	}
	return s, nil
}

// Silhouette returns the mean silhouette coefficient over all rows, using Euclidean
// distance. Rows in singleton clusters score 0. It needs between 2 and len(X)-1 clusters.
func Silhouette(X [][]float64, labels []int) (float64, error) {
	n := len(X)
	if n != len(labels) {
		return 0, fmt.Errorf("%w: %d rows, %d labels", core.ErrDimensionMismatch, n, len(labels))
	}
	k := 0
	for i, l := range labels {
		if l < 0 {
			return 0, fmt.Errorf("row %d: negative label %d", i, l)
		}
		k = max(k, l+1)
	}
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	clusters := 0
	for _, c := range sizes {
		if c > 0 {
			clusters++
		}
	}
	if clusters < 2 || clusters > n-1 {
		return 0, fmt.Errorf("%w: silhouette needs 2..%d clusters, got %d", ErrInsufficientData, n-1, clusters)
	}

	total := 0.0
	sums := make([]float64, k)
	for i := 0; i < n; i++ {
		own := labels[i]
		if sizes[own] == 1 {
			continue
		}
		clear(sums)
		for j := 0; j < n; j++ {
			if i != j {
				sums[labels[j]] += distance(X[i], X[j])
			}
		}
		a := sums[own] / float64(sizes[own]-1)
		b := math.Inf(1)
		for l, s := range sums {
			if l != own && sizes[l] > 0 {
				b = min(b, s/float64(sizes[l]))
			}
		}
		if den := max(a, b); den > 0 {
			total += (b - a) / den
		}
	}
	return total / float64(n), nil
}

func distance(a, b []float64) float64 {
	return math.Sqrt(stats.SquaredDistance(a, b))
}
