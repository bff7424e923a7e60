package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Variance computes the population variance of a slice.
func Variance(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.PopVariance(x, nil)
}

// Median returns the median value of the slice (allocates a copy).
func Median(x []float64) float64 {
	cp := make([]float64, len(x))
	copy(cp, x)
	return MedianInPlace(cp)
}

// MedianInPlace sorts and finds the median in-place (modifies input).
func MedianInPlace(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	sort.Float64s(x)
	mid := n >> 1
	if n&1 == 0 {
		return (x[mid-1] + x[mid]) * 0.5
	}
	return x[mid]
}

// Column copies column j out of X.
func Column(X [][]float64, j int) []float64 {
	col := make([]float64, len(X))
	for i := range X {
		col[i] = X[i][j]
	}
	return col
}

// MeanColumnVariance is the average of the per-column population variances.
func MeanColumnVariance(X [][]float64) float64 {
	if len(X) == 0 || len(X[0]) == 0 {
		return 0
	}
	total := 0.0
	for j := range X[0] {
		total += Variance(Column(X, j))
	}
	return total / float64(len(X[0]))
}

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
