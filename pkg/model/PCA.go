package model

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ryuk2git/tuitiontier/pkg/core"
)

// PCA projects rows onto the top principal components of the training data.
type PCA struct {
	K          int         // maximum number of components; the fitted count is min(K, features)
	Means      []float64
	Components [][]float64 // k x p, unit vectors, by descending explained variance
	Explained  []float64   // eigenvalues of the sample covariance
	Ratio      []float64   // Explained / total variance
}

// NewPCA creates and returns a new PCA model.
func NewPCA(k int) *PCA {
	return &PCA{K: k}
}

// Fit computes the principal components from the covariance eigendecomposition.
// Each component is sign-normalised so that its largest-magnitude loading is positive,
// which makes the basis reproducible.
func (pca *PCA) Fit(X [][]float64) error {
	if pca.Components != nil {
		return ErrAlreadyFitted
	}
	if pca.K < 1 {
		return fmt.Errorf("pca: component count %d must be positive", pca.K)
	}
	n := len(X)
	if n < 2 {
		return fmt.Errorf("%w: pca needs at least 2 rows, got %d", ErrInsufficientData, n)
	}
	d := len(X[0])
	if d == 0 {
		return fmt.Errorf("%w: pca needs at least 1 feature", ErrInsufficientData)
	}

	data := mat.NewDense(n, d, nil)
	for i, row := range X {
		if len(row) != d {
			return fmt.Errorf("%w: row %d has %d columns, want %d", core.ErrDimensionMismatch, i, len(row), d)
		}
		data.SetRow(i, row)
	}

	means := make([]float64, d)
	for j := 0; j < d; j++ {
		means[j] = stat.Mean(mat.Col(nil, j, data), nil)
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, data, nil)

	var eig mat.EigenSym
	if ok := eig.Factorize(&cov, true); !ok {
		return errors.New("pca: eigendecomposition did not converge")
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	order := make([]int, d)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] > values[order[b]] })

	total := 0.0
	for _, v := range values {
		total += math.Max(v, 0)
	}

	k := min(pca.K, d)
	components := make([][]float64, k)
	explained := make([]float64, k)
	ratio := make([]float64, k)
	for c := 0; c < k; c++ {
		v := mat.Col(nil, order[c], &vectors)
		flipSign(v)
		components[c] = v
		explained[c] = math.Max(values[order[c]], 0)
		if total > 0 {
			ratio[c] = explained[c] / total
		}
	}

	pca.Means = means
	pca.Components = components
	pca.Explained = explained
	pca.Ratio = ratio
	return nil
}

// Transform projects x onto the fitted components.
func (pca *PCA) Transform(x []float64) ([]float64, error) {
	if pca.Components == nil {
		return nil, core.ErrNotFitted
	}
	d := len(pca.Means)
	if len(x) != d {
		return nil, fmt.Errorf("%w: got %d features, want %d", core.ErrDimensionMismatch, len(x), d)
	}
	centered := make([]float64, d)
	for j := range x {
		centered[j] = x[j] - pca.Means[j]
	}
	out := mat.NewVecDense(len(pca.Components), nil)
	out.MulVec(pca.basis(), mat.NewVecDense(d, centered))
	return mat.Col(nil, 0, out), nil
}

// basis returns the components as a k x p matrix.
func (pca *PCA) basis() *mat.Dense {
	k, d := len(pca.Components), len(pca.Means)
	b := mat.NewDense(k, d, nil)
	for c, v := range pca.Components {
		b.SetRow(c, v)
	}
	return b
}

// flipSign makes the entry with the largest magnitude positive.
func flipSign(v []float64) {
	best := 0
	for i := range v {
		if math.Abs(v[i]) > math.Abs(v[best]) {
			best = i
		}
	}
	if v[best] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
}
