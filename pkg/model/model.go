package model

import (
	"errors"

	"github.com/ryuk2git/tuitiontier/pkg/core"
)

var (
	// ErrAlreadyFitted is returned by Fit on a model that has already been fitted.
	// Fitted state is immutable; build a new model to fit again.
	ErrAlreadyFitted = core.ErrAlreadyFitted

	// ErrInsufficientData is returned when there are too few rows to fit.
	ErrInsufficientData = errors.New("insufficient data")
)

// Clusterer is for unsupervised clustering.
type Clusterer interface {
	Fit(X [][]float64) error
	Predict(x []float64) (int, error) // cluster index
}

// Transformer is for preprocessing steps (fit on train, transform any compatible row).
type Transformer interface {
	Fit(X [][]float64) error
	Transform(x []float64) ([]float64, error)
}

var (
	_ Clusterer   = (*KMeans)(nil)
	_ Transformer = (*PCA)(nil)
)
