package stats

import (
	"fmt"

	"github.com/ryuk2git/tuitiontier/pkg/core"
	"gonum.org/v1/gonum/stat"
)

// minStd is the smallest standard deviation used as a divisor; below it a column is
// treated as constant and scaled by 1.
const minStd = 1e-12

// StandardScaler rescales each column to zero mean and unit variance using fit-time statistics.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit computes per-column mean and population standard deviation.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("%w: no rows", core.ErrFitPrecondition)
	}
	c := len(X[0])
	mean := make([]float64, c)
	std := make([]float64, c)
	for j := 0; j < c; j++ {
		col := make([]float64, len(X))
		for i := range X {
			if len(X[i]) != c {
				return fmt.Errorf("%w: row %d has %d columns, want %d", core.ErrDimensionMismatch, i, len(X[i]), c)
			}
			col[i] = X[i][j]
		}
		mean[j], std[j] = stat.PopMeanStdDev(col, nil)
		if std[j] < minStd {
			std[j] = 1
		}
	}
	s.Mean, s.Std = mean, std
	return nil
}

// Transform returns (x - mean) / std as a new slice.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if s.Mean == nil {
		return nil, core.ErrNotFitted
	}
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("%w: got %d features, want %d", core.ErrDimensionMismatch, len(x), len(s.Mean))
	}
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out, nil
}
