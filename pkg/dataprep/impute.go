package dataprep

import (
	"fmt"

	"github.com/ryuk2git/tuitiontier/pkg/core"
	"github.com/ryuk2git/tuitiontier/pkg/stats"
)

// ---------- Median Imputation ----------

// MedianImputer replaces missing entries with the column median seen at fit time.
type MedianImputer struct {
	Medians []float64
	Columns []string // optional, used in error messages
}

// NewMedianImputer creates an imputer. columns may be nil.
func NewMedianImputer(columns []string) *MedianImputer {
	return &MedianImputer{Columns: columns}
}

// Fit computes per-column medians ignoring missing entries.
// A column with no valid value fails with core.ErrFitPrecondition.
func (m *MedianImputer) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("%w: no rows", core.ErrFitPrecondition)
	}
	cols := len(X[0])
	medians := make([]float64, cols)
	for j := 0; j < cols; j++ {
		valid := make([]float64, 0, len(X))
		for i := range X {
			if len(X[i]) != cols {
				return fmt.Errorf("%w: row %d has %d columns, want %d", core.ErrDimensionMismatch, i, len(X[i]), cols)
			}
			if !core.IsMissing(X[i][j]) {
				valid = append(valid, X[i][j])
			}
		}
		if len(valid) == 0 {
			return core.NewFieldError(core.ErrFitPrecondition, m.columnName(j), nil)
		}
		medians[j] = stats.MedianInPlace(valid)
	}
	m.Medians = medians
	return nil
}

// Transform returns a copy of x with missing entries replaced.
func (m *MedianImputer) Transform(x []float64) ([]float64, error) {
	if m.Medians == nil {
		return nil, core.ErrNotFitted
	}
	if len(x) != len(m.Medians) {
		return nil, fmt.Errorf("%w: got %d features, want %d", core.ErrDimensionMismatch, len(x), len(m.Medians))
	}
	out := make([]float64, len(x))
	for j, v := range x {
		if core.IsMissing(v) {
			v = m.Medians[j]
		}
		out[j] = v
	}
	return out, nil
}

func (m *MedianImputer) columnName(j int) string {
	if j < len(m.Columns) {
		return m.Columns[j]
	}
	return fmt.Sprintf("column %d", j)
}
