package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryuk2git/tuitiontier/pkg/core"
)

func TestStandardScaler(t *testing.T) {
	X := [][]float64{{1, 5}, {3, 5}, {5, 5}}
	s := NewStandardScaler()
	require.NoError(t, s.Fit(X))

	assert.Equal(t, []float64{3, 5}, s.Mean)
	assert.InDelta(t, 1.632993161855452, s.Std[0], 1e-12)
	assert.Equal(t, 1.0, s.Std[1], "constant column is floored to 1")

	out, err := s.Transform([]float64{5, 5})
	require.NoError(t, err)
	assert.InDelta(t, 2/1.632993161855452, out[0], 1e-12)
	assert.Equal(t, 0.0, out[1])
}

func TestStandardScaler_Idempotent(t *testing.T) {
	s := NewStandardScaler()
	require.NoError(t, s.Fit([][]float64{{1, 2}, {3, 8}, {4, 1}}))
	x := []float64{2, 2}
	a, err := s.Transform(x)
	require.NoError(t, err)
	b, err := s.Transform(x)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, []float64{2, 2}, x)
}

func TestStandardScaler_Errors(t *testing.T) {
	s := NewStandardScaler()
	_, err := s.Transform([]float64{1})
	assert.ErrorIs(t, err, core.ErrNotFitted)
	assert.ErrorIs(t, s.Fit(nil), core.ErrFitPrecondition)
	assert.ErrorIs(t, s.Fit([][]float64{{1}, {1, 2}}), core.ErrDimensionMismatch)

	require.NoError(t, s.Fit([][]float64{{1}, {2}}))
	_, err = s.Transform([]float64{1, 2})
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}
