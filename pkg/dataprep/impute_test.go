package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryuk2git/tuitiontier/pkg/core"
)

func TestMedianImputer(t *testing.T) {
	nan := core.Missing
	X := [][]float64{
		{1, 10},
		{nan, 20},
		{3, nan},
		{5, 40},
	}
	imp := NewMedianImputer([]string{"a", "b"})
	require.NoError(t, imp.Fit(X))
	assert.Equal(t, []float64{3, 20}, imp.Medians)

	out, err := imp.Transform([]float64{nan, 7})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, out)

	// input untouched
	in := []float64{nan, nan}
	_, err = imp.Transform(in)
	require.NoError(t, err)
	assert.True(t, core.IsMissing(in[0]))
}

func TestMedianImputer_AllMissingColumn(t *testing.T) {
	nan := core.Missing
	imp := NewMedianImputer([]string{"a", "luas_tanah"})
	err := imp.Fit([][]float64{{1, nan}, {2, nan}})
	require.ErrorIs(t, err, core.ErrFitPrecondition)

	var fe *core.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "luas_tanah", fe.Field)
}

func TestMedianImputer_Errors(t *testing.T) {
	imp := NewMedianImputer(nil)
	_, err := imp.Transform([]float64{1})
	assert.ErrorIs(t, err, core.ErrNotFitted)

	assert.ErrorIs(t, imp.Fit(nil), core.ErrFitPrecondition)
	assert.ErrorIs(t, imp.Fit([][]float64{{1, 2}, {3}}), core.ErrDimensionMismatch)

	require.NoError(t, imp.Fit([][]float64{{1, 2}}))
	_, err = imp.Transform([]float64{1})
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}
