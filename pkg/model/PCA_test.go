package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryuk2git/tuitiontier/pkg/core"
)

func TestPCA_FindsDominantDirection(t *testing.T) {
	// Points along y = x with small orthogonal noise.
	X := [][]float64{
		{-2, -2.1}, {-1, -0.9}, {0, 0.1}, {1, 0.9}, {2, 2.1}, {3, 2.9},
	}
	pca := NewPCA(3)
	require.NoError(t, pca.Fit(X))

	require.Len(t, pca.Components, 2, "component count is capped by the feature count")
	first := pca.Components[0]
	assert.InDelta(t, 1/math.Sqrt2, first[0], 0.05)
	assert.InDelta(t, 1/math.Sqrt2, first[1], 0.05)
	assert.Greater(t, pca.Explained[0], pca.Explained[1])
	assert.InDelta(t, 1.0, pca.Ratio[0]+pca.Ratio[1], 1e-9)

	for _, c := range pca.Components {
		norm := 0.0
		for _, v := range c {
			norm += v * v
		}
		assert.InDelta(t, 1.0, norm, 1e-9)
	}
	dot := pca.Components[0][0]*pca.Components[1][0] + pca.Components[0][1]*pca.Components[1][1]
	assert.InDelta(t, 0.0, dot, 1e-9)
}

func TestPCA_KeepsAtMostK(t *testing.T) {
	X := [][]float64{
		{1, 0, 0, 2}, {0, 1, 0, 1}, {0, 0, 1, 5}, {1, 1, 0, 3}, {2, 0, 1, 0},
	}
	pca := NewPCA(3)
	require.NoError(t, pca.Fit(X))
	require.Len(t, pca.Components, 3)
	for i := 1; i < len(pca.Explained); i++ {
		assert.GreaterOrEqual(t, pca.Explained[i-1], pca.Explained[i])
	}

	out, err := pca.Transform(X[0])
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestPCA_TransformIsDeterministic(t *testing.T) {
	X := [][]float64{{1, 2, 3}, {2, 1, 0}, {4, 4, 4}, {0, 1, 5}}
	a, b := NewPCA(2), NewPCA(2)
	require.NoError(t, a.Fit(X))
	require.NoError(t, b.Fit(X))
	assert.Equal(t, a.Components, b.Components)

	x := []float64{1, 1, 1}
	p1, err := a.Transform(x)
	require.NoError(t, err)
	p2, err := a.Transform(x)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.Equal(t, []float64{1, 1, 1}, x)
}

func TestPCA_SignConvention(t *testing.T) {
	X := [][]float64{{0, 0}, {1, -3}, {2, -6}, {3, -9.1}}
	pca := NewPCA(1)
	require.NoError(t, pca.Fit(X))
	c := pca.Components[0]
	assert.Greater(t, math.Abs(c[1]), math.Abs(c[0]))
	assert.Greater(t, c[1], 0.0, "largest loading is positive")
}

func TestPCA_Errors(t *testing.T) {
	pca := NewPCA(2)
	_, err := pca.Transform([]float64{1})
	assert.ErrorIs(t, err, core.ErrNotFitted)

	assert.ErrorIs(t, pca.Fit([][]float64{{1, 2}}), ErrInsufficientData)
	assert.ErrorIs(t, pca.Fit([][]float64{{1, 2}, {1}}), core.ErrDimensionMismatch)
	assert.Error(t, NewPCA(0).Fit([][]float64{{1}, {2}}))

	require.NoError(t, pca.Fit([][]float64{{1, 2}, {3, 5}, {0, 1}}))
	assert.ErrorIs(t, pca.Fit([][]float64{{1, 2}, {3, 5}}), ErrAlreadyFitted)
	_, err = pca.Transform([]float64{1, 2, 3})
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}
