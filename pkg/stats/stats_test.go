package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))

	x := []float64{3, 1, 2}
	Median(x)
	assert.Equal(t, []float64{3, 1, 2}, x, "Median must not reorder its input")
}

func TestMeanVariance(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 5.0, Mean(x), 1e-12)
	assert.InDelta(t, 4.0, Variance(x), 1e-12)
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Variance(nil))
}

func TestMeanColumnVariance(t *testing.T) {
	X := [][]float64{{0, 1}, {2, 1}}
	// column variances 1 and 0
	assert.InDelta(t, 0.5, MeanColumnVariance(X), 1e-12)
	assert.Equal(t, 0.0, MeanColumnVariance(nil))
}

func TestSquaredDistance(t *testing.T) {
	assert.Equal(t, 25.0, SquaredDistance([]float64{0, 0}, []float64{3, 4}))
	assert.Equal(t, 0.0, SquaredDistance([]float64{1}, []float64{1}))
}
