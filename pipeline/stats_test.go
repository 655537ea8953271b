package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNanMean_SkipsNaN(t *testing.T) {
	assert.Equal(t, 2.0, nanMean([]float64{1, nan(), 3}))
}

func TestNanMean_AllNaN_ReturnsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(nanMean([]float64{nan()})))
	assert.True(t, math.IsNaN(nanMean(nil)))
}

func TestNanMinMax(t *testing.T) {
	values := []float64{nan(), 4, -2, 7}
	assert.Equal(t, -2.0, nanMin(values))
	assert.Equal(t, 7.0, nanMax(values))
	assert.True(t, math.IsNaN(nanMin(nil)))
	assert.True(t, math.IsNaN(nanMax([]float64{nan()})))
}

func TestRollingVariability_ShortWindowsUseDefault(t *testing.T) {
	out := rollingVariability([]float64{90}, 3)
	assert.Equal(t, []float64{defaultVariability}, out)
}

func TestRollingVariability_ConstantSeriesIsZero(t *testing.T) {
	out := rollingVariability([]float64{10, 10, 10, 10}, 3)
	// First position has one sample; the rest see zero spread.
	assert.Equal(t, defaultVariability, out[0])
	for _, v := range out[1:] {
		assert.Equal(t, 0.0, v)
	}
}

func TestRollingVariability_TrailingWindow(t *testing.T) {
	out := rollingVariability([]float64{1, 2, 3, 4}, 3)
	// Window [1, 2]: sample std ~0.7071, mean 1.5.
	assert.InDelta(t, 0.4714, out[1], 1e-4)
	// Window [1, 2, 3]: sample std 1.0, mean 2.0.
	assert.InDelta(t, 0.5, out[2], 1e-9)
	// Window [2, 3, 4]: sample std 1.0, mean 3.0.
	assert.InDelta(t, 1.0/3.0, out[3], 1e-9)
}

func TestRollingVariability_ZeroMeanUsesDefault(t *testing.T) {
	out := rollingVariability([]float64{-1, 1}, 3)
	assert.Equal(t, defaultVariability, out[1])
}

func TestFillMean(t *testing.T) {
	values := []float64{1, nan(), 3}
	fillMean(values, 99)
	assert.Equal(t, []float64{1, 2, 3}, values)

	empty := []float64{nan(), nan()}
	fillMean(empty, 0.5)
	assert.Equal(t, []float64{0.5, 0.5}, empty)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-1, 0, 1))
	assert.Equal(t, 1.0, clamp(2, 0, 1))
	assert.Equal(t, 0.25, clamp(0.25, 0, 1))
	assert.True(t, math.IsNaN(clamp(nan(), 0, 1)))
}
