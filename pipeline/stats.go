package pipeline

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// defaultVariability stands in for a rolling coefficient of variation that
// cannot be computed (fewer than two samples, or a zero mean).
const defaultVariability = 0.1

// nanMean returns the mean of the finite entries, or NaN when there are none.
func nanMean(values []float64) float64 {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return math.NaN()
	}
	return stat.Mean(finite, nil)
}

// nanMin returns the smallest finite entry, or NaN when there are none.
func nanMin(values []float64) float64 {
	min := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
	}
	return min
}

// nanMax returns the largest finite entry, or NaN when there are none.
func nanMax(values []float64) float64 {
	max := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return max
}

// rollingVariability computes a trailing-window coefficient of variation
// (sample standard deviation over mean) for each position. Windows with
// fewer than two finite samples, or a zero mean, yield defaultVariability.
func rollingVariability(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		finite := make([]float64, 0, window)
		for _, v := range values[lo : i+1] {
			if !math.IsNaN(v) {
				finite = append(finite, v)
			}
		}
		if len(finite) < 2 {
			out[i] = defaultVariability
			continue
		}
		mean := stat.Mean(finite, nil)
		if mean == 0 {
			out[i] = defaultVariability
			continue
		}
		cv := stat.StdDev(finite, nil) / mean
		if math.IsNaN(cv) {
			cv = defaultVariability
		}
		out[i] = cv
	}
	return out
}

// clamp bounds v into [lo, hi]. NaN passes through untouched.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clip01 bounds every entry into [0, 1] in place and returns the slice.
func clip01(values []float64) []float64 {
	for i, v := range values {
		values[i] = clamp(v, 0.0, 1.0)
	}
	return values
}

// fillMean replaces NaN entries in place with the mean of the finite ones,
// falling back to def when no finite entry exists.
func fillMean(values []float64, def float64) {
	mean := nanMean(values)
	if math.IsNaN(mean) {
		mean = def
	}
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = mean
		}
	}
}

// fillConst replaces NaN entries in place with c.
func fillConst(values []float64, c float64) {
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = c
		}
	}
}

// orZero maps NaN to 0, the documented fallback for missing tyre age.
func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
