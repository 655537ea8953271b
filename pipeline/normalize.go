package pipeline

import "math"

// normalizeEpsilon bounds the relative range below which min-max scaling
// would amplify noise instead of spreading signal.
const normalizeEpsilon = 1e-9

// Normalize linearly rescales values so the observed minimum maps to 0.0
// and the maximum to 1.0. NaN entries are excluded from the min/max
// computation and propagate as NaN in the output; downstream stages resolve
// them to their documented fallbacks. An empty input, an all-NaN input, or
// a degenerate range returns all zeros. Normalize never fails.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	min, max := math.Inf(1), math.Inf(-1)
	seen := false
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		seen = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if !seen || degenerateRange(min, max) {
		return out
	}
	span := max - min
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (v - min) / span
	}
	return out
}

// degenerateRange reports whether max-min is numerically indistinguishable
// from zero, using a relative tolerance anchored at 1 for small magnitudes.
func degenerateRange(min, max float64) bool {
	return math.Abs(max-min) <= normalizeEpsilon*math.Max(1.0, math.Abs(max))
}
