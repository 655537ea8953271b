package pipeline

import (
	"math"
	"testing"
)

func TestNormalize_EmptyInput_ReturnsEmpty(t *testing.T) {
	out := Normalize(nil)
	if len(out) != 0 {
		t.Errorf("expected empty output, got %v", out)
	}
}

func TestNormalize_ConstantSequence_AllZeros(t *testing.T) {
	out := Normalize([]float64{3.5, 3.5, 3.5})
	for i, v := range out {
		if v != 0 {
			t.Errorf("index %d: got %v, want 0", i, v)
		}
	}
}

func TestNormalize_AllNaN_AllZeros(t *testing.T) {
	out := Normalize([]float64{nan(), nan()})
	for i, v := range out {
		if v != 0 {
			t.Errorf("index %d: got %v, want 0", i, v)
		}
	}
}

func TestNormalize_MapsRangeToUnitInterval(t *testing.T) {
	out := Normalize([]float64{10, 20, 15})
	if out[0] != 0 {
		t.Errorf("min: got %v, want 0", out[0])
	}
	if out[1] != 1 {
		t.Errorf("max: got %v, want 1", out[1])
	}
	if out[2] != 0.5 {
		t.Errorf("mid: got %v, want 0.5", out[2])
	}
}

func TestNormalize_OutputWithinUnitInterval(t *testing.T) {
	out := Normalize([]float64{-5, 0, 2, 100, 37.5})
	for i, v := range out {
		if v < 0 || v > 1 {
			t.Errorf("index %d: %v outside [0, 1]", i, v)
		}
	}
}

func TestNormalize_NaNPropagatesAsMissing(t *testing.T) {
	out := Normalize([]float64{1, nan(), 3})
	if out[0] != 0 {
		t.Errorf("got %v, want 0", out[0])
	}
	if !math.IsNaN(out[1]) {
		t.Errorf("got %v, want NaN", out[1])
	}
	if out[2] != 1 {
		t.Errorf("got %v, want 1", out[2])
	}
}

func TestNormalize_NearDegenerateRange_AllZeros(t *testing.T) {
	out := Normalize([]float64{1.0, 1.0 + 1e-12})
	for i, v := range out {
		if v != 0 {
			t.Errorf("index %d: got %v, want 0", i, v)
		}
	}
}
