package testutil

import (
	"math"
	"testing"
)

func TestSineAmplitudeAndPeriod(t *testing.T) {
	const fs = 1000.0

	x := Sine(250, fs, 2.0, 8)

	// 250 Hz at 1 kHz: period of 4 samples, peaks at +/-2.
	want := []float64{0, 2, 0, -2, 0, 2, 0, -2}
	for i := range x {
		if math.Abs(x[i]-want[i]) > 1e-12 {
			t.Fatalf("sample %d: got %v, want %v", i, x[i], want[i])
		}
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := Noise(42, 1.0, 128)
	b := Noise(42, 1.0, 128)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between equal seeds", i)
		}

		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("sample %d = %v outside [-1, 1]", i, a[i])
		}
	}
}

func TestMixScale(t *testing.T) {
	got := Mix([]float64{1, 2}, []float64{3, 4})
	RequireSliceNearlyEqual(t, got, []float64{4, 6}, 0)

	got = Scale([]float64{1, 2}, 0.5)
	RequireSliceNearlyEqual(t, got, []float64{0.5, 1}, 0)
}

func TestImpulseDC(t *testing.T) {
	imp := Impulse(4, 1)
	RequireSliceNearlyEqual(t, imp, []float64{0, 1, 0, 0}, 0)

	dc := DC(3, 3)
	RequireSliceNearlyEqual(t, dc, []float64{3, 3, 3}, 0)
}
