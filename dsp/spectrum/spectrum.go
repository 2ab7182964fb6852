package spectrum

import (
	"math"
	"math/cmplx"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// SIMD-optimized implementations are used when available (AVX2, SSE2,
// NEON) via the vecmath kernels.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)

	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Power(out, re, im)

	return out
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}

	return out
}

// LevelDB converts a linear RMS value to dB re the given offset:
// 20*log10(rms) + offset. Returns -Inf for non-positive input.
func LevelDB(rms, offset float64) float64 {
	if rms <= 0 {
		return math.Inf(-1)
	}

	return 20*math.Log10(rms) + offset
}
