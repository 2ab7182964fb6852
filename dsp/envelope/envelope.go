package envelope

import (
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/SarinahSutojo/spatial-glimpse-estimation/dsp/resample"
)

// Envelope errors.
var (
	ErrInvalidCutoff     = errors.New("envelope: cutoff must lie in (0, Nyquist)")
	ErrInvalidSampleRate = errors.New("envelope: sample rate must be positive")
	ErrInvalidDecimation = errors.New("envelope: decimation factor must be positive")
)

// Analytic returns the analytic signal of x via the FFT method: positive
// frequencies doubled, negative frequencies zeroed, DC (and Nyquist for
// even lengths) kept.
func Analytic(x []float64) []complex128 {
	n := len(x)
	if n == 0 {
		return nil
	}

	if n == 1 {
		return []complex128{complex(x[0], 0)}
	}

	ft := fourier.NewCmplxFFT(n)

	buf := make([]complex128, n)
	for i, v := range x {
		buf[i] = complex(v, 0)
	}

	coeff := ft.Coefficients(nil, buf)

	half := n / 2
	if n%2 == 0 {
		// Double strictly positive frequencies, keep DC and Nyquist.
		for k := 1; k < half; k++ {
			coeff[k] *= 2
		}

		for k := half + 1; k < n; k++ {
			coeff[k] = 0
		}
	} else {
		for k := 1; k <= half; k++ {
			coeff[k] *= 2
		}

		for k := half + 1; k < n; k++ {
			coeff[k] = 0
		}
	}

	out := ft.Sequence(nil, coeff)

	// The gonum inverse is unnormalized; a round trip scales by n.
	scale := complex(1/float64(n), 0)
	for i := range out {
		out[i] *= scale
	}

	return out
}

// Magnitude returns the analytic-signal envelope |hilbert(x)| of x.
func Magnitude(x []float64) []float64 {
	analytic := Analytic(x)
	if analytic == nil {
		return nil
	}

	re := make([]float64, len(analytic))
	im := make([]float64, len(analytic))

	for i, v := range analytic {
		re[i] = real(v)
		im[i] = imag(v)
	}

	out := make([]float64, len(analytic))
	vecmath.Magnitude(out, re, im)

	return out
}

// Lowpass is a first-order Butterworth lowpass filter.
type Lowpass struct {
	b0, b1, a1 float64

	x1, y1 float64
}

// NewLowpass designs a first-order Butterworth lowpass at the given
// cutoff via the bilinear transform.
func NewLowpass(cutoffHz, sampleRate float64) (*Lowpass, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	if cutoffHz <= 0 || cutoffHz >= sampleRate/2 {
		return nil, fmt.Errorf("%w: %g Hz at %g Hz", ErrInvalidCutoff, cutoffHz, sampleRate)
	}

	wc := math.Tan(math.Pi * cutoffHz / sampleRate)

	return &Lowpass{
		b0: wc / (1 + wc),
		b1: wc / (1 + wc),
		a1: (wc - 1) / (1 + wc),
	}, nil
}

// ProcessSample filters one sample.
func (l *Lowpass) ProcessSample(x float64) float64 {
	y := l.b0*x + l.b1*l.x1 - l.a1*l.y1
	l.x1 = x
	l.y1 = y

	return y
}

// ProcessBlock filters buf in place.
func (l *Lowpass) ProcessBlock(buf []float64) {
	for i, v := range buf {
		buf[i] = l.ProcessSample(v)
	}
}

// Reset clears the filter state.
func (l *Lowpass) Reset() {
	l.x1 = 0
	l.y1 = 0
}

// Extract computes the analytic-signal envelope of band, smooths it with
// a first-order lowpass at cutoffHz, and decimates it by the given
// factor. The returned envelope is sampled at sampleRate/decimation.
func Extract(band []float64, sampleRate, cutoffHz float64, decimation int) ([]float64, error) {
	if decimation <= 0 {
		return nil, ErrInvalidDecimation
	}

	env := Magnitude(band)
	if env == nil {
		return nil, nil
	}

	lp, err := NewLowpass(cutoffHz, sampleRate)
	if err != nil {
		return nil, err
	}

	lp.ProcessBlock(env)

	out, err := resample.Rational(env, 1, decimation)
	if err != nil {
		return nil, fmt.Errorf("envelope: decimation failed: %w", err)
	}

	return out, nil
}
