package modfb

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Filterbank errors.
var (
	ErrNoChannels        = errors.New("modfb: at least one center frequency is required")
	ErrInvalidSampleRate = errors.New("modfb: sample rate must be positive")
	ErrInvalidCenter     = errors.New("modfb: center frequencies must be positive and ascending")
	ErrInputTooShort     = errors.New("modfb: input must hold at least one odd-length sample frame")
)

const (
	lowpassOrder = 3
	bandpassQ    = 1.0
)

// DefaultCenters returns the standard modulation center frequencies
// 1-256 Hz in octave steps. The first channel is the lowpass.
func DefaultCenters() []float64 {
	return []float64{1, 2, 4, 8, 16, 32, 64, 128, 256}
}

// Filterbank applies a lowpass + bandpass modulation filterbank to
// envelope signals at a fixed sample rate.
type Filterbank struct {
	centers    []float64
	sampleRate float64
}

// New creates a modulation filterbank. The first center frequency is the
// lowpass cutoff; the remaining centers are bandpass channels. Centers
// must be positive and strictly ascending.
func New(centers []float64, sampleRate float64) (*Filterbank, error) {
	if len(centers) == 0 {
		return nil, ErrNoChannels
	}

	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	for i, fc := range centers {
		if fc <= 0 || (i > 0 && fc <= centers[i-1]) {
			return nil, fmt.Errorf("%w: %g Hz at index %d", ErrInvalidCenter, fc, i)
		}
	}

	c := make([]float64, len(centers))
	copy(c, centers)

	return &Filterbank{centers: c, sampleRate: sampleRate}, nil
}

// NumChannels returns the number of filterbank channels.
func (fb *Filterbank) NumChannels() int { return len(fb.centers) }

// CenterFreqs returns the channel center frequencies in Hz.
func (fb *Filterbank) CenterFreqs() []float64 { return fb.centers }

// FrameLen returns the channel output length for an input of length n:
// n when odd, n-1 when even.
func FrameLen(n int) int {
	if n%2 == 0 {
		return n - 1
	}

	return n
}

// Process applies every channel to env and returns the time-domain
// outputs, indexed [channel][sample]. All outputs share the length
// FrameLen(len(env)); an even-length input loses its last sample.
func (fb *Filterbank) Process(env []float64) ([][]float64, error) {
	n := FrameLen(len(env))
	if n < 1 {
		return nil, ErrInputTooShort
	}

	env = env[:n]

	ft := fourier.NewFFT(n)
	coeff := ft.Coefficients(nil, env)

	out := make([][]float64, len(fb.centers))
	scaled := make([]complex128, len(coeff))

	for ch, fc := range fb.centers {
		for k := range coeff {
			f := float64(k) * fb.sampleRate / float64(n)

			var gain float64
			if ch == 0 {
				gain = lowpassGain(f, fc)
			} else {
				gain = bandpassGain(f, fc)
			}

			scaled[k] = coeff[k] * complex(gain, 0)
		}

		seq := ft.Sequence(nil, scaled)

		// The gonum inverse is unnormalized; a round trip scales by n.
		scale := 1 / float64(n)
		for i := range seq {
			seq[i] *= scale
		}

		out[ch] = seq
	}

	return out, nil
}

// lowpassGain is the square root of the squared-magnitude response of a
// 3rd-order Butterworth lowpass with cutoff fc.
func lowpassGain(f, fc float64) float64 {
	ratio := f / fc

	return math.Sqrt(1 / (1 + math.Pow(ratio, 2*lowpassOrder)))
}

// bandpassGain is the magnitude of the resonant-circuit response
// 1/(1 + jQ(f/fc - fc/f)); zero at DC.
func bandpassGain(f, fc float64) float64 {
	if f == 0 {
		return 0
	}

	d := bandpassQ * (f/fc - fc/f)

	return 1 / math.Sqrt(1+d*d)
}
