package gammatone

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/SarinahSutojo/spatial-glimpse-estimation/dsp/core"
)

// Filterbank errors.
var (
	ErrNoChannels        = errors.New("gammatone: at least one center frequency is required")
	ErrInvalidSampleRate = errors.New("gammatone: sample rate must be positive")
	ErrInvalidCenter     = errors.New("gammatone: center frequencies must lie in (0, Nyquist)")
)

const (
	filterOrder = 4
	// Bandwidth scaling relating the gammatone bandwidth parameter to the
	// ERB of the corresponding auditory filter (Patterson et al.).
	bandwidthFactor = 1.019
	// Impulse response duration in seconds. The slowest channel used by the
	// auditory models (63 Hz, b ~ 32 Hz) decays by more than 100 dB within
	// this span.
	responseDuration = 0.128
)

// ERB returns the Equivalent Rectangular Bandwidth in Hz of the auditory
// filter centered at f Hz (Glasberg & Moore).
func ERB(f float64) float64 {
	return 24.7 * (4.37*f/1000 + 1)
}

// Channel is one complex gammatone filter of a Filterbank.
type Channel struct {
	CenterFreq float64
	Bandwidth  float64 // ERB-derived bandwidth parameter in Hz

	ir []complex128
}

// Filterbank is an ordered set of complex gammatone filters.
type Filterbank struct {
	channels   []Channel
	sampleRate float64
}

// New builds a complex gammatone filterbank for the given center
// frequencies. Center frequencies must be positive and below Nyquist.
func New(centerFreqs []float64, sampleRate float64) (*Filterbank, error) {
	if len(centerFreqs) == 0 {
		return nil, ErrNoChannels
	}

	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	nyquist := sampleRate / 2
	channels := make([]Channel, len(centerFreqs))

	for i, fc := range centerFreqs {
		if fc <= 0 || fc >= nyquist {
			return nil, fmt.Errorf("%w: %g Hz at index %d", ErrInvalidCenter, fc, i)
		}

		b := bandwidthFactor * ERB(fc)
		channels[i] = Channel{
			CenterFreq: fc,
			Bandwidth:  b,
			ir:         impulseResponse(fc, b, sampleRate),
		}
	}

	return &Filterbank{channels: channels, sampleRate: sampleRate}, nil
}

// impulseResponse samples the complex gammatone impulse response and
// normalizes it to unity gain at the center frequency.
func impulseResponse(fc, b, sampleRate float64) []complex128 {
	n := int(responseDuration * sampleRate)
	if n < 2 {
		n = 2
	}

	ir := make([]complex128, n)
	for i := range ir {
		t := float64(i) / sampleRate
		envelope := t * t * t * math.Exp(-2*math.Pi*b*t)
		phase := 2 * math.Pi * fc * t
		ir[i] = complex(envelope*math.Cos(phase), envelope*math.Sin(phase))
	}

	// Gain at fc is the DC value of the demodulated response, which is the
	// real positive envelope sum. Dividing by it pins |H(fc)| = 1.
	gain := 0.0
	for i := range ir {
		t := float64(i) / sampleRate
		gain += t * t * t * math.Exp(-2*math.Pi*b*t)
	}

	if gain > 0 {
		scale := complex(1/gain, 0)
		for i := range ir {
			ir[i] *= scale
		}
	}

	return ir
}

// NumChannels returns the number of filterbank channels.
func (fb *Filterbank) NumChannels() int { return len(fb.channels) }

// SampleRate returns the sample rate the filterbank was built for.
func (fb *Filterbank) SampleRate() float64 { return fb.sampleRate }

// Channels returns the filter channels, ordered as given to New.
func (fb *Filterbank) Channels() []Channel { return fb.channels }

// CenterFreqs returns the channel center frequencies in Hz.
func (fb *Filterbank) CenterFreqs() []float64 {
	out := make([]float64, len(fb.channels))
	for i := range fb.channels {
		out[i] = fb.channels[i].CenterFreq
	}

	return out
}

// AnalyticChannel filters x through a single channel and returns the
// complex analytic-equivalent band signal, truncated to len(x). The
// filter is causal; no group-delay compensation is applied.
func (fb *Filterbank) AnalyticChannel(index int, x []float64) ([]complex128, error) {
	if index < 0 || index >= len(fb.channels) {
		return nil, fmt.Errorf("gammatone: channel index %d out of range [0,%d)", index, len(fb.channels))
	}

	if len(x) == 0 {
		return nil, nil
	}

	return convolve(x, fb.channels[index].ir)
}

// Analytic filters x through every channel and returns the complex band
// signals, indexed [channel][sample].
func (fb *Filterbank) Analytic(x []float64) ([][]complex128, error) {
	out := make([][]complex128, len(fb.channels))

	for i := range fb.channels {
		band, err := fb.AnalyticChannel(i, x)
		if err != nil {
			return nil, err
		}

		out[i] = band
	}

	return out, nil
}

// ProcessBlock filters x through every channel and returns real band
// signals (2*Re of the complex outputs), indexed [channel][sample].
func (fb *Filterbank) ProcessBlock(x []float64) ([][]float64, error) {
	analytic, err := fb.Analytic(x)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(analytic))
	for i, band := range analytic {
		re := make([]float64, len(band))
		for j, v := range band {
			re[j] = 2 * real(v)
		}

		out[i] = re
	}

	return out, nil
}

// RealBand converts a complex band signal into its real counterpart.
func RealBand(band []complex128) []float64 {
	out := make([]float64, len(band))
	for i, v := range band {
		out[i] = 2 * real(v)
	}

	return out
}

// convolve computes the causal FFT convolution of a real signal with a
// complex kernel and returns the first len(x) output samples.
func convolve(x []float64, ir []complex128) ([]complex128, error) {
	fftSize := core.NextPow2(len(x) + len(ir) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("gammatone: failed to create FFT plan: %w", err)
	}

	xPadded := make([]complex128, fftSize)
	for i, v := range x {
		xPadded[i] = complex(v, 0)
	}

	irPadded := make([]complex128, fftSize)
	copy(irPadded, ir)

	xFreq := make([]complex128, fftSize)
	if err := plan.Forward(xFreq, xPadded); err != nil {
		return nil, fmt.Errorf("gammatone: forward FFT failed: %w", err)
	}

	irFreq := make([]complex128, fftSize)
	if err := plan.Forward(irFreq, irPadded); err != nil {
		return nil, fmt.Errorf("gammatone: forward FFT failed: %w", err)
	}

	for i := range xFreq {
		xFreq[i] *= irFreq[i]
	}

	result := make([]complex128, fftSize)
	if err := plan.Inverse(result, xFreq); err != nil {
		return nil, fmt.Errorf("gammatone: inverse FFT failed: %w", err)
	}

	return result[:len(x)], nil
}

// MagnitudeAt returns the channel's frequency-response magnitude at f Hz,
// evaluated directly from the impulse response.
func (fb *Filterbank) MagnitudeAt(index int, f float64) (float64, error) {
	if index < 0 || index >= len(fb.channels) {
		return 0, fmt.Errorf("gammatone: channel index %d out of range [0,%d)", index, len(fb.channels))
	}

	omega := 2 * math.Pi * f / fb.sampleRate

	sum := complex(0, 0)
	for n, v := range fb.channels[index].ir {
		sum += v * cmplx.Exp(complex(0, -omega*float64(n)))
	}

	return cmplx.Abs(sum), nil
}
