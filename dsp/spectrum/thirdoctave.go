package spectrum

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Analyzer errors.
var (
	ErrNoBands           = errors.New("spectrum: at least one center frequency is required")
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be positive")
	ErrEmptyInput        = errors.New("spectrum: input signal is empty")
)

// DBOffset is the dB SPL reference used by BandLevels: a unit-RMS signal
// is reported at 100 dB SPL.
const DBOffset = 100.0

// halfBand is 2^(1/6), the half-bandwidth ratio of a third-octave band.
var halfBand = math.Pow(2, 1.0/6.0)

// Analyzer computes third-octave RMS band levels around fixed center
// frequencies.
type Analyzer struct {
	centers    []float64
	sampleRate float64
}

// NewAnalyzer creates a third-octave analyzer for the given center
// frequencies and sample rate.
func NewAnalyzer(centers []float64, sampleRate float64) (*Analyzer, error) {
	if len(centers) == 0 {
		return nil, ErrNoBands
	}

	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	c := make([]float64, len(centers))
	copy(c, centers)

	return &Analyzer{centers: c, sampleRate: sampleRate}, nil
}

// CenterFreqs returns the analyzer's band center frequencies.
func (a *Analyzer) CenterFreqs() []float64 { return a.centers }

// BandLevels returns the RMS level of each third-octave band of x in
// dB SPL (unit RMS = 100 dB). Bands with no energy report -Inf.
//
// The power spectrum is taken at exactly the signal length (no padding,
// no window) so periodic content stays confined to its own bins. Band
// edges fc*2^(±1/6) map to bin indices k = ceil(f*n/fs) and the band
// covers bins [kLower, kUpper).
func (a *Analyzer) BandLevels(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(x)
	ft := fourier.NewFFT(n)

	power := Power(ft.Coefficients(nil, x))

	// Parseval: sum(x^2) = (|X_0|^2 + 2*sum |X_k|^2)/n over the one-sided
	// bins, so a band of non-DC bins contributes a mean square of
	// 2*sum(|X_k|^2)/n^2.
	msScale := 2.0 / (float64(n) * float64(n))

	levels := make([]float64, len(a.centers))

	for i, fc := range a.centers {
		kLo := binIndex(fc/halfBand, a.sampleRate, n)
		kHi := binIndex(fc*halfBand, a.sampleRate, n)

		if kHi > len(power) {
			kHi = len(power)
		}

		if kLo >= kHi {
			levels[i] = math.Inf(-1)
			continue
		}

		sum := 0.0
		for k := kLo; k < kHi; k++ {
			sum += power[k]
		}

		levels[i] = LevelDB(math.Sqrt(sum*msScale), DBOffset)
	}

	return levels, nil
}

// binIndex maps a frequency to its FFT bin by rounding up, clamped to a
// minimum of 1 so the DC bin never enters a band.
func binIndex(f, sampleRate float64, n int) int {
	k := int(math.Ceil(f * float64(n) / sampleRate))
	if k < 1 {
		k = 1
	}

	return k
}
