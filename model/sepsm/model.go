package sepsm

import (
	"errors"
	"fmt"
	"math"

	"github.com/SarinahSutojo/spatial-glimpse-estimation/dsp/core"
	"github.com/SarinahSutojo/spatial-glimpse-estimation/dsp/envelope"
	"github.com/SarinahSutojo/spatial-glimpse-estimation/dsp/gammatone"
	"github.com/SarinahSutojo/spatial-glimpse-estimation/dsp/modfb"
	"github.com/SarinahSutojo/spatial-glimpse-estimation/dsp/resample"
	"github.com/SarinahSutojo/spatial-glimpse-estimation/dsp/spectrum"
)

// Model errors.
var (
	ErrLengthMismatch    = errors.New("sepsm: mixture and noise must have equal length")
	ErrEmptyInput        = errors.New("sepsm: input signals are empty")
	ErrInvalidSampleRate = errors.New("sepsm: sample rate must be positive")
	ErrInputTooShort     = errors.New("sepsm: input too short for envelope analysis")
)

const (
	// internalRate is the working sample rate; inputs at other rates are
	// resampled.
	internalRate = 22050.0

	// envelopeCutoffHz and envelopeDecimation define the envelope domain:
	// 150 Hz smoothing, then 10:1 down to 2205 Hz.
	envelopeCutoffHz   = 150.0
	envelopeDecimation = 10
)

// Config holds the model configuration.
type Config struct {
	// Observer enables the percent-correct output stage. Nil skips it.
	Observer *ObserverParams

	// observerVec carries WithObserverVector input until validation in New.
	observerVec []float64
	hasVec      bool
}

// Option mutates a Config.
type Option func(*Config)

// WithObserver supplies the four ideal-observer parameters and enables
// the percent-correct output.
func WithObserver(k, q, m, sigmaS float64) Option {
	return func(cfg *Config) {
		cfg.Observer = &ObserverParams{K: k, Q: q, M: m, SigmaS: sigmaS}
	}
}

// WithObserverVector supplies the ideal-observer parameters as a
// (k, q, m, sigma_s) vector. The vector must have exactly 4 elements;
// any other length is a configuration error reported by New.
func WithObserverVector(params []float64) Option {
	return func(cfg *Config) {
		cfg.observerVec = params
		cfg.hasVec = true
	}
}

// Result holds the model outputs for one input pair.
type Result struct {
	// SNREnv is the global signal-to-noise envelope-power ratio.
	SNREnv float64

	// BandSNREnv is the per-audio-band SNRenv after combination across
	// modulation channels; excluded bands hold 0.
	BandSNREnv []float64

	// BandsUsed lists the audio band indices that passed the hearing
	// threshold test.
	BandsUsed []int

	// PercentCorrect is the predicted intelligibility score; only valid
	// when HasPercentCorrect is set.
	PercentCorrect    float64
	HasPercentCorrect bool
}

// Model is the configured intelligibility model. It holds no mutable
// state across invocations and is safe for concurrent use.
type Model struct {
	fb       *gammatone.Filterbank
	analyzer *spectrum.Analyzer
	modBank  *modfb.Filterbank
	observer *Observer
}

// New creates a Model.
func New(opts ...Option) (*Model, error) {
	var cfg Config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var obs *Observer

	switch {
	case cfg.hasVec:
		o, err := NewObserverVector(cfg.observerVec)
		if err != nil {
			return nil, err
		}

		obs = o
	case cfg.Observer != nil:
		o, err := NewObserver(*cfg.Observer)
		if err != nil {
			return nil, err
		}

		obs = o
	}

	fb, err := gammatone.New(audioCenters, internalRate)
	if err != nil {
		return nil, fmt.Errorf("sepsm: %w", err)
	}

	analyzer, err := spectrum.NewAnalyzer(audioCenters, internalRate)
	if err != nil {
		return nil, fmt.Errorf("sepsm: %w", err)
	}

	modBank, err := modfb.New(modCenters, internalRate/envelopeDecimation)
	if err != nil {
		return nil, fmt.Errorf("sepsm: %w", err)
	}

	return &Model{
		fb:       fb,
		analyzer: analyzer,
		modBank:  modBank,
		observer: obs,
	}, nil
}

// Predict runs the model on a target-plus-noise mixture and the noise
// alone. Both signals must have the same length and sample rate; rates
// other than 22050 Hz are resampled internally.
func (m *Model) Predict(mixture, noise []float64, sampleRate float64) (*Result, error) {
	if len(mixture) != len(noise) {
		return nil, ErrLengthMismatch
	}

	if len(mixture) == 0 {
		return nil, ErrEmptyInput
	}

	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	if sampleRate != internalRate {
		var err error

		mixture, err = resample.Resample(mixture, sampleRate, internalRate)
		if err != nil {
			return nil, fmt.Errorf("sepsm: %w", err)
		}

		noise, err = resample.Resample(noise, sampleRate, internalRate)
		if err != nil {
			return nil, fmt.Errorf("sepsm: %w", err)
		}
	}

	if len(mixture)/envelopeDecimation < 2 {
		return nil, ErrInputTooShort
	}

	bandsUsed, err := m.selectBands(mixture)
	if err != nil {
		return nil, err
	}

	bandSNR := make([]float64, len(audioCenters))

	// The per-band loop is embarrassingly parallel; it stays sequential so
	// the cross-band aggregation order (ascending band index) is fixed.
	for _, band := range bandsUsed {
		snr, err := m.processBand(band, mixture, noise)
		if err != nil {
			return nil, err
		}

		bandSNR[band] = snr
	}

	total := 0.0
	for _, v := range bandSNR {
		total += v * v
	}

	res := &Result{
		SNREnv:     math.Sqrt(total),
		BandSNREnv: bandSNR,
		BandsUsed:  bandsUsed,
	}

	if m.observer != nil {
		res.PercentCorrect = m.observer.PercentCorrect(res.SNREnv)
		res.HasPercentCorrect = true
	}

	return res, nil
}

// selectBands returns the indices of audio bands whose third-octave
// mixture level exceeds the diffuse-field hearing threshold.
func (m *Model) selectBands(mixture []float64) ([]int, error) {
	levels, err := m.analyzer.BandLevels(mixture)
	if err != nil {
		return nil, fmt.Errorf("sepsm: %w", err)
	}

	bands := make([]int, 0, len(levels))

	for i, level := range levels {
		if level > hearingThreshold[i] {
			bands = append(bands, i)
		}
	}

	return bands, nil
}

// processBand runs stages 1-6 for one audio band and returns its SNRenv
// combined across the band's valid modulation channels.
func (m *Model) processBand(band int, mixture, noise []float64) (float64, error) {
	mixEnv, err := m.bandEnvelope(band, mixture)
	if err != nil {
		return 0, err
	}

	noiseEnv, err := m.bandEnvelope(band, noise)
	if err != nil {
		return 0, err
	}

	// Truncate once to the modulation frame length so the DC powers and
	// all channel outputs share one length.
	n := modfb.FrameLen(len(mixEnv))
	if n < 2 {
		return 0, ErrInputTooShort
	}

	mixEnv = mixEnv[:n]
	noiseEnv = noiseEnv[:n]

	mixDC := dcPower(mixEnv)
	noiseDC := dcPower(noiseEnv)

	mixMod, err := m.modBank.Process(mixEnv)
	if err != nil {
		return 0, fmt.Errorf("sepsm: %w", err)
	}

	noiseMod, err := m.modBank.Process(noiseEnv)
	if err != nil {
		return 0, fmt.Errorf("sepsm: %w", err)
	}

	envRate := internalRate / envelopeDecimation

	// Combine modulation channels by root-sum-of-squares, in ascending
	// channel order; channels beyond the band's validity prefix are
	// excluded (their entries stay zero).
	sum := 0.0

	for ch := 0; ch < modChannelsForBand[band]; ch++ {
		winLen := int(envRate / modCenters[ch])
		if winLen < 1 {
			winLen = 1
		}

		snr := channelSNREnv(mixMod[ch], noiseMod[ch], winLen, mixDC, noiseDC)
		sum += snr * snr
	}

	return math.Sqrt(sum), nil
}

// bandEnvelope extracts the downsampled envelope of one gammatone band.
func (m *Model) bandEnvelope(band int, x []float64) ([]float64, error) {
	analytic, err := m.fb.AnalyticChannel(band, x)
	if err != nil {
		return nil, fmt.Errorf("sepsm: %w", err)
	}

	env, err := envelope.Extract(gammatone.RealBand(analytic), internalRate, envelopeCutoffHz, envelopeDecimation)
	if err != nil {
		return nil, fmt.Errorf("sepsm: %w", err)
	}

	return env, nil
}

// dcPower is the envelope's DC power, mean(env)^2 / 2, the normalization
// reference for segment envelope powers.
func dcPower(env []float64) float64 {
	mean := core.Mean(env)

	return mean * mean / 2
}

// Predict is a one-shot convenience wrapper around Model.Predict.
func Predict(mixture, noise []float64, sampleRate float64, opts ...Option) (*Result, error) {
	m, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return m.Predict(mixture, noise, sampleRate)
}
