package sepsm

import (
	"errors"
	"math"
	"testing"

	"github.com/SarinahSutojo/spatial-glimpse-estimation/internal/testutil"
)

const testRate = 22050.0

func TestPredict_Validation(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := m.Predict(make([]float64, 100), make([]float64, 99), testRate); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("unequal lengths: err = %v, want ErrLengthMismatch", err)
	}

	if _, err := m.Predict(nil, nil, testRate); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty input: err = %v, want ErrEmptyInput", err)
	}

	if _, err := m.Predict(make([]float64, 100), make([]float64, 100), 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("zero rate: err = %v, want ErrInvalidSampleRate", err)
	}
}

func TestNew_ObserverVectorLength(t *testing.T) {
	if _, err := New(WithObserverVector([]float64{1, 1, 8000})); !errors.Is(err, ErrObserverVector) {
		t.Errorf("err = %v, want ErrObserverVector", err)
	}

	if _, err := New(WithObserverVector([]float64{1, 1, 8000, 0.6})); err != nil {
		t.Errorf("valid vector rejected: %v", err)
	}
}

func TestPredict_GlobalSNREnvNonNegative(t *testing.T) {
	target := testutil.Sine(1000, testRate, 1.0, int(testRate))
	noise := testutil.Noise(17, 0.3, int(testRate))
	mixture := testutil.Mix(target, noise)

	res, err := Predict(mixture, noise, testRate)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if res.SNREnv < 0 || math.IsNaN(res.SNREnv) {
		t.Errorf("SNREnv = %v, want >= 0", res.SNREnv)
	}

	for i, v := range res.BandSNREnv {
		if v < 0 || math.IsNaN(v) {
			t.Errorf("band %d SNRenv = %v, want >= 0", i, v)
		}
	}

	if res.HasPercentCorrect {
		t.Error("percent correct set without observer parameters")
	}
}

func TestPredict_IdenticalInputsHitFloor(t *testing.T) {
	x := testutil.Noise(23, 1.0, int(testRate))

	res, err := Predict(x, x, testRate)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if len(res.BandsUsed) == 0 {
		t.Fatal("no bands retained for a loud broadband signal")
	}

	// With x == y every per-segment SNRenv floors at 0.001, so the global
	// value collapses to 0.001 * sqrt(total valid modulation channels).
	validChannels := 0
	for _, band := range res.BandsUsed {
		validChannels += modChannelsForBand[band]
	}

	want := powerFloor * math.Sqrt(float64(validChannels))
	testutil.RequireNearlyEqual(t, res.SNREnv, want, 1e-9)

	for _, band := range res.BandsUsed {
		wantBand := powerFloor * math.Sqrt(float64(modChannelsForBand[band]))
		testutil.RequireNearlyEqual(t, res.BandSNREnv[band], wantBand, 1e-9)
	}
}

// amTone returns a fully modulated tone,
// amp/2 * (1 + cos(2*pi*modHz*t)) * sin(2*pi*carrierHz*t),
// whose envelope fluctuates at modHz.
func amTone(carrierHz, modHz, fs, amp float64, n int) []float64 {
	out := make([]float64, n)

	for i := range out {
		ti := float64(i) / fs
		out[i] = amp / 2 * (1 + math.Cos(2*math.Pi*modHz*ti)) * math.Sin(2*math.Pi*carrierHz*ti)
	}

	return out
}

func TestPredict_MonotonicInNoiseLevel(t *testing.T) {
	n := int(testRate)
	target := amTone(1000, 4, testRate, 1.0, n)
	noise := testutil.Noise(29, 1.0, n)

	quiet := testutil.Scale(noise, 0.1)
	loud := testutil.Scale(noise, 0.5)

	clean, err := Predict(testutil.Mix(target, quiet), quiet, testRate)
	if err != nil {
		t.Fatalf("Predict(quiet): %v", err)
	}

	noisy, err := Predict(testutil.Mix(target, loud), loud, testRate)
	if err != nil {
		t.Fatalf("Predict(loud): %v", err)
	}

	if clean.SNREnv < noisy.SNREnv {
		t.Errorf("SNREnv rose from %v to %v as the noise level rose", clean.SNREnv, noisy.SNREnv)
	}
}

func TestPredict_SubThresholdBandContributesNothing(t *testing.T) {
	// A pure 1 kHz tone leaves the 63 Hz third-octave band empty, so that
	// band must fail the hearing threshold test and stay at zero.
	n := int(testRate)
	mixture := testutil.Sine(1000, testRate, 1.0, n)
	noise := testutil.Sine(1000, testRate, 0.1, n)

	res, err := Predict(mixture, noise, testRate)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	for _, band := range res.BandsUsed {
		if band == 0 {
			t.Fatal("63 Hz band retained for a 1 kHz tone")
		}
	}

	if res.BandSNREnv[0] != 0 {
		t.Errorf("excluded band SNRenv = %v, want 0", res.BandSNREnv[0])
	}
}

func TestPredict_EndToEndWithObserver(t *testing.T) {
	n := int(testRate)
	target := testutil.Sine(1000, testRate, 1.0, n)
	noise := testutil.Noise(31, 0.1, n)
	mixture := testutil.Mix(target, noise)

	res, err := Predict(mixture, noise, testRate, WithObserver(1, 1, 8000, 0.6))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if res.SNREnv <= 0 || math.IsNaN(res.SNREnv) {
		t.Errorf("SNREnv = %v, want > 0", res.SNREnv)
	}

	if !res.HasPercentCorrect {
		t.Fatal("percent correct missing despite observer parameters")
	}

	if res.PercentCorrect < 0 || res.PercentCorrect > 100 {
		t.Errorf("PercentCorrect = %v outside [0, 100]", res.PercentCorrect)
	}
}

func TestPredict_ResamplesForeignRates(t *testing.T) {
	const fs = 44100.0

	n := int(fs / 2)
	target := testutil.Sine(1000, fs, 1.0, n)
	noise := testutil.Noise(37, 0.2, n)

	res, err := Predict(testutil.Mix(target, noise), noise, fs)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if res.SNREnv < 0 || math.IsNaN(res.SNREnv) {
		t.Errorf("SNREnv = %v, want >= 0", res.SNREnv)
	}
}

func TestPredict_ConcurrentUse(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	n := int(testRate / 2)
	target := testutil.Sine(1000, testRate, 1.0, n)
	noise := testutil.Noise(41, 0.3, n)
	mixture := testutil.Mix(target, noise)

	ref, err := m.Predict(mixture, noise, testRate)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	done := make(chan *Result, 4)

	for range 4 {
		go func() {
			res, err := m.Predict(mixture, noise, testRate)
			if err != nil {
				t.Errorf("concurrent Predict: %v", err)
				done <- nil

				return
			}

			done <- res
		}()
	}

	for range 4 {
		res := <-done
		if res == nil {
			continue
		}

		// Deterministic pipeline: concurrent runs agree bit for bit.
		if res.SNREnv != ref.SNREnv {
			t.Errorf("concurrent SNREnv = %v, want %v", res.SNREnv, ref.SNREnv)
		}
	}
}

func TestTables_Consistency(t *testing.T) {
	if len(audioCenters) != 22 || len(hearingThreshold) != 22 || len(modChannelsForBand) != 22 {
		t.Fatal("band tables must all cover 22 audio channels")
	}

	if len(modCenters) != 9 {
		t.Fatalf("modulation centers = %d, want 9", len(modCenters))
	}

	for i, count := range modChannelsForBand {
		if count < 1 || count > len(modCenters) {
			t.Fatalf("band %d: channel count %d out of range", i, count)
		}

		// The table encodes: modulation center < audio center / 4.
		for ch := range len(modCenters) {
			valid := modCenters[ch] < audioCenters[i]/4
			if (ch < count) != valid {
				t.Errorf("band %d (%g Hz) channel %d (%g Hz): table says %v, rule says %v",
					i, audioCenters[i], ch, modCenters[ch], ch < count, valid)
			}
		}
	}
}
