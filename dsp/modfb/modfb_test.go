package modfb

import (
	"math"
	"testing"

	"github.com/SarinahSutojo/spatial-glimpse-estimation/dsp/core"
	"github.com/SarinahSutojo/spatial-glimpse-estimation/internal/testutil"
)

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, 2205); err == nil {
		t.Error("expected error for empty centers")
	}

	if _, err := New(DefaultCenters(), 0); err == nil {
		t.Error("expected error for zero sample rate")
	}

	if _, err := New([]float64{2, 1}, 2205); err == nil {
		t.Error("expected error for descending centers")
	}

	if _, err := New([]float64{0, 1}, 2205); err == nil {
		t.Error("expected error for zero center")
	}
}

func TestFrameLen(t *testing.T) {
	if FrameLen(101) != 101 {
		t.Errorf("FrameLen(101) = %d, want 101", FrameLen(101))
	}

	if FrameLen(100) != 99 {
		t.Errorf("FrameLen(100) = %d, want 99", FrameLen(100))
	}
}

func TestProcess_LengthPreserved(t *testing.T) {
	fb, err := New(DefaultCenters(), 2205)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, n := range []int{2205, 2206} {
		env := testutil.Noise(3, 1.0, n)

		out, err := fb.Process(env)
		if err != nil {
			t.Fatalf("Process(%d): %v", n, err)
		}

		if len(out) != fb.NumChannels() {
			t.Fatalf("channels = %d, want %d", len(out), fb.NumChannels())
		}

		want := FrameLen(n)
		for ch := range out {
			if len(out[ch]) != want {
				t.Errorf("n=%d channel %d: len = %d, want %d", n, ch, len(out[ch]), want)
			}

			testutil.RequireFinite(t, out[ch])
		}
	}
}

func TestProcess_LowpassPassesDC(t *testing.T) {
	fb, err := New(DefaultCenters(), 2205)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	env := testutil.DC(2.0, 2205)

	out, err := fb.Process(env)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// Lowpass has unity gain at DC; bandpass channels have none.
	testutil.RequireSliceNearlyEqual(t, out[0], env, 1e-9)

	for ch := 1; ch < len(out); ch++ {
		for i, v := range out[ch] {
			if math.Abs(v) > 1e-9 {
				t.Fatalf("channel %d sample %d = %v, want 0", ch, i, v)
			}
		}
	}
}

func TestProcess_BandpassUnityAtCenter(t *testing.T) {
	const fs = 2205.0

	fb, err := New(DefaultCenters(), fs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// 4 Hz modulation over a full number of periods (odd sample count).
	n := 11025
	env := testutil.Sine(4, fs, 1.0, n)

	out, err := fb.Process(env)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// Channel index 2 is centered at 4 Hz: gain 1 there.
	rmsIn := core.RMS(env[:FrameLen(n)])
	rmsAt := core.RMS(out[2])

	if math.Abs(rmsAt-rmsIn) > 0.02*rmsIn {
		t.Errorf("4 Hz channel RMS = %v, want ~%v", rmsAt, rmsIn)
	}

	// Four octaves away (64 Hz) the Q=1 bandpass is strongly attenuated.
	rmsFar := core.RMS(out[6])
	if rmsFar > 0.1*rmsIn {
		t.Errorf("64 Hz channel RMS = %v, want < %v", rmsFar, 0.1*rmsIn)
	}
}

func TestProcess_TooShort(t *testing.T) {
	fb, err := New(DefaultCenters(), 2205)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := fb.Process(nil); err == nil {
		t.Error("expected error for empty input")
	}
}
