package sepsm

import (
	"testing"

	"github.com/SarinahSutojo/spatial-glimpse-estimation/internal/testutil"
)

func BenchmarkPredict(b *testing.B) {
	const fs = 22050.0

	n := int(fs)
	target := testutil.Sine(1000, fs, 1.0, n)
	noise := testutil.Noise(1, 0.3, n)
	mixture := testutil.Mix(target, noise)

	m, err := New()
	if err != nil {
		b.Fatalf("New: %v", err)
	}

	b.ResetTimer()

	for b.Loop() {
		if _, err := m.Predict(mixture, noise, fs); err != nil {
			b.Fatalf("Predict: %v", err)
		}
	}
}

func BenchmarkChannelSNREnv(b *testing.B) {
	mix := testutil.Noise(2, 1.0, 2205)
	noise := testutil.Noise(3, 0.5, 2205)

	b.ResetTimer()

	for b.Loop() {
		channelSNREnv(mix, noise, 551, 0.5, 0.5)
	}
}
