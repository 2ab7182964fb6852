package gammatone

import (
	"testing"

	"github.com/SarinahSutojo/spatial-glimpse-estimation/internal/testutil"
)

func BenchmarkProcessBlock(b *testing.B) {
	fb, err := New([]float64{250, 500, 1000, 2000, 4000}, 22050)
	if err != nil {
		b.Fatalf("New: %v", err)
	}

	x := testutil.Noise(1, 0.5, 22050)

	b.ResetTimer()

	for b.Loop() {
		if _, err := fb.ProcessBlock(x); err != nil {
			b.Fatalf("ProcessBlock: %v", err)
		}
	}
}
