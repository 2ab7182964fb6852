package resample

import (
	"errors"
	"math"
)

// Resampling errors.
var (
	ErrInvalidRatio = errors.New("resample: up and down must be positive")
	ErrInvalidRate  = errors.New("resample: sample rates must be positive")
)

const (
	// tapsPerPhase controls prototype filter length per polyphase branch.
	tapsPerPhase = 32
	// cutoffScale backs the anti-aliasing cutoff off the theoretical edge
	// to trade a little bandwidth for stopband attenuation.
	cutoffScale = 0.92
	// kaiserBeta gives roughly 75 dB of stopband attenuation.
	kaiserBeta = 7.5

	maxDenominator = 4096
)

// Rational converts x by the ratio up/down.
func Rational(x []float64, up, down int) ([]float64, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	if len(x) == 0 {
		return nil, nil
	}

	g := gcd(up, down)
	up /= g
	down /= g

	if up == 1 && down == 1 {
		out := make([]float64, len(x))
		copy(out, x)

		return out, nil
	}

	h := designPrototype(up, down)
	center := (len(h) - 1) / 2

	outLen := (len(x)*up + down - 1) / down
	out := make([]float64, outLen)

	for j := range out {
		// Position on the up-sampled grid, shifted so the filter center
		// aligns with the current output instant.
		q := j*down + center

		// Only input samples x[i] with i*up = q-k contribute; walk k in
		// steps of up starting from the first tap congruent to q.
		k0 := q % up
		for k := k0; k < len(h); k += up {
			i := (q - k) / up
			if i < 0 {
				break
			}

			if i >= len(x) {
				continue
			}

			out[j] += h[k] * x[i]
		}
	}

	return out, nil
}

// Resample converts x from inRate to outRate, approximating the rate
// ratio by a rational factor.
func Resample(x []float64, inRate, outRate float64) ([]float64, error) {
	if inRate <= 0 || outRate <= 0 || math.IsNaN(inRate) || math.IsNaN(outRate) {
		return nil, ErrInvalidRate
	}

	up, down := approximateRatio(outRate / inRate)

	return Rational(x, up, down)
}

// designPrototype returns the Kaiser-windowed sinc anti-aliasing filter
// for the reduced ratio up/down, with passband gain up (compensating the
// zero insertion of the conceptual up-sampler).
func designPrototype(up, down int) []float64 {
	m := up
	if down > m {
		m = down
	}

	// Cutoff normalized to the up-sampled Nyquist.
	fc := cutoffScale / (2 * float64(m))

	n := tapsPerPhase * m
	if n%2 == 0 {
		n++ // odd length keeps the filter symmetric around one tap
	}

	h := make([]float64, n)
	center := float64(n-1) / 2

	for i := range h {
		t := float64(i) - center
		h[i] = 2 * fc * sinc(2*fc*t) * kaiser(t, center)
	}

	// Normalize DC gain to up.
	sum := 0.0
	for _, v := range h {
		sum += v
	}

	if sum != 0 {
		scale := float64(up) / sum
		for i := range h {
			h[i] *= scale
		}
	}

	return h
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}

func kaiser(t, halfWidth float64) float64 {
	r := t / halfWidth
	if r < -1 || r > 1 {
		return 0
	}

	return besselI0(kaiserBeta*math.Sqrt(1-r*r)) / besselI0(kaiserBeta)
}

// besselI0 is the zeroth-order modified Bessel function of the first
// kind, via its power series.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	half := x / 2

	for k := 1; k < 32; k++ {
		term *= (half / float64(k)) * (half / float64(k))
		sum += term

		if term < sum*1e-16 {
			break
		}
	}

	return sum
}

// approximateRatio finds a small rational approximation of ratio by
// continued fractions, capping the denominator.
func approximateRatio(ratio float64) (up, down int) {
	if ratio <= 0 {
		return 1, 1
	}

	bestUp, bestDown := 1, 1
	bestErr := math.Abs(ratio - 1)

	h0, h1 := 0, 1
	k0, k1 := 1, 0
	r := ratio

	for range 32 {
		a := int(math.Floor(r))
		h0, h1 = h1, a*h1+h0
		k0, k1 = k1, a*k1+k0

		if k1 > maxDenominator {
			break
		}

		if k1 > 0 && h1 > 0 {
			e := math.Abs(ratio - float64(h1)/float64(k1))
			if e < bestErr {
				bestErr = e
				bestUp, bestDown = h1, k1
			}
		}

		frac := r - math.Floor(r)
		if frac < 1e-12 {
			break
		}

		r = 1 / frac
	}

	return bestUp, bestDown
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
