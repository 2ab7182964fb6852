package sepsm

import "math"

// powerFloor is the lower bound for envelope powers and per-segment
// SNRenv values: -30 dB, a numerical stability guard rather than a
// physical limit.
const powerFloor = 0.001

// segmentCount returns the number of segments an n-sample channel output
// yields for the given window length: all full windows plus one trailing
// partial window. When the window length divides n exactly the trailing
// window would be empty and is dropped.
func segmentCount(n, winLen int) int {
	count := n/winLen + 1
	if n%winLen == 0 {
		count--
	}

	return count
}

// segmentPowers cuts x into non-overlapping windows of winLen samples
// (last window holds the remainder) and returns the normalized envelope
// power per segment: the mean-removed energy of the segment divided by
// segment length and by the envelope's DC power. Degenerate segments
// produce 0 rather than NaN.
func segmentPowers(x []float64, winLen int, dcPower float64) []float64 {
	n := len(x)
	out := make([]float64, segmentCount(n, winLen))

	for s := range out {
		start := s * winLen

		end := start + winLen
		if end > n {
			end = n
		}

		seg := x[start:end]

		mean := 0.0
		for _, v := range seg {
			mean += v
		}

		mean /= float64(len(seg))

		sum := 0.0
		for _, v := range seg {
			d := v - mean
			sum += d * d
		}

		p := sum / float64(len(seg)) / dcPower
		if math.IsNaN(p) {
			p = 0
		}

		out[s] = p
	}

	return out
}

// snrEnvSegment derives the per-segment SNRenv from the mixture and
// noise envelope powers. The noise power is capped at the mixture power,
// both are floored at powerFloor, and the resulting ratio is floored at
// powerFloor as well.
func snrEnvSegment(mixPower, noisePower float64) float64 {
	if noisePower > mixPower {
		noisePower = mixPower
	}

	if mixPower < powerFloor {
		mixPower = powerFloor
	}

	if noisePower < powerFloor {
		noisePower = powerFloor
	}

	r := (mixPower - noisePower) / noisePower
	if r < powerFloor || math.IsNaN(r) {
		r = powerFloor
	}

	return r
}

// channelSNREnv computes the mean per-segment SNRenv of one
// (audio band, modulation channel) pair.
func channelSNREnv(mix, noise []float64, winLen int, mixDC, noiseDC float64) float64 {
	mixPowers := segmentPowers(mix, winLen, mixDC)
	noisePowers := segmentPowers(noise, winLen, noiseDC)

	sum := 0.0
	for s := range mixPowers {
		sum += snrEnvSegment(mixPowers[s], noisePowers[s])
	}

	return sum / float64(len(mixPowers))
}
