// Package gammatone provides a complex gammatone auditory filterbank.
//
// A gammatone filter approximates the tuning curve of the human auditory
// nerve. The 4th-order complex impulse response used here is
//
//	g(t) = t^3 * exp(-2*pi*b*t) * exp(j*2*pi*fc*t)
//
// where fc is the channel center frequency and b = 1.019 * ERB(fc) its
// bandwidth on the Equivalent Rectangular Bandwidth scale
//
//	ERB(f) = 24.7 * (4.37*f/1000 + 1)
//
// Each channel is realized as a complex FIR, peak-normalized to unity
// gain at fc and applied by FFT convolution. The complex output is an
// analytic-equivalent band signal; the corresponding real band signal is
// 2*Re of it.
//
// Basic usage:
//
//	fb, err := gammatone.New(centers, 22050)
//	bands, err := fb.ProcessBlock(signal) // real band signals, one per channel
package gammatone
