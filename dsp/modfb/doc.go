// Package modfb provides a modulation filterbank for envelope signals.
//
// The bank consists of one lowpass channel and a series of bandpass
// channels, realized as real-valued transfer functions applied in the
// frequency domain:
//
//	lowpass:  |H(f)| = (1 + (f/fc)^6)^(-1/2)        (3rd-order Butterworth)
//	bandpass: |H(f)| = (1 + Q^2*(f/fc - fc/f)^2)^(-1/2),  Q = 1
//
// Even-length inputs are truncated by one sample before the transform so
// the frequency axis has a DC bin and strictly paired conjugate bins; a
// real FFT keeps the conjugate symmetry implicit and every channel output
// has exactly the (truncated) input length.
//
// The default centers 1, 2, 4, ..., 256 Hz are the ones used by the
// envelope-power intelligibility models.
package modfb
