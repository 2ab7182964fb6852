// Package spectrum provides power-spectrum helpers and a third-octave
// band level analyzer.
//
// The analyzer computes per-band RMS levels by integrating the one-sided
// FFT power spectrum between the band edges
//
//	f_lower = fc * 2^(-1/6)
//	f_upper = fc * 2^(+1/6)
//
// with edges mapped to bin indices by rounding up. Levels are reported
// in dB SPL under the convention that a unit-RMS signal sits at 100 dB,
// which is how the auditory model packages in this module scale their
// inputs.
package spectrum
