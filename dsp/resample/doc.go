// Package resample provides one-shot rational sample-rate conversion.
//
// Conversion by a ratio up/down is performed on the conceptual
// up-sampled grid with a single Kaiser-windowed sinc anti-aliasing
// filter, evaluated in polyphase form so only nonzero input samples are
// touched. The filter is centered, so the output is time-aligned with
// the input rather than delayed by the filter's group delay.
//
// The auditory model packages use this for normalizing inputs to their
// internal 22050 Hz rate and for the 10:1 envelope decimation. Both are
// offline, whole-signal operations; there is no streaming converter.
package resample
