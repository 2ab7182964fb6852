// Package envelope extracts amplitude envelopes of band-limited signals.
//
// The envelope is the magnitude of the analytic signal, computed through
// a length-exact FFT Hilbert transform: the transform runs at exactly the
// signal length (no padding), so the result matches the textbook analytic
// signal of the finite sequence. The model pipelines then smooth the
// envelope with a first-order Butterworth lowpass and decimate it.
//
//	env := envelope.Magnitude(band)
//	lp, _ := envelope.NewLowpass(150, fs)
//	lp.ProcessBlock(env)
//	env, _ = resample.Rational(env, 1, 10)
//
// [Extract] bundles the three steps.
package envelope
