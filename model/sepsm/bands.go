package sepsm

// The 22 audio channels sit on the standard third-octave center
// frequencies from 63 Hz to 8 kHz.
var audioCenters = []float64{
	63, 80, 100, 125, 160, 200, 250, 315, 400, 500, 630,
	800, 1000, 1250, 1600, 2000, 2500, 3150, 4000, 5000, 6300, 8000,
}

// Diffuse-field hearing threshold in dB SPL at the audio center
// frequencies (ISO 389-7:2005). A band takes part in the model only if
// its third-octave mixture level exceeds this curve.
var hearingThreshold = []float64{
	37.5, 31.5, 26.5, 22.1, 17.9, 14.4, 11.4, 8.6, 6.2, 4.4, 3.0,
	2.2, 2.4, 3.5, 1.7, -1.3, -4.2, -6.0, -5.4, -1.5, 6.0, 12.6,
}

// Modulation filterbank centers in Hz; index 0 is the lowpass channel.
var modCenters = []float64{1, 2, 4, 8, 16, 32, 64, 128, 256}

// modChannelsForBand[i] is how many modulation channels apply to audio
// band i: only modulation centers below a quarter of the audio center
// frequency carry physiologically meaningful envelope fluctuations.
// Centers ascend, so the valid set is always a prefix of modCenters.
var modChannelsForBand = []int{
	4, 5, 5, 5, 6, 6, 6, 7, 7, 7, 8,
	8, 8, 9, 9, 9, 9, 9, 9, 9, 9, 9,
}

// AudioCenterFreqs returns the model's audio channel center frequencies.
func AudioCenterFreqs() []float64 {
	out := make([]float64, len(audioCenters))
	copy(out, audioCenters)

	return out
}

// ModCenterFreqs returns the modulation filterbank center frequencies.
func ModCenterFreqs() []float64 {
	out := make([]float64, len(modCenters))
	copy(out, modCenters)

	return out
}
