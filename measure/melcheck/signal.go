package melcheck

import "math"

// ToneScale maps a unit sine offset into [0, 2] onto the 12-bit range used
// by the legacy test bench.
const ToneScale = 2047 * 0.8

// Tone returns n samples of (sin(2π f t) + 1) * ToneScale. The time axis is
// numpy.linspace(0, 1, sampleRate), so consecutive samples are
// 1/(sampleRate-1) seconds apart.
func Tone(freqHz, sampleRate float64, n int) []float64 {
	if n <= 0 || sampleRate <= 1 {
		return nil
	}

	step := 1 / (sampleRate - 1)
	out := make([]float64, n)

	for i := range out {
		t := float64(i) * step
		out[i] = (math.Sin(2*math.Pi*freqHz*t) + 1) * ToneScale
	}

	return out
}

// Frames splits signal into numFrames frames of frameLength samples. Short
// signals are zero padded at the end, long signals are truncated.
func Frames(signal []float64, frameLength, numFrames int) [][]float64 {
	if frameLength <= 0 || numFrames <= 0 {
		return nil
	}

	frames := make([][]float64, numFrames)
	for f := range frames {
		frame := make([]float64, frameLength)

		start := f * frameLength
		if start < len(signal) {
			copy(frame, signal[start:min(start+frameLength, len(signal))])
		}

		frames[f] = frame
	}

	return frames
}
