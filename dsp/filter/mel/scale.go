package mel

import (
	"fmt"
	"math"
	"strings"
)

// Scale selects the Hz to mel mapping.
type Scale int

const (
	// ScaleSlaney is the Auditory Toolbox scale: linear below 1 kHz and
	// logarithmic above.
	ScaleSlaney Scale = iota
	// ScaleHTK is 2595*log10(1 + f/700).
	ScaleHTK

	scaleCount // sentinel for validation
)

var scaleNames = [scaleCount]string{"slaney", "htk"}

// String returns the name of the scale.
func (s Scale) String() string {
	if s.Valid() {
		return scaleNames[s]
	}

	return fmt.Sprintf("Scale(%d)", int(s))
}

// Valid reports whether s is a known scale.
func (s Scale) Valid() bool { return s >= 0 && s < scaleCount }

// ParseScale returns the scale with the given name.
func ParseScale(name string) (Scale, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range scaleNames {
		if v == n {
			return Scale(i), nil
		}
	}

	return 0, fmt.Errorf("mel: unknown scale %q", name)
}

// Norm selects the per-filter normalization.
type Norm int

const (
	// NormNone keeps the triangle peaks at 1.
	NormNone Norm = iota
	// NormSlaney divides each triangle by its width in Hz (unit area).
	NormSlaney

	normCount // sentinel for validation
)

var normNames = [normCount]string{"none", "slaney"}

// String returns the name of the normalization.
func (n Norm) String() string {
	if n.Valid() {
		return normNames[n]
	}

	return fmt.Sprintf("Norm(%d)", int(n))
}

// Valid reports whether n is a known normalization.
func (n Norm) Valid() bool { return n >= 0 && n < normCount }

// ParseNorm returns the normalization with the given name. The empty string
// selects NormNone.
func ParseNorm(name string) (Norm, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return NormNone, nil
	}

	for i, v := range normNames {
		if v == s {
			return Norm(i), nil
		}
	}

	return 0, fmt.Errorf("mel: unknown normalization %q", name)
}

const slaneyMinLogHz = 1000.0

// Slaney scale parameters, evaluated in float64 rather than as exact
// constants so that they carry the same rounding as librosa.
var (
	slaneyFSp       = float64(200) / float64(3)
	slaneyMinLogMel = slaneyMinLogHz / slaneyFSp
	slaneyLogStep   = math.Log(6.4) / 27.0
)

// HzToMel converts a frequency in Hz to mels.
func HzToMel(hz float64, s Scale) float64 {
	if s == ScaleHTK {
		return 2595.0 * math.Log10(1.0+hz/700.0)
	}

	if hz >= slaneyMinLogHz {
		return slaneyMinLogMel + math.Log(hz/slaneyMinLogHz)/slaneyLogStep
	}

	return hz / slaneyFSp
}

// MelToHz converts mels to a frequency in Hz.
func MelToHz(m float64, s Scale) float64 {
	if s == ScaleHTK {
		return 700.0 * (math.Pow(10.0, m/2595.0) - 1.0)
	}

	if m >= slaneyMinLogMel {
		return slaneyMinLogHz * math.Exp(slaneyLogStep*(m-slaneyMinLogMel))
	}

	return slaneyFSp * m
}

// MelFrequencies returns n frequencies in Hz, equally spaced in mels between
// fmin and fmax. The last element is exactly MelToHz(HzToMel(fmax)).
func MelFrequencies(n int, fmin, fmax float64, s Scale) []float64 {
	return mapFloat(linspace(HzToMel(fmin, s), HzToMel(fmax, s), n), func(m float64) float64 {
		return MelToHz(m, s)
	})
}

// FFTFrequencies returns the center frequency of every bin of a real FFT of
// size fftSize.
func FFTFrequencies(fftSize int, sampleRate float64) []float64 {
	n := fftSize/2 + 1
	step := 1.0 / (float64(fftSize) * (1.0 / sampleRate))

	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * step
	}

	return out
}

// linspace follows numpy: start + i*step with the endpoint pinned.
func linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = float64(i)*step + start
	}

	out[n-1] = stop

	return out
}

func mapFloat(in []float64, fn func(float64) float64) []float64 {
	for i, v := range in {
		in[i] = fn(v)
	}

	return in
}
