package mel

import (
	"fmt"
	"math"
)

type config struct {
	fmin, fmax float64 // fmax < 0 means sampleRate/2
	scale      Scale
	norm       Norm
	float64Out bool
}

func defaultConfig() config {
	return config{
		fmin:  0,
		fmax:  -1,
		scale: ScaleSlaney,
		norm:  NormNone,
	}
}

// Option configures [Filterbank].
type Option func(*config) error

// WithFrequencyRange sets the lower and upper filterbank edges in Hz.
// The default is 0 to sampleRate/2.
func WithFrequencyRange(fmin, fmax float64) Option {
	return func(cfg *config) error {
		if fmin < 0 || fmax <= fmin || math.IsNaN(fmin) || math.IsInf(fmax, 0) {
			return fmt.Errorf("mel: frequency range must satisfy 0 <= fmin < fmax: [%g, %g]", fmin, fmax)
		}

		cfg.fmin = fmin
		cfg.fmax = fmax

		return nil
	}
}

// WithScale selects the mel scale (default [ScaleSlaney]).
func WithScale(s Scale) Option {
	return func(cfg *config) error {
		if !s.Valid() {
			return fmt.Errorf("mel: invalid scale: %d", s)
		}

		cfg.scale = s

		return nil
	}
}

// WithNorm selects the filter normalization (default [NormNone]).
func WithNorm(n Norm) Option {
	return func(cfg *config) error {
		if !n.Valid() {
			return fmt.Errorf("mel: invalid normalization: %d", n)
		}

		cfg.norm = n

		return nil
	}
}

// WithFloat64 keeps full float64 weights instead of rounding them through
// float32.
func WithFloat64() Option {
	return func(cfg *config) error {
		cfg.float64Out = true
		return nil
	}
}
