package meltable

import (
	"fmt"
	"math"

	"github.com/jurevreca12/mel-engine/dsp/fixed"
)

const (
	// DefaultThreshold is the weight above which a filter counts as active
	// in a bin.
	DefaultThreshold = 0.0001
	defaultStrategy  = StrategyTwoPerBin
)

type config struct {
	strategy  Strategy
	threshold float64
	length    int // 0 means one entry per bin
	quant     *fixed.Quantizer
}

func defaultConfig() config {
	return config{
		strategy:  defaultStrategy,
		threshold: DefaultThreshold,
	}
}

// Option configures an [Encoder].
type Option func(*config) error

// WithStrategy sets the packing strategy (default [StrategyTwoPerBin]).
func WithStrategy(s Strategy) Option {
	return func(cfg *config) error {
		if !s.Valid() {
			return fmt.Errorf("meltable: invalid strategy: %d", s)
		}

		cfg.strategy = s

		return nil
	}
}

// WithThreshold sets the activity threshold (default [DefaultThreshold]).
func WithThreshold(eps float64) Option {
	return func(cfg *config) error {
		if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
			return fmt.Errorf("meltable: threshold must be >= 0 and finite: %f", eps)
		}

		cfg.threshold = eps

		return nil
	}
}

// WithTableLength sets the padded table length. Zero, the default, uses one
// entry per FFT bin.
func WithTableLength(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return fmt.Errorf("meltable: table length must be >= 0: %d", n)
		}

		cfg.length = n

		return nil
	}
}

// WithQuantizer sets the weight quantizer (default unsigned Q0.16).
func WithQuantizer(q *fixed.Quantizer) Option {
	return func(cfg *config) error {
		if q == nil {
			return fmt.Errorf("meltable: quantizer must not be nil")
		}

		cfg.quant = q

		return nil
	}
}
