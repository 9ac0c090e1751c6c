package fixed

import "fmt"

type config struct {
	format   Format
	rounding Rounding
}

func defaultConfig() config {
	return config{
		format:   UQ0_16,
		rounding: RoundDefault,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithFormat sets the word layout (default [UQ0_16]).
func WithFormat(f Format) Option {
	return func(cfg *config) error {
		if err := f.Validate(); err != nil {
			return err
		}

		cfg.format = f

		return nil
	}
}

// WithRounding sets the rounding mode (default [RoundDefault]).
func WithRounding(r Rounding) Option {
	return func(cfg *config) error {
		if !r.Valid() {
			return fmt.Errorf("fixed: invalid rounding mode: %d", r)
		}

		cfg.rounding = r

		return nil
	}
}
