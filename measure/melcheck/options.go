package melcheck

import (
	"fmt"
	"strings"

	"github.com/jurevreca12/mel-engine/dsp/window"
)

const (
	defaultFrameLength = 512
	defaultNumFrames   = 32
)

// PowerMode selects how a complex bin is reduced to power.
type PowerMode int

const (
	// PowerReal uses re² and ignores the imaginary part.
	PowerReal PowerMode = iota
	// PowerMagnitude uses re² + im².
	PowerMagnitude

	powerModeCount // sentinel for validation
)

var powerModeNames = [powerModeCount]string{"real", "magnitude"}

// String returns the mode name.
func (p PowerMode) String() string {
	if p.Valid() {
		return powerModeNames[p]
	}

	return fmt.Sprintf("PowerMode(%d)", int(p))
}

// Valid reports whether p is a known mode.
func (p PowerMode) Valid() bool { return p >= 0 && p < powerModeCount }

// ParsePowerMode returns the mode with the given name.
func ParsePowerMode(name string) (PowerMode, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range powerModeNames {
		if v == n {
			return PowerMode(i), nil
		}
	}

	return 0, fmt.Errorf("melcheck: unknown power mode %q", name)
}

type config struct {
	frameLength int
	numFrames   int
	window      window.Type
	power       PowerMode
}

func defaultConfig() config {
	return config{
		frameLength: defaultFrameLength,
		numFrames:   defaultNumFrames,
		window:      window.TypeHamming,
		power:       PowerReal,
	}
}

// Option configures an [Analyzer].
type Option func(*config) error

// WithFrameLength sets the frame and FFT length (default 512). It must be a
// power of two.
func WithFrameLength(n int) Option {
	return func(cfg *config) error {
		if n < 2 || n&(n-1) != 0 {
			return fmt.Errorf("melcheck: frame length must be a power of two >= 2: %d", n)
		}

		cfg.frameLength = n

		return nil
	}
}

// WithNumFrames sets the number of analysed frames (default 32).
func WithNumFrames(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("melcheck: number of frames must be >= 1: %d", n)
		}

		cfg.numFrames = n

		return nil
	}
}

// WithWindow sets the analysis window (default Hamming, symmetric form).
func WithWindow(t window.Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("melcheck: invalid window type: %d", t)
		}

		cfg.window = t

		return nil
	}
}

// WithPowerMode sets the power reduction (default [PowerReal]).
func WithPowerMode(p PowerMode) Option {
	return func(cfg *config) error {
		if !p.Valid() {
			return fmt.Errorf("melcheck: invalid power mode: %d", p)
		}

		cfg.power = p

		return nil
	}
}
