package fixed

import (
	"fmt"
	"math"
	"strings"
)

// Rounding selects how a scaled value is mapped onto an integer word.
type Rounding int

const (
	// RoundDefault resolves to RoundNearest for unsigned formats and
	// RoundConvergent for signed formats.
	RoundDefault Rounding = iota
	// RoundNearest rounds to the nearest word, ties toward +Inf.
	RoundNearest
	// RoundConvergent rounds to the nearest word, ties to even.
	RoundConvergent
	// RoundDown rounds toward -Inf.
	RoundDown
	// RoundUp rounds toward +Inf.
	RoundUp

	roundingCount // sentinel for validation
)

var roundingNames = [roundingCount]string{
	"default", "nearest", "convergent", "down", "up",
}

// String returns the name of the rounding mode.
func (r Rounding) String() string {
	if r.Valid() {
		return roundingNames[r]
	}

	return fmt.Sprintf("Rounding(%d)", int(r))
}

// Valid reports whether r is a known rounding mode.
func (r Rounding) Valid() bool {
	return r >= 0 && r < roundingCount
}

// ParseRounding returns the rounding mode with the given name.
// The empty string selects RoundDefault.
func ParseRounding(s string) (Rounding, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return RoundDefault, nil
	}

	for i, n := range roundingNames {
		if n == name {
			return Rounding(i), nil
		}
	}

	return RoundDefault, fmt.Errorf("fixed: unknown rounding mode %q", s)
}

func (r Rounding) resolve(signed bool) Rounding {
	if r != RoundDefault {
		return r
	}

	if signed {
		return RoundConvergent
	}

	return RoundNearest
}

// apply rounds scaled to an integral float64. The nearest mode compares the
// fractional part instead of adding 0.5, which could round twice.
func (r Rounding) apply(scaled float64) float64 {
	switch r {
	case RoundConvergent:
		return math.RoundToEven(scaled)
	case RoundDown:
		return math.Floor(scaled)
	case RoundUp:
		return math.Ceil(scaled)
	default:
		whole := math.Floor(scaled)
		if scaled-whole >= 0.5 {
			return whole + 1
		}

		return whole
	}
}
