package fixed

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const maxWidth = 32

// Format describes a fixed-point word layout.
//
// For signed formats IntBits includes the sign bit, so a signed format needs
// at least one integer bit.
type Format struct {
	Signed   bool
	IntBits  int
	FracBits int
}

// UQ0_16 is the unsigned format with no integer bits and 16 fractional bits.
var UQ0_16 = Format{IntBits: 0, FracBits: 16}

// Validate reports whether f describes a representable word.
func (f Format) Validate() error {
	if f.IntBits < 0 || f.FracBits < 0 {
		return fmt.Errorf("fixed: %w: negative bit count in %s", ErrInvalidFormat, f)
	}

	width := f.Width()
	if width < 1 || width > maxWidth {
		return fmt.Errorf("fixed: %w: width must be in [1, %d]: %d", ErrInvalidFormat, maxWidth, width)
	}

	if f.Signed && f.IntBits < 1 {
		return fmt.Errorf("fixed: %w: signed format needs a sign bit: %s", ErrInvalidFormat, f)
	}

	return nil
}

// Width returns the total number of bits in a word.
func (f Format) Width() int { return f.IntBits + f.FracBits }

// HexDigits returns the number of hex digits needed to print one word.
func (f Format) HexDigits() int { return (f.Width() + 3) / 4 }

// Resolution returns the value of one least significant bit.
func (f Format) Resolution() float64 { return math.Ldexp(1, -f.FracBits) }

// Min returns the smallest representable value.
func (f Format) Min() float64 {
	if !f.Signed {
		return 0
	}

	return -math.Ldexp(1, f.IntBits-1)
}

// Max returns the exclusive upper bound of the representable range.
func (f Format) Max() float64 {
	if !f.Signed {
		return math.Ldexp(1, f.IntBits)
	}

	return math.Ldexp(1, f.IntBits-1)
}

// String returns the Q notation of the format, e.g. "UQ0.16" or "Q1.15".
func (f Format) String() string {
	prefix := "UQ"
	if f.Signed {
		prefix = "Q"
	}

	return prefix + strconv.Itoa(f.IntBits) + "." + strconv.Itoa(f.FracBits)
}

func (f Format) mask() uint64 { return 1<<uint(f.Width()) - 1 }

// ParseFormat parses Q notation such as "uq0.16" or "Q1.15" (case-insensitive).
// A "UQ" prefix selects an unsigned format, "Q" a signed one.
func ParseFormat(s string) (Format, error) {
	text := strings.ToLower(strings.TrimSpace(s))

	var f Format

	switch {
	case strings.HasPrefix(text, "uq"):
		text = text[2:]
	case strings.HasPrefix(text, "q"):
		f.Signed = true
		text = text[1:]
	default:
		return Format{}, fmt.Errorf("fixed: %w: %q", ErrInvalidFormat, s)
	}

	intPart, fracPart, ok := strings.Cut(text, ".")
	if !ok {
		return Format{}, fmt.Errorf("fixed: %w: %q", ErrInvalidFormat, s)
	}

	var err error

	if f.IntBits, err = strconv.Atoi(intPart); err != nil {
		return Format{}, fmt.Errorf("fixed: %w: %q", ErrInvalidFormat, s)
	}

	if f.FracBits, err = strconv.Atoi(fracPart); err != nil {
		return Format{}, fmt.Errorf("fixed: %w: %q", ErrInvalidFormat, s)
	}

	if err := f.Validate(); err != nil {
		return Format{}, err
	}

	return f, nil
}
