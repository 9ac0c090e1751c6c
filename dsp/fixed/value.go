package fixed

import (
	"math"
	"strconv"
	"strings"
)

// Value is one quantized fixed-point word together with its format.
// The zero Value is the zero word of the zero Format.
type Value struct {
	bits   uint64
	format Format
}

// FromBits builds a Value from a raw word. Bits above the format width are
// discarded.
func FromBits(bits uint64, f Format) Value {
	return Value{bits: bits & f.mask(), format: f}
}

// Bits returns the raw word (two's complement for signed formats).
func (v Value) Bits() uint64 { return v.bits }

// Format returns the word layout.
func (v Value) Format() Format { return v.format }

// IsZero reports whether the word is zero.
func (v Value) IsZero() bool { return v.bits == 0 }

// Int returns the word interpreted as a scaled integer.
func (v Value) Int() int64 {
	width := v.format.Width()
	if v.format.Signed && width > 0 && v.bits>>(uint(width)-1)&1 == 1 {
		return int64(v.bits) - int64(1)<<uint(width)
	}

	return int64(v.bits)
}

// Float decodes the word. The conversion is exact for widths up to 32 bits.
func (v Value) Float() float64 {
	return math.Ldexp(float64(v.Int()), -v.format.FracBits)
}

// Hex renders the raw word as lowercase hex, zero padded to the format's
// digit count and without a radix prefix.
func (v Value) Hex() string {
	digits := strconv.FormatUint(v.bits, 16)
	if pad := v.format.HexDigits() - len(digits); pad > 0 {
		return strings.Repeat("0", pad) + digits
	}

	return digits
}

// String returns the hex rendering.
func (v Value) String() string { return v.Hex() }
