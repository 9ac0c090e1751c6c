// Package fixed quantizes real values into binary fixed-point words.
//
// A [Format] describes the word layout: signedness, integer bits and
// fractional bits. The unsigned Q0.16 layout used by the mel table is
// available as [UQ0_16]:
//
//	range      [0, 1)
//	resolution 1/65536
//	hex width  4 digits
//
// A [Quantizer] converts float64 values into [Value] words with an explicit
// [Rounding] mode so that the emitted bits are reproducible across platforms.
// Values outside the representable range are rejected with [ErrOutOfRange];
// they are never clamped.
//
// Basic usage:
//
//	q, _ := fixed.NewQuantizer(fixed.WithFormat(fixed.UQ0_16))
//	v, err := q.Quantize(0.5)
//	fmt.Println(v.Hex(), v.Float()) // 8000 0.5
package fixed
