package fixed

import "errors"

var (
	// ErrOutOfRange is returned for values outside a format's range,
	// including values that only leave the range after rounding.
	ErrOutOfRange = errors.New("value out of representable range")
	// ErrNotFinite is returned for NaN and infinite inputs.
	ErrNotFinite = errors.New("value is not finite")
	// ErrInvalidFormat is returned for unusable word layouts.
	ErrInvalidFormat = errors.New("invalid fixed-point format")
)
