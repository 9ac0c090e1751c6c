package fixed

import (
	"fmt"
	"math"
)

// Quantizer converts real values into fixed-point words of one format.
// A Quantizer holds no mutable state and is safe for concurrent use.
type Quantizer struct {
	format   Format
	rounding Rounding

	// derived from format
	scale float64
	loInt float64
	hiInt float64 // exclusive
}

// NewQuantizer creates a Quantizer. The default configuration is unsigned
// Q0.16 with [RoundDefault] (round to nearest, ties up).
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	quant := &Quantizer{
		format:   cfg.format,
		rounding: cfg.rounding.resolve(cfg.format.Signed),
	}
	quant.updateDerived()

	return quant, nil
}

func (q *Quantizer) updateDerived() {
	q.scale = math.Ldexp(1, q.format.FracBits)
	q.loInt = q.format.Min() * q.scale
	q.hiInt = q.format.Max() * q.scale
}

// Quantize converts x into a word. x must be finite and inside
// [Format.Min, Format.Max); a value that rounds up to Format.Max is rejected
// as well. Out-of-range values are reported, never clamped.
func (q *Quantizer) Quantize(x float64) (Value, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Value{}, fmt.Errorf("fixed: %w: %v", ErrNotFinite, x)
	}

	if x < q.format.Min() || x >= q.format.Max() {
		return Value{}, fmt.Errorf("fixed: %w: %v not in [%g, %g) for %s",
			ErrOutOfRange, x, q.format.Min(), q.format.Max(), q.format)
	}

	// Scaling by a power of two is exact.
	n := q.rounding.apply(x * q.scale)
	if n < q.loInt || n >= q.hiInt {
		return Value{}, fmt.Errorf("fixed: %w: %v rounds to %v/%v for %s",
			ErrOutOfRange, x, n, q.scale, q.format)
	}

	return FromBits(uint64(int64(n)), q.format), nil
}

// Zero returns the exact zero word of the quantizer's format.
func (q *Quantizer) Zero() Value {
	return Value{format: q.format}
}

// Format returns the word layout.
func (q *Quantizer) Format() Format { return q.format }

// Rounding returns the resolved rounding mode. RoundDefault is never
// returned.
func (q *Quantizer) Rounding() Rounding { return q.rounding }
