package fixed

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestNewQuantizerValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"zero width", []Option{WithFormat(Format{})}},
		{"too wide", []Option{WithFormat(Format{IntBits: 1, FracBits: 32})}},
		{"negative bits", []Option{WithFormat(Format{IntBits: -1, FracBits: 16})}},
		{"signed without sign bit", []Option{WithFormat(Format{Signed: true, FracBits: 16})}},
		{"bad rounding", []Option{WithRounding(Rounding(99))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantizer(tt.opts...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewQuantizerDefaults(t *testing.T) {
	quant, err := NewQuantizer(nil)
	if err != nil {
		t.Fatal(err)
	}

	if quant.Format() != UQ0_16 {
		t.Errorf("Format() = %s, want UQ0.16", quant.Format())
	}

	if quant.Rounding() != RoundNearest {
		t.Errorf("Rounding() = %s, want nearest", quant.Rounding())
	}

	signed, err := NewQuantizer(WithFormat(Format{Signed: true, IntBits: 1, FracBits: 15}))
	if err != nil {
		t.Fatal(err)
	}

	if signed.Rounding() != RoundConvergent {
		t.Errorf("signed Rounding() = %s, want convergent", signed.Rounding())
	}
}

func TestQuantizeKnownWords(t *testing.T) {
	quant, err := NewQuantizer()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   float64
		bits uint64
		hex  string
	}{
		{0, 0x0000, "0000"},
		{0.5, 0x8000, "8000"},
		{0.25, 0x4000, "4000"},
		{1.0 / 65536, 0x0001, "0001"},
		{1.5 / 65536, 0x0002, "0002"}, // tie rounds up
		{0.49 / 65536, 0x0000, "0000"},
		{65535.0 / 65536, 0xffff, "ffff"},
	}
	for _, tt := range tests {
		v, err := quant.Quantize(tt.in)
		if err != nil {
			t.Fatalf("Quantize(%v): %v", tt.in, err)
		}

		if v.Bits() != tt.bits {
			t.Errorf("Quantize(%v).Bits() = %#x, want %#x", tt.in, v.Bits(), tt.bits)
		}

		if v.Hex() != tt.hex {
			t.Errorf("Quantize(%v).Hex() = %q, want %q", tt.in, v.Hex(), tt.hex)
		}
	}
}

func TestQuantizeRoundingModes(t *testing.T) {
	f := Format{IntBits: 4, FracBits: 0}
	tests := []struct {
		mode Rounding
		in   float64
		want int64
	}{
		{RoundNearest, 2.5, 3},
		{RoundNearest, 2.4999999999999996, 2},
		{RoundConvergent, 2.5, 2},
		{RoundConvergent, 3.5, 4},
		{RoundDown, 2.9, 2},
		{RoundUp, 2.1, 3},
		{RoundUp, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			quant, err := NewQuantizer(WithFormat(f), WithRounding(tt.mode))
			if err != nil {
				t.Fatal(err)
			}

			v, err := quant.Quantize(tt.in)
			if err != nil {
				t.Fatal(err)
			}

			if v.Int() != tt.want {
				t.Errorf("Quantize(%v) = %d, want %d", tt.in, v.Int(), tt.want)
			}
		})
	}
}

func TestQuantizeOutOfRange(t *testing.T) {
	quant, err := NewQuantizer()
	if err != nil {
		t.Fatal(err)
	}

	for _, x := range []float64{-1e-9, -0.5, 1.0, 1.5, 1 - 1e-9} {
		if _, err := quant.Quantize(x); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Quantize(%v) error = %v, want ErrOutOfRange", x, err)
		}
	}

	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := quant.Quantize(x); !errors.Is(err, ErrNotFinite) {
			t.Errorf("Quantize(%v) error = %v, want ErrNotFinite", x, err)
		}
	}
}

func TestQuantizeRoundTrip(t *testing.T) {
	quant, err := NewQuantizer()
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewPCG(42, 0))
	tol := quant.Format().Resolution()

	for range 10000 {
		x := rng.Float64() * (1 - tol)

		v, err := quant.Quantize(x)
		if err != nil {
			t.Fatalf("Quantize(%v): %v", x, err)
		}

		if diff := math.Abs(v.Float() - x); diff > tol {
			t.Fatalf("round trip %v -> %v, diff %v > %v", x, v.Float(), diff, tol)
		}

		if diff := math.Abs(v.Float() - x); diff > tol/2 {
			t.Fatalf("nearest rounding off by more than half an LSB: %v", diff)
		}
	}
}

func TestQuantizeSigned(t *testing.T) {
	quant, err := NewQuantizer(WithFormat(Format{Signed: true, IntBits: 1, FracBits: 15}))
	if err != nil {
		t.Fatal(err)
	}

	v, err := quant.Quantize(-0.5)
	if err != nil {
		t.Fatal(err)
	}

	if v.Bits() != 0xc000 {
		t.Errorf("Bits() = %#x, want 0xc000", v.Bits())
	}

	if v.Float() != -0.5 {
		t.Errorf("Float() = %v, want -0.5", v.Float())
	}

	if _, err := quant.Quantize(-1); err != nil {
		t.Errorf("Quantize(-1): %v", err)
	}

	if _, err := quant.Quantize(1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Quantize(1) error = %v, want ErrOutOfRange", err)
	}
}

func TestQuantizeDeterministic(t *testing.T) {
	a, _ := NewQuantizer()
	b, _ := NewQuantizer()

	rng := rand.New(rand.NewPCG(7, 0))
	for range 1000 {
		x := rng.Float64() * 0.999

		va, errA := a.Quantize(x)
		vb, errB := b.Quantize(x)

		if errA != nil || errB != nil {
			t.Fatalf("unexpected errors: %v, %v", errA, errB)
		}

		if va != vb {
			t.Fatalf("Quantize(%v) differs: %s vs %s", x, va, vb)
		}
	}
}

func TestZero(t *testing.T) {
	quant, err := NewQuantizer()
	if err != nil {
		t.Fatal(err)
	}

	z := quant.Zero()
	if !z.IsZero() || z.Hex() != "0000" || z.Float() != 0 {
		t.Errorf("Zero() = %s (%v)", z.Hex(), z.Float())
	}

	q0, _ := quant.Quantize(0)
	if q0 != z {
		t.Errorf("Quantize(0) = %s, want Zero()", q0)
	}
}
