package meltable

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jurevreca12/mel-engine/dsp/fixed"
)

// threeFilters is a small 50%-overlap bank over six bins.
var threeFilters = [][]float64{
	{0, 0.5, 0.25, 0, 0, 0},
	{0, 0, 0.25, 0.5, 0.25, 0},
	{0, 0, 0, 0, 0.5, 0.25},
}

func mustMatrix(t *testing.T, rows [][]float64) Matrix {
	t.Helper()

	m, err := NewMatrix(rows)
	if err != nil {
		t.Fatal(err)
	}

	return m
}

func mustEncoder(t *testing.T, opts ...Option) *Encoder {
	t.Helper()

	enc, err := NewEncoder(opts...)
	if err != nil {
		t.Fatal(err)
	}

	return enc
}

func streamFloats(tbl *Table, s Stream) []float64 {
	out := make([]float64, tbl.Len())
	for j, e := range tbl.Entries {
		out[j] = e.Get(s).Float()
	}

	return out
}

func TestNewEncoderValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"bad strategy", []Option{WithStrategy(Strategy(9))}},
		{"negative threshold", []Option{WithThreshold(-1)}},
		{"negative length", []Option{WithTableLength(-1)}},
		{"nil quantizer", []Option{WithQuantizer(nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEncoder(tt.opts...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewEncoderDefaults(t *testing.T) {
	enc := mustEncoder(t, nil)

	if enc.Strategy() != StrategyTwoPerBin {
		t.Errorf("Strategy() = %s, want two-per-bin", enc.Strategy())
	}

	if enc.Threshold() != DefaultThreshold {
		t.Errorf("Threshold() = %v, want %v", enc.Threshold(), DefaultThreshold)
	}

	if enc.Quantizer().Format() != fixed.UQ0_16 {
		t.Errorf("Format() = %s, want UQ0.16", enc.Quantizer().Format())
	}
}

func TestNewMatrixShape(t *testing.T) {
	if _, err := NewMatrix(nil); !errors.Is(err, ErrShape) {
		t.Errorf("nil rows: error = %v, want ErrShape", err)
	}

	if _, err := NewMatrix([][]float64{{}}); !errors.Is(err, ErrShape) {
		t.Errorf("empty row: error = %v, want ErrShape", err)
	}

	if _, err := NewMatrix([][]float64{{0, 1}, {0}}); !errors.Is(err, ErrShape) {
		t.Errorf("ragged: error = %v, want ErrShape", err)
	}

	rows := [][]float64{{0.1, 0.2}}
	m := mustMatrix(t, rows)
	rows[0][0] = 0.9

	if m.At(0, 0) != 0.1 {
		t.Error("NewMatrix did not copy its input")
	}
}

func TestEncodeRejectsTripleOverlap(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{0.5, 0.3, 0, 0},
		{0, 0.3, 0.2, 0},
		{0, 0.3, 0.00005, 0.1},
		{0, 0.2, 0, 0},
	})

	for _, s := range []Strategy{StrategyTwoPerBin, StrategyIndexTracked} {
		t.Run(s.String(), func(t *testing.T) {
			_, err := mustEncoder(t, WithStrategy(s)).Encode(m)
			if !errors.Is(err, ErrOverlap) {
				t.Fatalf("error = %v, want ErrOverlap", err)
			}

			var oe *OverlapError
			if !errors.As(err, &oe) {
				t.Fatalf("error %T is not *OverlapError", err)
			}

			if oe.Bin != 1 {
				t.Errorf("Bin = %d, want 1", oe.Bin)
			}

			if !reflect.DeepEqual(oe.Filters, []int{0, 1, 2, 3}) {
				t.Errorf("Filters = %v, want [0 1 2 3]", oe.Filters)
			}
		})
	}
}

func TestValidateUsesThreshold(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{0.5, 0.3},
		{0, 0.3},
		{0, 0.00005},
	})

	if err := Validate(m, DefaultThreshold); err != nil {
		t.Errorf("Validate: %v", err)
	}

	if err := Validate(m, 0); !errors.Is(err, ErrOverlap) {
		t.Errorf("Validate with eps=0: error = %v, want ErrOverlap", err)
	}
}

func TestEncodeOutOfRangeWeight(t *testing.T) {
	tests := []struct {
		name   string
		rows   [][]float64
		filter int
		bin    int
	}{
		{"one", [][]float64{{0, 1.0, 0}}, 0, 1},
		{"above one", [][]float64{{0, 0.5, 0}, {0, 0, 1.25}}, 1, 2},
		{"negative lead-in", [][]float64{{-0.01, 0.5, 0}}, 0, 0},
		{"rounds to one", [][]float64{{0, 0.99999999, 0}}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mustEncoder(t, WithStrategy(StrategyIndexTracked)).Encode(mustMatrix(t, tt.rows))
			if !errors.Is(err, fixed.ErrOutOfRange) {
				t.Fatalf("error = %v, want ErrOutOfRange", err)
			}

			var we *WeightError
			if !errors.As(err, &we) {
				t.Fatalf("error %T is not *WeightError", err)
			}

			if we.Filter != tt.filter || we.Bin != tt.bin {
				t.Errorf("cell = (%d, %d), want (%d, %d)", we.Filter, we.Bin, tt.filter, tt.bin)
			}
		})
	}
}

func TestEncodeIndexTracked(t *testing.T) {
	tbl, err := mustEncoder(t, WithStrategy(StrategyIndexTracked)).Encode(mustMatrix(t, threeFilters))
	if err != nil {
		t.Fatal(err)
	}

	wantA := []float64{0, 0.5, 0.25, 0, 0.5, 0.25}
	wantB := []float64{0, 0, 0.25, 0.5, 0.25, 0}

	if got := streamFloats(tbl, StreamA); !reflect.DeepEqual(got, wantA) {
		t.Errorf("stream A = %v, want %v", got, wantA)
	}

	if got := streamFloats(tbl, StreamB); !reflect.DeepEqual(got, wantB) {
		t.Errorf("stream B = %v, want %v", got, wantB)
	}

	if !reflect.DeepEqual(tbl.Stops, []int{2, 4, 5}) {
		t.Errorf("Stops = %v, want [2 4 5]", tbl.Stops)
	}
}

func TestEncodeIndexTrackedKeepsLegacyCursor(t *testing.T) {
	// A gap inside a filter is not zero filled: the weight after the gap is
	// appended at the stream cursor, exactly like the legacy generator.
	m := mustMatrix(t, [][]float64{{0.5, 0, 0.5, 0}})

	tbl, err := mustEncoder(t, WithStrategy(StrategyIndexTracked)).Encode(m)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0.5, 0.5, 0, 0}
	if got := streamFloats(tbl, StreamA); !reflect.DeepEqual(got, want) {
		t.Errorf("stream A = %v, want %v", got, want)
	}

	if tbl.Stops[0] != 2 {
		t.Errorf("stop = %d, want 2", tbl.Stops[0])
	}
}

func TestEncodeIndexTrackedLeadInIsExactZero(t *testing.T) {
	// 0.00005 is below the threshold but quantizes to a non-zero word.
	m := mustMatrix(t, [][]float64{
		{0.00005, 0.5, 0},
		{0, 0.00009, 0.5},
	})
	enc := mustEncoder(t, WithStrategy(StrategyIndexTracked))

	if v, err := enc.Quantizer().Quantize(0.00005); err != nil || v.IsZero() {
		t.Fatalf("Quantize(0.00005) = %v, %v; want a non-zero word", v, err)
	}

	tbl, err := enc.Encode(m)
	if err != nil {
		t.Fatal(err)
	}

	if !tbl.Entries[0].A.IsZero() {
		t.Errorf("stream A lead-in = %s, want exact zero", tbl.Entries[0].A.Hex())
	}

	for j := range 2 {
		if !tbl.Entries[j].B.IsZero() {
			t.Errorf("stream B lead-in bin %d = %s, want exact zero", j, tbl.Entries[j].B.Hex())
		}
	}
}

func TestEncodeIndexTrackedOverflow(t *testing.T) {
	enc := mustEncoder(t, WithStrategy(StrategyIndexTracked), WithTableLength(2))

	_, err := enc.Encode(mustMatrix(t, threeFilters))
	if !errors.Is(err, ErrTableOverflow) {
		t.Errorf("error = %v, want ErrTableOverflow", err)
	}
}

func TestEncodeTwoPerBin(t *testing.T) {
	tbl, err := mustEncoder(t).Encode(mustMatrix(t, threeFilters))
	if err != nil {
		t.Fatal(err)
	}

	wantA := []float64{0, 0.5, 0.25, 0.5, 0.25, 0.25}
	wantB := []float64{0, 0, 0.25, 0, 0.5, 0}

	if got := streamFloats(tbl, StreamA); !reflect.DeepEqual(got, wantA) {
		t.Errorf("first weights = %v, want %v", got, wantA)
	}

	if got := streamFloats(tbl, StreamB); !reflect.DeepEqual(got, wantB) {
		t.Errorf("second weights = %v, want %v", got, wantB)
	}

	if tbl.Stops != nil {
		t.Errorf("Stops = %v, want nil", tbl.Stops)
	}

	if _, err := tbl.Expand(); !errors.Is(err, ErrNoStops) {
		t.Errorf("Expand error = %v, want ErrNoStops", err)
	}
}

func TestEncodeTwoPerBinShortTable(t *testing.T) {
	_, err := mustEncoder(t, WithTableLength(4)).Encode(mustMatrix(t, threeFilters))
	if !errors.Is(err, ErrTableOverflow) {
		t.Errorf("error = %v, want ErrTableOverflow", err)
	}
}

func TestEncodeTableLength(t *testing.T) {
	sparse := make([][]float64, 2)
	for i := range sparse {
		sparse[i] = make([]float64, 257)
	}

	sparse[0][3] = 0.5
	m := mustMatrix(t, sparse)

	for _, s := range []Strategy{StrategyTwoPerBin, StrategyIndexTracked} {
		for _, length := range []int{0, 257, 300} {
			tbl, err := mustEncoder(t, WithStrategy(s), WithTableLength(length)).Encode(m)
			if err != nil {
				t.Fatalf("%s/%d: %v", s, length, err)
			}

			want := length
			if want == 0 {
				want = 257
			}

			if tbl.Len() != want {
				t.Errorf("%s/%d: Len() = %d, want %d", s, length, tbl.Len(), want)
			}
		}
	}
}

func TestEncodeSubThresholdFilterIsZero(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{0, 0.5, 0.25, 0, 0},
		{0.00005, 0.00009, 0.0001, 0.00002, 0},
		{0, 0, 0, 0.5, 0.25},
	})

	for _, s := range []Strategy{StrategyTwoPerBin, StrategyIndexTracked} {
		tbl, err := mustEncoder(t, WithStrategy(s)).Encode(m)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}

		for j, e := range tbl.Entries {
			if s == StrategyIndexTracked && !e.B.IsZero() {
				t.Errorf("%s: bin %d stream B = %s, want zero", s, j, e.B)
			}

			for _, v := range []fixed.Value{e.A, e.B} {
				if v.Float() != 0 && v.Float() < 0.25 {
					t.Errorf("%s: bin %d holds sub-threshold word %s", s, j, v)
				}
			}
		}

		if s == StrategyIndexTracked && tbl.Stops[1] != 0 {
			t.Errorf("stop of empty filter = %d, want 0", tbl.Stops[1])
		}
	}
}

func TestExpandIndexTracked(t *testing.T) {
	m := mustMatrix(t, threeFilters)

	tbl, err := mustEncoder(t, WithStrategy(StrategyIndexTracked)).Encode(m)
	if err != nil {
		t.Fatal(err)
	}

	got, err := tbl.Expand()
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(got.Rows(), threeFilters) {
		t.Errorf("Expand() = %v, want %v", got.Rows(), threeFilters)
	}
}

func TestExpandIgnoresPadding(t *testing.T) {
	m := mustMatrix(t, threeFilters)

	tbl, err := mustEncoder(t, WithStrategy(StrategyIndexTracked), WithTableLength(9)).Encode(m)
	if err != nil {
		t.Fatal(err)
	}

	if tbl.Len() != 9 || tbl.NumBins != m.NumBins() {
		t.Fatalf("Len() = %d, NumBins = %d", tbl.Len(), tbl.NumBins)
	}

	got, err := tbl.Expand()
	if err != nil {
		t.Fatal(err)
	}

	if got.NumBins() != m.NumBins() {
		t.Fatalf("expanded bins = %d, want %d", got.NumBins(), m.NumBins())
	}

	if !reflect.DeepEqual(got.Rows(), threeFilters) {
		t.Errorf("Expand() = %v, want %v", got.Rows(), threeFilters)
	}
}

func TestParseStrategy(t *testing.T) {
	for i := range strategyCount {
		s, err := ParseStrategy(i.String())
		if err != nil || s != i {
			t.Errorf("ParseStrategy(%q) = %v, %v", i.String(), s, err)
		}
	}

	if _, err := ParseStrategy("column-major"); err == nil {
		t.Error("expected error")
	}

	if l, err := ParseHexLayout(""); err != nil || l != HexPacked {
		t.Errorf("ParseHexLayout(\"\") = %v, %v", l, err)
	}

	if l, err := ParseHexLayout("Spaced"); err != nil || l != HexSpaced {
		t.Errorf("ParseHexLayout(Spaced) = %v, %v", l, err)
	}

	if StreamA.Next() != StreamB || StreamB.Next() != StreamA {
		t.Error("Stream.Next does not alternate")
	}

	if StreamOf(4) != StreamA || StreamOf(7) != StreamB {
		t.Error("StreamOf parity mismatch")
	}
}

func TestEngineMatrixBothStrategies(t *testing.T) {
	m := mustMatrix(t, threeFilters)

	for _, s := range []Strategy{StrategyTwoPerBin, StrategyIndexTracked} {
		tbl, err := mustEncoder(t, WithStrategy(s)).Encode(m)
		if err != nil {
			t.Fatal(err)
		}

		got, err := tbl.EngineMatrix(m)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}

		if !reflect.DeepEqual(got.Rows(), threeFilters) {
			t.Errorf("%s: EngineMatrix() = %v, want %v", s, got.Rows(), threeFilters)
		}
	}
}

func TestExpandColumnsShortTable(t *testing.T) {
	tbl := &Table{Entries: make([]Entry, 2), Strategy: StrategyTwoPerBin, Threshold: DefaultThreshold}

	if _, err := tbl.ExpandColumns(mustMatrix(t, threeFilters)); !errors.Is(err, ErrShape) {
		t.Errorf("error = %v, want ErrShape", err)
	}
}
