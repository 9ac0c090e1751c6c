package meltable

import (
	"fmt"

	"github.com/jurevreca12/mel-engine/dsp/fixed"
)

// Entry holds the two quantized weights stored for one bin.
type Entry struct {
	A fixed.Value
	B fixed.Value
}

// Get returns the word of stream s.
func (e Entry) Get(s Stream) fixed.Value {
	if s == StreamB {
		return e.B
	}

	return e.A
}

// Table is the result of one encoding run.
type Table struct {
	Entries   []Entry
	Stops     []int // nil unless Strategy.HasStops()
	NumBins   int   // bins of the source matrix; entries beyond are padding
	Strategy  Strategy
	Format    fixed.Format
	Threshold float64
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.Entries) }

// Decoded returns the entries as floats, {A, B} per bin.
func (t *Table) Decoded() [][2]float64 {
	out := make([][2]float64, len(t.Entries))
	for j, e := range t.Entries {
		out[j] = [2]float64{e.A.Float(), e.B.Float()}
	}

	return out
}

// Expand rebuilds the dense, dequantized filterbank the way a stop-index
// engine reads the table: filter i accumulates stream i%2 from the bin after
// the stop index of filter i-2 (bin 0 for the first two filters) up to and
// including its own stop index. Padding entries past the source bins are
// ignored.
func (t *Table) Expand() (Matrix, error) {
	if !t.Strategy.HasStops() || t.Stops == nil {
		return Matrix{}, ErrNoStops
	}

	bins := len(t.Entries)
	if t.NumBins > 0 {
		bins = min(t.NumBins, bins)
	}

	rows := make([][]float64, len(t.Stops))
	for i, stop := range t.Stops {
		row := make([]float64, bins)
		st := StreamOf(i)

		start := 0
		if i >= 2 {
			start = t.Stops[i-2] + 1
		}

		for j := start; j <= stop && j < len(row); j++ {
			row[j] = t.Entries[j].Get(st).Float()
		}

		rows[i] = row
	}

	return NewMatrix(rows)
}

// ExpandColumns rebuilds the dense, dequantized filterbank of a two-per-bin
// table. The filter that owns each word is not stored in the table, so it is
// taken from the source matrix m: in every bin the first filter above the
// table threshold reads A and the second reads B.
func (t *Table) ExpandColumns(m Matrix) (Matrix, error) {
	if m.NumBins() > len(t.Entries) {
		return Matrix{}, fmt.Errorf("%w: %d bins, table has %d entries", ErrShape, m.NumBins(), len(t.Entries))
	}

	rows := make([][]float64, m.NumFilters())
	for i := range rows {
		rows[i] = make([]float64, m.NumBins())
	}

	var active []int
	for j := range m.NumBins() {
		active = m.active(active[:0], j, t.Threshold)
		if len(active) > 2 {
			return Matrix{}, &OverlapError{Bin: j, Filters: append([]int(nil), active...), Threshold: t.Threshold}
		}

		for k, i := range active {
			rows[i][j] = t.Entries[j].Get(Stream(k)).Float()
		}
	}

	return NewMatrix(rows)
}

// EngineMatrix returns the dense matrix a consumer engine effectively
// applies: [Table.Expand] for index-tracked tables, [Table.ExpandColumns]
// otherwise.
func (t *Table) EngineMatrix(m Matrix) (Matrix, error) {
	if t.Strategy.HasStops() {
		return t.Expand()
	}

	return t.ExpandColumns(m)
}
