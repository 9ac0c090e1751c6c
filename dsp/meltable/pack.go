package meltable

import (
	"fmt"

	"github.com/jurevreca12/mel-engine/dsp/fixed"
)

// streams is the two-column accumulator of the index-tracked strategy.
// Both columns are preallocated with zero words, so entries past a cursor
// are already padding.
type streams struct {
	data   [2][]fixed.Value
	cursor [2]int
}

func newStreams(length int, zero fixed.Value) *streams {
	s := &streams{}
	for k := range s.data {
		s.data[k] = make([]fixed.Value, length)
		for j := range s.data[k] {
			s.data[k][j] = zero
		}
	}

	return s
}

// push writes v at the cursor of stream s and advances it.
func (s *streams) push(st Stream, v fixed.Value) error {
	pos := s.cursor[st]
	if pos >= len(s.data[st]) {
		return fmt.Errorf("%w: stream %s needs more than %d entries", ErrTableOverflow, st, len(s.data[st]))
	}

	s.data[st][pos] = v
	s.cursor[st]++

	return nil
}

func (s *streams) entries() []Entry {
	out := make([]Entry, len(s.data[StreamA]))
	for j := range out {
		out[j] = Entry{A: s.data[StreamA][j], B: s.data[StreamB][j]}
	}

	return out
}

// packIndexTracked walks filters in order, alternating between stream A and
// B. Until a filter's first above-threshold weight, bins not yet written in
// its stream are filled with zero; afterwards only above-threshold weights
// are appended. Every filter's last above-threshold bin is its stop index.
func packIndexTracked(m Matrix, words [][]fixed.Value, eps float64, length int, zero fixed.Value) ([]Entry, []int, error) {
	acc := newStreams(length, zero)
	stops := make([]int, m.NumFilters())

	st := StreamA
	for i, row := range m.rows {
		leadIn := true

		for j, w := range row {
			switch {
			case w > eps:
				leadIn = false
				stops[i] = j

				if err := acc.push(st, words[i][j]); err != nil {
					return nil, nil, fmt.Errorf("filter %d bin %d: %w", i, j, err)
				}
			case leadIn && j >= acc.cursor[st]:
				if err := acc.push(st, zero); err != nil {
					return nil, nil, fmt.Errorf("filter %d bin %d: %w", i, j, err)
				}
			}
		}

		st = st.Next()
	}

	return acc.entries(), stops, nil
}

// packTwoPerBin stores, for every bin, the above-threshold weights in filter
// order: none, (w, 0) or (w1, w2).
func packTwoPerBin(m Matrix, words [][]fixed.Value, eps float64, length int, zero fixed.Value) ([]Entry, error) {
	if length < m.NumBins() {
		return nil, fmt.Errorf("%w: %d bins do not fit %d entries", ErrTableOverflow, m.NumBins(), length)
	}

	out := make([]Entry, length)
	for j := range out {
		out[j] = Entry{A: zero, B: zero}
	}

	var active []int
	for j := range m.bins {
		active = m.active(active[:0], j, eps)

		switch len(active) {
		case 0:
		case 1:
			out[j].A = words[active[0]][j]
		case 2:
			out[j].A = words[active[0]][j]
			out[j].B = words[active[1]][j]
		default:
			return nil, &OverlapError{Bin: j, Filters: append([]int(nil), active...), Threshold: eps}
		}
	}

	return out, nil
}
