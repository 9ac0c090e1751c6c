package meltable

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// WriteHex writes one line per entry: stream B, stream A, then the decoded
// weights as a comment with four decimals. Lines are separated by '\n' and
// the last line has no terminator.
func (t *Table) WriteHex(w io.Writer, layout HexLayout) error {
	if !layout.Valid() {
		return fmt.Errorf("meltable: invalid hex layout: %d", layout)
	}

	sep := ""
	if layout == HexSpaced {
		sep = " "
	}

	bw := bufio.NewWriter(w)
	for j, e := range t.Entries {
		if j > 0 {
			bw.WriteByte('\n')
		}

		fmt.Fprintf(bw, "%s%s%s //%.4f,%.4f", e.B.Hex(), sep, e.A.Hex(), e.B.Float(), e.A.Float())
	}

	return bw.Flush()
}

// WriteStops writes one stop index per line, every line newline terminated.
func (t *Table) WriteStops(w io.Writer) error {
	if !t.Strategy.HasStops() || t.Stops == nil {
		return ErrNoStops
	}

	bw := bufio.NewWriter(w)

	var buf []byte
	for _, s := range t.Stops {
		buf = strconv.AppendInt(buf[:0], int64(s), 10)
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	return bw.Flush()
}

// WriteCSV writes m with one filter per line and four decimals per weight,
// every line newline terminated.
func WriteCSV(w io.Writer, m Matrix) error {
	bw := bufio.NewWriter(w)

	var buf []byte
	for _, row := range m.rows {
		buf = buf[:0]
		for j, v := range row {
			if j > 0 {
				buf = append(buf, ',')
			}

			buf = strconv.AppendFloat(buf, v, 'f', 4, 64)
		}

		buf = append(buf, '\n')
		bw.Write(buf)
	}

	return bw.Flush()
}

// Artifacts holds the rendered outputs of one encoding run. Everything is
// rendered in memory first so that a failure leaves no partial output.
type Artifacts struct {
	Hex   []byte
	Stops []byte // nil when the table has no stop indices
	CSV   []byte
}

// Render produces all artifacts for t and its source matrix m.
func Render(t *Table, m Matrix, layout HexLayout) (*Artifacts, error) {
	var hex, csv bytes.Buffer

	if err := t.WriteHex(&hex, layout); err != nil {
		return nil, err
	}

	if err := WriteCSV(&csv, m); err != nil {
		return nil, err
	}

	a := &Artifacts{Hex: hex.Bytes(), CSV: csv.Bytes()}

	if t.Strategy.HasStops() {
		var stops bytes.Buffer
		if err := t.WriteStops(&stops); err != nil {
			return nil, err
		}

		a.Stops = stops.Bytes()
	}

	return a, nil
}
