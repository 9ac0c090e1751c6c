package meltable

import (
	"fmt"
	"strings"
)

// Strategy selects how weights are packed into the two table streams.
type Strategy int

const (
	// StrategyTwoPerBin packs each bin's above-threshold weights in filter
	// order. It produces no stop indices.
	StrategyTwoPerBin Strategy = iota
	// StrategyIndexTracked packs filters alternately into stream A and B and
	// records the last active bin of every filter.
	StrategyIndexTracked

	strategyCount // sentinel for validation
)

var strategyNames = [strategyCount]string{"two-per-bin", "index-tracked"}

// String returns the name of the strategy.
func (s Strategy) String() string {
	if s.Valid() {
		return strategyNames[s]
	}

	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool { return s >= 0 && s < strategyCount }

// HasStops reports whether tables packed with s carry stop indices.
func (s Strategy) HasStops() bool { return s == StrategyIndexTracked }

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range strategyNames {
		if v == n {
			return Strategy(i), nil
		}
	}

	return 0, fmt.Errorf("meltable: unknown strategy %q", name)
}

// Stream names one of the two weight columns of the table.
type Stream int

const (
	StreamA Stream = iota
	StreamB
)

// Next returns the other stream.
func (s Stream) Next() Stream { return 1 - s }

// String returns "A" or "B".
func (s Stream) String() string {
	if s == StreamB {
		return "B"
	}

	return "A"
}

// StreamOf returns the stream that carries filter i in an index-tracked table.
func StreamOf(filter int) Stream { return Stream(filter % 2) }

// HexLayout selects how the two words of an entry are joined on a hex line.
type HexLayout int

const (
	// HexPacked writes both words back to back ("{B}{A}").
	HexPacked HexLayout = iota
	// HexSpaced separates the words with one space ("{B} {A}").
	HexSpaced

	hexLayoutCount // sentinel for validation
)

var hexLayoutNames = [hexLayoutCount]string{"packed", "spaced"}

// String returns the name of the layout.
func (l HexLayout) String() string {
	if l.Valid() {
		return hexLayoutNames[l]
	}

	return fmt.Sprintf("HexLayout(%d)", int(l))
}

// Valid reports whether l is a known layout.
func (l HexLayout) Valid() bool { return l >= 0 && l < hexLayoutCount }

// ParseHexLayout returns the layout with the given name. The empty string
// selects HexPacked.
func ParseHexLayout(name string) (HexLayout, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return HexPacked, nil
	}

	for i, v := range hexLayoutNames {
		if v == n {
			return HexLayout(i), nil
		}
	}

	return 0, fmt.Errorf("meltable: unknown hex layout %q", name)
}
