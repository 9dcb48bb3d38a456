package position

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadLot is wrapped by every lot parsing failure.
var ErrBadLot = errors.New("bad entry lot")

// ParseLot parses "PRICE@UNITS", e.g. "1.1000@1000".
func ParseLot(s string) (EntryLot, error) {
	price, units, ok := strings.Cut(strings.TrimSpace(s), "@")
	if !ok {
		return EntryLot{}, fmt.Errorf("%w: %q: want PRICE@UNITS", ErrBadLot, s)
	}

	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return EntryLot{}, fmt.Errorf("%w: %q: price: %v", ErrBadLot, s, err)
	}
	u, err := strconv.ParseFloat(strings.TrimSpace(units), 64)
	if err != nil {
		return EntryLot{}, fmt.Errorf("%w: %q: units: %v", ErrBadLot, s, err)
	}

	lot := EntryLot{Price: p, Units: u}
	if err := lot.Validate(); err != nil {
		return EntryLot{}, fmt.Errorf("%w: %q: %v", ErrBadLot, s, err)
	}
	return lot, nil
}

// ParseLots parses every element of ss, stopping at the first failure.
func ParseLots(ss []string) ([]EntryLot, error) {
	lots := make([]EntryLot, 0, len(ss))
	for i, s := range ss {
		lot, err := ParseLot(s)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		lots = append(lots, lot)
	}
	return lots, nil
}

// Validate checks the lot's own preconditions: a positive price and
// non-negative units.
func (l EntryLot) Validate() error {
	if !(l.Price > 0) || math.IsInf(l.Price, 1) {
		return fmt.Errorf("%w: %g", ErrInvalidPrice, l.Price)
	}
	if l.Units < 0 || math.IsNaN(l.Units) || math.IsInf(l.Units, 1) {
		return fmt.Errorf("%w: %g", ErrInvalidUnits, l.Units)
	}
	return nil
}

func (l EntryLot) String() string {
	return strconv.FormatFloat(l.Price, 'f', -1, 64) + "@" + strconv.FormatFloat(l.Units, 'f', -1, 64)
}
