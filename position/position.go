// Package position computes the volume-weighted average entry price and
// profit/loss of an FX position assembled from one or more entry lots.
package position

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrUndefinedAverage is returned when the average entry price cannot be
// computed: no lots were given or their units sum to zero.
var ErrUndefinedAverage = errors.New("average entry price undefined")

// EntryLot is a single fill: Units bought at Price.
type EntryLot struct {
	Price float64
	Units float64
}

// Result is the outcome of closing the aggregated position at an exit price.
type Result struct {
	ProfitLoss   float64
	AveragePrice float64
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// checkFinite rejects NaN and ±Inf, which would otherwise poison the sums.
func checkFinite(entries []EntryLot, exitPrice float64) error {
	for i, e := range entries {
		if !finite(e.Price) {
			return fmt.Errorf("entry %d: %w: %g", i+1, ErrInvalidPrice, e.Price)
		}
		if !finite(e.Units) {
			return fmt.Errorf("entry %d: %w: %g", i+1, ErrInvalidUnits, e.Units)
		}
	}
	if !finite(exitPrice) {
		return fmt.Errorf("exit: %w: %g", ErrInvalidPrice, exitPrice)
	}
	return nil
}

// Compute returns the volume-weighted average entry price of entries and the
// profit/loss of closing all of them at exitPrice. Non-finite inputs return
// ErrInvalidPrice or ErrInvalidUnits.
func Compute(entries []EntryLot, exitPrice float64) (Result, error) {
	if err := checkFinite(entries, exitPrice); err != nil {
		return Result{}, err
	}

	var cost, units float64
	for _, e := range entries {
		cost += e.Price * e.Units
		units += e.Units
	}
	if units == 0 {
		return Result{}, ErrUndefinedAverage
	}

	avg := cost / units
	return Result{
		ProfitLoss:   (exitPrice - avg) * units,
		AveragePrice: avg,
	}, nil
}

// ComputeExact is Compute carried out in decimal arithmetic. The inputs are
// converted once at the boundary so 1.1 and 1.2 average to exactly 1.15.
func ComputeExact(entries []EntryLot, exitPrice float64) (Result, error) {
	if err := checkFinite(entries, exitPrice); err != nil {
		return Result{}, err
	}

	cost := decimal.Zero
	units := decimal.Zero
	for _, e := range entries {
		p := decimal.NewFromFloat(e.Price)
		u := decimal.NewFromFloat(e.Units)
		cost = cost.Add(p.Mul(u))
		units = units.Add(u)
	}
	if units.IsZero() {
		return Result{}, ErrUndefinedAverage
	}

	avg := cost.DivRound(units, 16)
	pl := decimal.NewFromFloat(exitPrice).Sub(avg).Mul(units)

	return Result{
		ProfitLoss:   pl.InexactFloat64(),
		AveragePrice: avg.InexactFloat64(),
	}, nil
}

// TotalUnits sums the units across entries.
func TotalUnits(entries []EntryLot) float64 {
	var units float64
	for _, e := range entries {
		units += e.Units
	}
	return units
}
