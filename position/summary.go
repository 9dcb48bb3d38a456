package position

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/fxpl/market"
)

var (
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidUnits    = errors.New("units must not be negative")
	ErrInvalidLeverage = errors.New("leverage must be at least 1")
	ErrInvalidRate     = errors.New("quote to account rate must be positive")
)

// Request describes a position to summarize.
//
// EUR_USD in a USD account → QuoteToAccount = 1.0
// USD_JPY in a USD account → QuoteToAccount = 1 / USDJPY
type Request struct {
	Instrument     string
	PipLocation    int // -4 for EUR_USD, -2 for USD_JPY
	Entries        []EntryLot
	ExitPrice      float64
	Leverage       float64 // 50 means 50:1; 0 is treated as 1
	QuoteToAccount float64 // 0 is treated as 1
	Exact          bool    // decimal arithmetic for the average and P/L
}

// Summary extends Result with the figures a trader usually wants next to it.
type Summary struct {
	Result

	Instrument string
	Units      float64
	ExitPrice  float64
	Pips       float64

	Leverage       float64
	Notional       float64 // quote currency
	Margin         float64 // account currency
	AccountPL      float64 // account currency
	ReturnOnMargin float64
}

// Summarize validates req and computes its Summary.
func Summarize(req Request) (Summary, error) {
	for i, e := range req.Entries {
		if err := e.Validate(); err != nil {
			return Summary{}, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	if !(req.ExitPrice > 0) || math.IsInf(req.ExitPrice, 1) {
		return Summary{}, fmt.Errorf("exit: %w: %g", ErrInvalidPrice, req.ExitPrice)
	}

	lev := req.Leverage
	if lev == 0 {
		lev = 1
	}
	if !(lev >= 1) {
		return Summary{}, fmt.Errorf("%w: %g", ErrInvalidLeverage, req.Leverage)
	}

	rate := req.QuoteToAccount
	if rate == 0 {
		rate = 1
	}
	if !(rate > 0) {
		return Summary{}, fmt.Errorf("%w: %g", ErrInvalidRate, req.QuoteToAccount)
	}

	compute := Compute
	if req.Exact {
		compute = ComputeExact
	}
	res, err := compute(req.Entries, req.ExitPrice)
	if err != nil {
		return Summary{}, err
	}

	units := TotalUnits(req.Entries)
	notional := res.AveragePrice * units
	margin := notional * rate / lev
	accountPL := res.ProfitLoss * rate

	s := Summary{
		Result:     res,
		Instrument: req.Instrument,
		Units:      units,
		ExitPrice:  req.ExitPrice,
		Pips:       (req.ExitPrice - res.AveragePrice) / market.PipSize(req.PipLocation),
		Leverage:   lev,
		Notional:   notional,
		Margin:     margin,
		AccountPL:  accountPL,
	}
	if margin != 0 {
		s.ReturnOnMargin = accountPL / margin
	}
	return s, nil
}
