package risk

// EUR_USD → quote = USD → QuoteToAccount = 1.0
// USD_JPY → quote = JPY → QuoteToAccount = 1 / USDJPY

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/fxpl/market"
)

var ErrInvalidInputs = errors.New("invalid sizing inputs")

type Inputs struct {
	Equity         float64
	RiskPct        float64 // 0.005
	EntryPrice     float64
	StopPrice      float64
	PipLocation    int
	QuoteToAccount float64 // USD quote → 1.0, JPY quote → JPYUSD
}

type Result struct {
	Units      float64
	StopPips   float64
	RiskAmount float64
}

// Size returns the whole number of units that loses RiskPct of Equity if the
// stop is hit.
func Size(in Inputs) (Result, error) {
	switch {
	case in.Equity <= 0:
		return Result{}, fmt.Errorf("%w: equity must be positive", ErrInvalidInputs)
	case in.RiskPct <= 0 || in.RiskPct > 1:
		return Result{}, fmt.Errorf("%w: risk percent must be in (0, 1]", ErrInvalidInputs)
	case in.EntryPrice <= 0 || in.StopPrice <= 0:
		return Result{}, fmt.Errorf("%w: entry and stop must be positive", ErrInvalidInputs)
	case in.EntryPrice == in.StopPrice:
		return Result{}, fmt.Errorf("%w: stop equals entry", ErrInvalidInputs)
	case in.QuoteToAccount <= 0:
		return Result{}, fmt.Errorf("%w: quote to account rate must be positive", ErrInvalidInputs)
	}

	pip := market.PipSize(in.PipLocation)
	stopPips := math.Abs(in.EntryPrice-in.StopPrice) / pip

	riskAmt := in.Equity * in.RiskPct
	pipValuePerUnit := pip * in.QuoteToAccount

	units := riskAmt / (stopPips * pipValuePerUnit)

	return Result{
		Units:      math.Floor(units + 1e-9),
		StopPips:   stopPips,
		RiskAmount: riskAmt,
	}, nil
}
