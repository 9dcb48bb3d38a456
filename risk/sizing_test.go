package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize_SimpleUSDQuote(t *testing.T) {
	t.Parallel()

	got, err := Size(Inputs{
		Equity:         10000,
		RiskPct:        0.01,
		EntryPrice:     1.2000,
		StopPrice:      1.1900,
		PipLocation:    -4,
		QuoteToAccount: 1.0,
	})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, got.StopPips, 1e-9)
	assert.InDelta(t, 100.0, got.RiskAmount, 1e-9)
	assert.InDelta(t, 10000.0, got.Units, 1.0)
}

func TestSize_NonUSDQuoteConversion(t *testing.T) {
	t.Parallel()

	got, err := Size(Inputs{
		Equity:         5000,
		RiskPct:        0.02,
		EntryPrice:     150.00,
		StopPrice:      149.50,
		PipLocation:    -2,
		QuoteToAccount: 0.0091,
	})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, got.StopPips, 1e-9)
	assert.InDelta(t, 100.0, got.RiskAmount, 1e-9)
	assert.InDelta(t, 21978.0, got.Units, 1.0)
}

func TestSize_StopAboveEntry(t *testing.T) {
	t.Parallel()

	got, err := Size(Inputs{
		Equity:         2000,
		RiskPct:        0.005,
		EntryPrice:     1.0000,
		StopPrice:      1.0100,
		PipLocation:    -4,
		QuoteToAccount: 1.0,
	})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, got.StopPips, 1e-9)
	assert.InDelta(t, 10.0, got.RiskAmount, 1e-9)
	assert.InDelta(t, 1000.0, got.Units, 1.0)
}

func TestSize_Invalid(t *testing.T) {
	t.Parallel()

	valid := Inputs{Equity: 1000, RiskPct: 0.01, EntryPrice: 1.2, StopPrice: 1.19, PipLocation: -4, QuoteToAccount: 1}

	tests := []struct {
		name   string
		mutate func(*Inputs)
	}{
		{"no_equity", func(in *Inputs) { in.Equity = 0 }},
		{"no_risk", func(in *Inputs) { in.RiskPct = 0 }},
		{"too_much_risk", func(in *Inputs) { in.RiskPct = 1.5 }},
		{"stop_equals_entry", func(in *Inputs) { in.StopPrice = in.EntryPrice }},
		{"negative_stop", func(in *Inputs) { in.StopPrice = -1 }},
		{"no_rate", func(in *Inputs) { in.QuoteToAccount = 0 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := valid
			tt.mutate(&in)
			_, err := Size(in)
			assert.ErrorIs(t, err, ErrInvalidInputs)
		})
	}
}

func TestPlannedRisk(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 100.0, PlannedRisk(10000, 1.2000, 1.1900, 1.0), 1e-9)
	assert.InDelta(t, 100.0, PlannedRisk(-10000, 1.1900, 1.2000, 1.0), 1e-9)
	assert.InDelta(t, 4.55, PlannedRisk(1000, 150.00, 149.50, 0.0091), 1e-9)
}

func TestRR(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, RR(1.2000, 1.1900, 1.2200), 1e-9)
	assert.InDelta(t, 0.5, RR(1.2000, 1.2100, 1.1950), 1e-9)
	assert.Equal(t, 0.0, RR(1.2, 1.2, 1.3))
}

func TestRiskPct(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.01, RiskPct(100, 10000), 1e-12)
	assert.True(t, RiskPct(100, 0) > 1e300)
}
