package risk

import "math"

// PlannedRisk is the account-currency loss if the stop is hit.
// units × |entry − stop| is in quote currency; quoteToAccount converts it.
func PlannedRisk(units, entry, stop, quoteToAccount float64) float64 {
	return math.Abs(units) * math.Abs(entry-stop) * quoteToAccount
}

// RR is reward over risk for a stop and take-profit around entry.
// A zero-distance stop yields 0.
func RR(entry, stop, takeProfit float64) float64 {
	risk := math.Abs(entry - stop)
	reward := math.Abs(takeProfit - entry)
	if risk == 0 {
		return 0
	}
	return reward / risk
}

func RiskPct(plannedRisk, equity float64) float64 {
	if equity <= 0 {
		return math.Inf(1)
	}
	return plannedRisk / equity
}
