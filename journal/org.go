package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatCalcOrg renders a Record as an Org-mode block suitable for pasting
// into a trading journal. Structured facts live in the PROPERTIES drawer.
func FormatCalcOrg(r Record) string {
	heading := fmt.Sprintf("** Position: %s (%s)", r.Instrument, shortID(r.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":CALC_ID: %s\n", r.ID))
	b.WriteString(fmt.Sprintf(":CREATED: %s\n", r.CreatedAt.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":INSTRUMENT: %s\n", r.Instrument))
	b.WriteString(fmt.Sprintf(":UNITS: %.0f\n", r.Units))
	b.WriteString(fmt.Sprintf(":AVERAGE_PRICE: %.5f\n", r.AveragePrice))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.5f\n", r.ExitPrice))
	b.WriteString(fmt.Sprintf(":PROFIT_LOSS: %.2f\n", r.ProfitLoss))
	b.WriteString(fmt.Sprintf(":PIPS: %.1f\n", r.Pips))
	b.WriteString(fmt.Sprintf(":LEVERAGE: %.0f\n", r.Leverage))
	b.WriteString(fmt.Sprintf(":MARGIN: %.2f\n", r.Margin))
	b.WriteString(fmt.Sprintf(":ACCOUNT_PL: %.2f\n", r.AccountPL))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Entries\n")
	b.WriteString("| # | Price | Units |\n")
	b.WriteString("|---+-------+-------|\n")
	for i, lot := range r.Entries {
		b.WriteString(fmt.Sprintf("| %d | %.5f | %.0f |\n", i+1, lot.Price, lot.Units))
	}
	if r.Note != "" {
		b.WriteString("\n*** Note\n")
		b.WriteString(r.Note)
		b.WriteString("\n")
	}

	return b.String()
}

// FormatCalcsOrg renders multiple records separated by blank lines.
func FormatCalcsOrg(recs []Record) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatCalcOrg(r))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
