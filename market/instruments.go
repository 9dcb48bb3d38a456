// market/instruments.go
package market

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	PipLocation   int
	// DisplayPrecision is the number of decimals a quote is shown with.
	DisplayPrecision int
}

var Instruments = map[string]InstrumentMeta{
	"EUR_USD": {Name: "EUR_USD", BaseCurrency: "EUR", QuoteCurrency: "USD", PipLocation: -4, DisplayPrecision: 5},
	"GBP_USD": {Name: "GBP_USD", BaseCurrency: "GBP", QuoteCurrency: "USD", PipLocation: -4, DisplayPrecision: 5},
	"AUD_USD": {Name: "AUD_USD", BaseCurrency: "AUD", QuoteCurrency: "USD", PipLocation: -4, DisplayPrecision: 5},
	"EUR_GBP": {Name: "EUR_GBP", BaseCurrency: "EUR", QuoteCurrency: "GBP", PipLocation: -4, DisplayPrecision: 5},
	"USD_JPY": {Name: "USD_JPY", BaseCurrency: "USD", QuoteCurrency: "JPY", PipLocation: -2, DisplayPrecision: 3},
	"USD_CHF": {Name: "USD_CHF", BaseCurrency: "USD", QuoteCurrency: "CHF", PipLocation: -4, DisplayPrecision: 5},
	"USD_CAD": {Name: "USD_CAD", BaseCurrency: "USD", QuoteCurrency: "CAD", PipLocation: -4, DisplayPrecision: 5},
}

// Normalize turns "eur/usd" or "EUR_USD" into "EUR_USD".
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), "/", "_")
}

// Lookup returns the metadata for name, accepting either separator.
func Lookup(name string) (InstrumentMeta, error) {
	meta, ok := Instruments[Normalize(name)]
	if !ok {
		return InstrumentMeta{}, fmt.Errorf("unknown instrument %s (known: %s)", name, strings.Join(Names(), ", "))
	}
	return meta, nil
}

// Names returns the known instrument names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Instruments))
	for k := range Instruments {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// PipSize returns the pip size for a given pip location.
func PipSize(loc int) float64 {
	return math.Pow(10, float64(loc))
}
