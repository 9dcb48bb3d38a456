package market

import (
	"fmt"
	"strings"
)

// QuoteToAccountRate converts one unit of the instrument's quote currency
// into the account currency, using price (quote per base) when the account
// is denominated in the base currency. Any other pairing needs an explicit
// rate from the caller.
func QuoteToAccountRate(instrument string, accountCurrency string, price float64) (float64, error) {
	meta, err := Lookup(instrument)
	if err != nil {
		return 0, err
	}
	accountCurrency = strings.ToUpper(accountCurrency)

	// Case 1: quote currency == account currency (EUR_USD, GBP_USD, etc.)
	if meta.QuoteCurrency == accountCurrency {
		return 1.0, nil
	}

	// Case 2: account currency is base (USD_JPY, USD_CHF, etc.)
	if meta.BaseCurrency == accountCurrency {
		if price <= 0 {
			return 0, fmt.Errorf("%s: price must be positive, got %g", meta.Name, price)
		}
		// USD_JPY gives JPY per USD, we want USD per JPY
		return 1.0 / price, nil
	}

	// Case 3: cross currency, e.g. EUR_GBP in a USD account
	return 0, fmt.Errorf(
		"cross conversion %s → %s needs an explicit rate",
		meta.QuoteCurrency,
		accountCurrency,
	)
}
