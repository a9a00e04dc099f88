package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateTable maps currency codes to conversion factors relative to Base.
// A table is always replaced as a whole, never edited in place.
type RateTable struct {
	FetchedAt time.Time
	Rates     map[string]decimal.Decimal
	Base      string
}

// Rate returns the factor for code.
func (t *RateTable) Rate(code string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	code, _ = NormalizeCurrencyCode(code)
	rate, ok := t.Rates[code]
	return rate, ok
}

// Len returns the number of currencies in the table.
func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rates)
}

// Validate checks that the table is usable: at least one rate and every factor positive.
func (t *RateTable) Validate() error {
	if len(t.Rates) == 0 {
		return &RateFetchError{Reason: "missing rates"}
	}
	for code, rate := range t.Rates {
		if !rate.IsPositive() {
			return &RateFetchError{Reason: "non-positive rate for " + code}
		}
	}
	return nil
}

// Convert rescales an amount in the base currency to targetCode.
// A nil table knows no currencies.
func Convert(amountInBase decimal.Decimal, targetCode string, table *RateTable) (decimal.Decimal, error) {
	rate, ok := table.Rate(targetCode)
	if !ok {
		return decimal.Zero, &UnknownCurrencyError{Code: targetCode}
	}
	return amountInBase.Mul(rate), nil
}
