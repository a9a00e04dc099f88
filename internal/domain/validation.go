package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxTitleLength    = 255
	MaxCategoryLength = 100
	MaxEntryAmount    = "1000000000000" // 1 trillion

	// MaxAmountScale is the number of decimal places an amount may carry.
	MaxAmountScale = 4
)

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateTitle validates an entry title.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	if len(title) > MaxTitleLength {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("exceeds %d characters", MaxTitleLength)}
	}

	return nil
}

// ValidateAmount validates an entry amount. Zero and negative amounts are rejected.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return &ValidationError{Field: "amount", Reason: "maximum amount is " + MaxEntryAmount}
	}

	if !amount.Equal(amount.Truncate(MaxAmountScale)) {
		return &ValidationError{Field: "amount", Reason: fmt.Sprintf("at most %d decimal places", MaxAmountScale)}
	}

	return nil
}

// ValidateDate rejects zero dates and dates after now.
func ValidateDate(date, now time.Time) error {
	if date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be set"}
	}

	if date.After(now) {
		return &ValidationError{Field: "date", Reason: "must not be in the future"}
	}

	return nil
}

// ValidateCategory validates an expense category.
func ValidateCategory(category string) error {
	category = strings.TrimSpace(category)

	if category == "" {
		return &ValidationError{Field: "category", Reason: "required for expenses"}
	}

	if len(category) > MaxCategoryLength {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("exceeds %d characters", MaxCategoryLength)}
	}

	return nil
}

// NormalizeCurrencyCode upper-cases and trims a currency code, returning false if it
// is not a three-letter code.
func NormalizeCurrencyCode(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	return code, currencyCodeRegex.MatchString(code)
}
