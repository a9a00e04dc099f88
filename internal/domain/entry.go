package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Variant discriminates the two kinds of entry.
type Variant string

const (
	VariantExpense Variant = "expense"
	VariantIncome  Variant = "income"
)

// ParseVariant parses a variant name, accepting singular and plural forms.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense", "expenses":
		return VariantExpense, nil
	case "income", "incomes":
		return VariantIncome, nil
	default:
		return "", ErrInvalidVariant
	}
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == VariantExpense || v == VariantIncome
}

// Entry is a single recorded financial event, either an expense or an income.
// Category is only meaningful for expenses and is always empty for incomes.
type Entry struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Date      time.Time
	ID        string
	Variant   Variant
	Title     string
	Category  string
	Amount    decimal.Decimal
}

// NewExpense builds an unsaved expense entry.
func NewExpense(title string, amount decimal.Decimal, date time.Time, category string) *Entry {
	return &Entry{
		Variant:  VariantExpense,
		Title:    strings.TrimSpace(title),
		Amount:   amount,
		Date:     date,
		Category: strings.TrimSpace(category),
	}
}

// NewIncome builds an unsaved income entry.
func NewIncome(title string, amount decimal.Decimal, date time.Time) *Entry {
	return &Entry{
		Variant: VariantIncome,
		Title:   strings.TrimSpace(title),
		Amount:  amount,
		Date:    date,
	}
}

// IsExpense reports whether the entry belongs to the expense collection.
func (e *Entry) IsExpense() bool {
	return e.Variant == VariantExpense
}

// Normalize trims text fields and drops the category of incomes.
func (e *Entry) Normalize() {
	e.Title = strings.TrimSpace(e.Title)
	e.Category = strings.TrimSpace(e.Category)
	if e.Variant == VariantIncome {
		e.Category = ""
	}
}

// Validate checks the entry fields in order (title, amount, date, category)
// and returns a *ValidationError for the first one that fails.
func (e *Entry) Validate(now time.Time) error {
	if !e.Variant.Valid() {
		return &ValidationError{Field: "variant", Reason: ErrInvalidVariant.Error()}
	}
	if err := ValidateTitle(e.Title); err != nil {
		return err
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if err := ValidateDate(e.Date, now); err != nil {
		return err
	}
	if e.Variant == VariantExpense {
		if err := ValidateCategory(e.Category); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a copy that shares no state with e.
func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}
