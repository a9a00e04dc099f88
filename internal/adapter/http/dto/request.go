package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/usecase"
)

// CreateEntryRequest represents a request to record an expense or an income.
// Category is ignored for incomes.
type CreateEntryRequest struct {
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Date     *time.Time      `json:"date,omitempty"`
	Category string          `json:"category,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput(variant domain.Variant) usecase.AddEntryInput {
	return usecase.AddEntryInput{
		Variant:  variant,
		Title:    r.Title,
		Amount:   r.Amount,
		Date:     r.Date,
		Category: r.Category,
	}
}

// UpdateEntryRequest represents a partial update of an entry.
type UpdateEntryRequest struct {
	Title    *string          `json:"title,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Date     *time.Time       `json:"date,omitempty"`
	Category *string          `json:"category,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateEntryRequest) ToUseCaseInput() usecase.UpdateEntryInput {
	return usecase.UpdateEntryInput{
		Title:    r.Title,
		Amount:   r.Amount,
		Date:     r.Date,
		Category: r.Category,
	}
}

// Empty reports whether the request changes nothing.
func (r *UpdateEntryRequest) Empty() bool {
	return r.Title == nil && r.Amount == nil && r.Date == nil && r.Category == nil
}
