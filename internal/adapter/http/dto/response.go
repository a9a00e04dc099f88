package dto

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
)

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category,omitempty"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// EntryFromDomain converts a domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:        e.ID,
		Type:      string(e.Variant),
		Title:     e.Title,
		Amount:    e.Amount,
		Category:  e.Category,
		Date:      e.Date,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// EntryListResponse is a whole collection with its total.
type EntryListResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   decimal.Decimal  `json:"total"`
	Count   int              `json:"count"`
}

// EntriesFromDomain converts an entry collection to response.
func EntriesFromDomain(entries []*domain.Entry) *EntryListResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return &EntryListResponse{
		Entries: result,
		Total:   domain.TotalAmount(entries),
		Count:   len(entries),
	}
}

// ClearResponse reports how many entries a clear removed.
type ClearResponse struct {
	Type    string `json:"type"`
	Removed int64  `json:"removed"`
}

// SummaryResponse represents the headline totals.
type SummaryResponse struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalSpending decimal.Decimal `json:"total_spending"`
	NetSavings    decimal.Decimal `json:"net_savings"`
	Currency      string          `json:"currency,omitempty"`
}

// SummaryFromDomain converts totals to response.
func SummaryFromDomain(s domain.Summary, currency string) *SummaryResponse {
	return &SummaryResponse{
		TotalIncome:   s.TotalIncome,
		TotalSpending: s.TotalSpending,
		NetSavings:    s.NetSavings,
		Currency:      currency,
	}
}

// SpendingItemResponse is one row of the top-spending ranking.
type SpendingItemResponse struct {
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
}

// InsightResponse represents the spending insight.
type InsightResponse struct {
	Top           []SpendingItemResponse `json:"top"`
	TotalSpending decimal.Decimal        `json:"total_spending"`
	Feedback      string                 `json:"feedback"`
	Message       string                 `json:"message"`
	Report        string                 `json:"report"`
}

// InsightFromDomain converts an insight to response.
func InsightFromDomain(i domain.Insight) *InsightResponse {
	top := make([]SpendingItemResponse, len(i.Top))
	for n, item := range i.Top {
		top[n] = SpendingItemResponse{Title: item.Title, Amount: item.Amount}
	}
	return &InsightResponse{
		Top:           top,
		TotalSpending: i.TotalSpending,
		Feedback:      string(i.Level),
		Message:       i.Message(),
		Report:        i.Text(),
	}
}

// CategoryTotalResponse is the spending under one category.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

// CategoriesFromDomain converts category totals to response.
func CategoriesFromDomain(totals []domain.CategoryTotal) []CategoryTotalResponse {
	result := make([]CategoryTotalResponse, len(totals))
	for i, t := range totals {
		result[i] = CategoryTotalResponse{Category: t.Category, Amount: t.Amount, Count: t.Count}
	}
	return result
}

// RateResponse is one currency of the rate table.
type RateResponse struct {
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
}

// RateTableResponse represents the rate table in use.
type RateTableResponse struct {
	Base      string         `json:"base"`
	FetchedAt time.Time      `json:"fetched_at"`
	Rates     []RateResponse `json:"rates"`
}

// RateTableFromDomain converts a rate table to response, sorted by currency code.
func RateTableFromDomain(t *domain.RateTable) *RateTableResponse {
	rates := make([]RateResponse, 0, len(t.Rates))
	for code, rate := range t.Rates {
		rates = append(rates, RateResponse{Currency: code, Rate: rate})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Currency < rates[j].Currency })

	return &RateTableResponse{
		Base:      t.Base,
		FetchedAt: t.FetchedAt,
		Rates:     rates,
	}
}

// ConvertResponse represents a single conversion.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Converted decimal.Decimal `json:"converted"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
