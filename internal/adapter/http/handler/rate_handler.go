package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/adapter/http/dto"
	"github.com/iho/expensetracker/internal/domain"
)

// RateService exposes the exchange-rate table.
type RateService interface {
	Refresh(ctx context.Context) (*domain.RateTable, error)
	Current() *domain.RateTable
	Convert(amount decimal.Decimal, code string) (decimal.Decimal, error)
}

// RateHandler handles exchange-rate HTTP requests.
type RateHandler struct {
	rateUC RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateUC RateService) *RateHandler {
	return &RateHandler{rateUC: rateUC}
}

// Show handles GET /api/v1/rates.
func (h *RateHandler) Show(w http.ResponseWriter, r *http.Request) {
	table := h.rateUC.Current()
	if table == nil {
		writeError(w, http.StatusServiceUnavailable, "rates unavailable", "no rate table loaded yet")
		return
	}

	writeJSON(w, http.StatusOK, dto.RateTableFromDomain(table))
}

// Refresh handles POST /api/v1/rates/refresh.
func (h *RateHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	table, err := h.rateUC.Refresh(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RateTableFromDomain(table))
}

// Convert handles GET /api/v1/convert?amount=&currency=.
func (h *RateHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}
	code, ok := domain.NormalizeCurrencyCode(q.Get("currency"))
	if !ok {
		writeDomainError(w, &domain.UnknownCurrencyError{Code: q.Get("currency")})
		return
	}

	converted, err := h.rateUC.Convert(amount, code)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConvertResponse{
		Amount:    amount,
		Currency:  code,
		Converted: converted,
	})
}
