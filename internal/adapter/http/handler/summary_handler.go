package handler

import (
	"context"
	"net/http"

	"github.com/iho/expensetracker/internal/adapter/http/dto"
	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/usecase"
)

// SummaryService computes totals and insights.
type SummaryService interface {
	Summary(ctx context.Context, currency string) (*usecase.SummaryResult, error)
	Insights(ctx context.Context, n int) (domain.Insight, error)
	Categories(ctx context.Context) ([]domain.CategoryTotal, error)
}

// SummaryHandler handles summary and insight HTTP requests.
type SummaryHandler struct {
	summaryUC SummaryService
	topCount  int
}

// NewSummaryHandler creates a new SummaryHandler. topCount is the ranking size
// used when a request does not pass ?top=.
func NewSummaryHandler(summaryUC SummaryService, topCount int) *SummaryHandler {
	if topCount <= 0 {
		topCount = domain.DefaultTopSpendingCount
	}
	return &SummaryHandler{summaryUC: summaryUC, topCount: topCount}
}

// Summary handles GET /api/v1/summary.
func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.summaryUC.Summary(r.Context(), r.URL.Query().Get("currency"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(result.Summary, result.Currency))
}

// Insights handles GET /api/v1/insights.
func (h *SummaryHandler) Insights(w http.ResponseWriter, r *http.Request) {
	n, err := parseIntQuery(r, "top", h.topCount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	insight, err := h.summaryUC.Insights(r.Context(), n)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InsightFromDomain(insight))
}

// Categories handles GET /api/v1/categories.
func (h *SummaryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	totals, err := h.summaryUC.Categories(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(totals))
}
