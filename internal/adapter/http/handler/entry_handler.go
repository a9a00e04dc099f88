package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/expensetracker/internal/adapter/http/dto"
	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/usecase"
)

// EntryService is the subset of the entry store the handler needs.
type EntryService interface {
	Add(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error)
	Get(ctx context.Context, id string) (*domain.Entry, error)
	Update(ctx context.Context, id string, input usecase.UpdateEntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context, variant domain.Variant) (int64, error)
	ListAll(ctx context.Context, variant domain.Variant) ([]*domain.Entry, error)
}

// EntryHandler handles expense and income HTTP requests.
type EntryHandler struct {
	entryUC EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Create handles POST /api/v1/{expenses|incomes}.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	variant, ok := variantParam(w, r)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.entryUC.Add(r.Context(), req.ToUseCaseInput(variant))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// List handles GET /api/v1/{expenses|incomes}.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	variant, ok := variantParam(w, r)
	if !ok {
		return
	}

	entries, err := h.entryUC.ListAll(r.Context(), variant)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Clear handles DELETE /api/v1/{expenses|incomes}?confirm=true.
func (h *EntryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	variant, ok := variantParam(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "confirmation required", "pass confirm=true to remove every entry")
		return
	}

	removed, err := h.entryUC.ClearAll(r.Context(), variant)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClearResponse{Type: string(variant), Removed: removed})
}

// Get handles GET /api/v1/entries/{id}.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.entryUC.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Update handles PATCH /api/v1/entries/{id}.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Empty() {
		writeError(w, http.StatusBadRequest, "empty update", "at least one field is required")
		return
	}

	entry, err := h.entryUC.Update(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Delete handles DELETE /api/v1/entries/{id}.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.entryUC.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func variantParam(w http.ResponseWriter, r *http.Request) (domain.Variant, bool) {
	variant, err := domain.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		writeDomainError(w, err)
		return "", false
	}
	return variant, true
}
