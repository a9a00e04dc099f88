package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/adapter/http/dto"
	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/usecase"
)

type entryServiceStub struct {
	addFn      func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error)
	getFn      func(ctx context.Context, id string) (*domain.Entry, error)
	updateFn   func(ctx context.Context, id string, input usecase.UpdateEntryInput) (*domain.Entry, error)
	deleteFn   func(ctx context.Context, id string) error
	clearAllFn func(ctx context.Context, variant domain.Variant) (int64, error)
	listAllFn  func(ctx context.Context, variant domain.Variant) ([]*domain.Entry, error)
}

func (s *entryServiceStub) Add(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
	return s.addFn(ctx, input)
}

func (s *entryServiceStub) Get(ctx context.Context, id string) (*domain.Entry, error) {
	return s.getFn(ctx, id)
}

func (s *entryServiceStub) Update(ctx context.Context, id string, input usecase.UpdateEntryInput) (*domain.Entry, error) {
	return s.updateFn(ctx, id, input)
}

func (s *entryServiceStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *entryServiceStub) ClearAll(ctx context.Context, variant domain.Variant) (int64, error) {
	return s.clearAllFn(ctx, variant)
}

func (s *entryServiceStub) ListAll(ctx context.Context, variant domain.Variant) ([]*domain.Entry, error) {
	return s.listAllFn(ctx, variant)
}

func withURLParams(req *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func sampleEntry() *domain.Entry {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Entry{
		ID:        "01HVENTRY",
		Variant:   domain.VariantExpense,
		Title:     "Groceries",
		Amount:    decimal.RequireFromString("42.10"),
		Category:  "food",
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestEntryHandler_Create_Success(t *testing.T) {
	var captured usecase.AddEntryInput
	handler := NewEntryHandler(&entryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
			captured = input
			return sampleEntry(), nil
		},
	})

	body, _ := json.Marshal(dto.CreateEntryRequest{
		Title:    "Groceries",
		Amount:   decimal.RequireFromString("42.10"),
		Category: "food",
	})

	req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/expenses", bytes.NewReader(body)), "variant", "expenses")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Variant != domain.VariantExpense || captured.Title != "Groceries" || captured.Category != "food" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "01HVENTRY" || resp.Type != "expense" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestEntryHandler_Create_IncomeVariant(t *testing.T) {
	var captured domain.Variant
	handler := NewEntryHandler(&entryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
			captured = input.Variant
			e := sampleEntry()
			e.Variant = domain.VariantIncome
			e.Category = ""
			return e, nil
		},
	})

	req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/incomes",
		strings.NewReader(`{"title":"Salary","amount":1000}`)), "variant", "incomes")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if captured != domain.VariantIncome {
		t.Fatalf("expected income variant, got %q", captured)
	}
}

func TestEntryHandler_Create_InvalidBody(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{})

	req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/expenses", strings.NewReader("{")), "variant", "expenses")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Create_ValidationError(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
			return nil, &domain.ValidationError{Field: "amount", Reason: "must be greater than zero"}
		},
	})

	req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/expenses",
		strings.NewReader(`{"title":"x","amount":0,"category":"misc"}`)), "variant", "expenses")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Field != "amount" {
		t.Fatalf("expected field amount, got %+v", resp)
	}
}

func TestEntryHandler_UnknownVariant(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/transfers", nil), "variant", "transfers")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_List(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		listAllFn: func(ctx context.Context, variant domain.Variant) ([]*domain.Entry, error) {
			if variant != domain.VariantExpense {
				t.Fatalf("unexpected variant %q", variant)
			}
			return []*domain.Entry{sampleEntry()}, nil
		},
	})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil), "variant", "expenses")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.EntryListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || !resp.Total.Equal(decimal.RequireFromString("42.10")) {
		t.Fatalf("unexpected list: %+v", resp)
	}
}

func TestEntryHandler_Clear(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		handler := NewEntryHandler(&entryServiceStub{
			clearAllFn: func(ctx context.Context, variant domain.Variant) (int64, error) {
				t.Fatal("clear must not run without confirmation")
				return 0, nil
			},
		})

		req := withURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/incomes", nil), "variant", "incomes")
		rec := httptest.NewRecorder()

		handler.Clear(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		handler := NewEntryHandler(&entryServiceStub{
			clearAllFn: func(ctx context.Context, variant domain.Variant) (int64, error) {
				return 3, nil
			},
		})

		req := withURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/incomes?confirm=true", nil), "variant", "incomes")
		rec := httptest.NewRecorder()

		handler.Clear(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp dto.ClearResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Removed != 3 || resp.Type != "income" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})
}

func TestEntryHandler_Get_NotFound(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Entry, error) {
			return nil, &domain.NotFoundError{ID: id}
		},
	})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/entries/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEntryHandler_Update(t *testing.T) {
	var capturedID string
	var captured usecase.UpdateEntryInput
	handler := NewEntryHandler(&entryServiceStub{
		updateFn: func(ctx context.Context, id string, input usecase.UpdateEntryInput) (*domain.Entry, error) {
			capturedID = id
			captured = input
			return sampleEntry(), nil
		},
	})

	req := withURLParams(httptest.NewRequest(http.MethodPatch, "/api/v1/entries/01HVENTRY",
		strings.NewReader(`{"title":"Supermarket"}`)), "id", "01HVENTRY")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedID != "01HVENTRY" || captured.Title == nil || *captured.Title != "Supermarket" {
		t.Fatalf("unexpected update call: %s %+v", capturedID, captured)
	}
	if captured.Amount != nil {
		t.Fatalf("expected amount to stay untouched")
	}
}

func TestEntryHandler_Update_EmptyBody(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{})

	req := withURLParams(httptest.NewRequest(http.MethodPatch, "/api/v1/entries/x", strings.NewReader(`{}`)), "id", "x")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Delete(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		deleteFn: func(ctx context.Context, id string) error {
			if id == "gone" {
				return &domain.NotFoundError{ID: id}
			}
			return nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Delete(rec, withURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/entries/ok", nil), "id", "ok"))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Delete(rec, withURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/entries/gone", nil), "id", "gone"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEntryHandler_PersistenceError(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		listAllFn: func(ctx context.Context, variant domain.Variant) ([]*domain.Entry, error) {
			return nil, &domain.PersistenceError{Op: "list", Err: errors.New("connection refused")}
		},
	})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil), "variant", "expenses")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("expected cause to be hidden, got %s", rec.Body.String())
	}
}
