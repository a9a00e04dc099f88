package ratesource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/expensetracker/internal/domain"
)

func serve(t *testing.T, status int, body string) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, time.Second, zerolog.Nop())
}

func TestFetchRates_V4(t *testing.T) {
	c := serve(t, http.StatusOK, `{"base":"USD","date":"2026-05-01","time_last_updated":1777593600,"rates":{"USD":1,"EUR":0.9,"CAD":1.37}}`)

	table, err := c.FetchRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "USD", table.Base)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, time.Unix(1777593600, 0).UTC(), table.FetchedAt)

	got, err := domain.Convert(decimal.NewFromInt(100), "EUR", table)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(90).Equal(got))
}

func TestFetchRates_V6(t *testing.T) {
	c := serve(t, http.StatusOK, `{"result":"success","base_code":"CAD","conversion_rates":{"CAD":1,"USD":0.73}}`)

	table, err := c.FetchRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "CAD", table.Base)
	rate, ok := table.Rate("usd")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("0.73").Equal(rate))
}

func TestFetchRates_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"rates":{"EUR":0.9}}`},
		{"not json", http.StatusOK, `<html>`},
		{"missing rates", http.StatusOK, `{"base":"USD"}`},
		{"empty rates", http.StatusOK, `{"base":"USD","rates":{}}`},
		{"non-positive rate", http.StatusOK, `{"base":"USD","rates":{"EUR":0}}`},
		{"upstream error", http.StatusOK, `{"result":"error","error-type":"invalid-key"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := serve(t, tt.status, tt.body)

			_, err := c.FetchRates(context.Background())

			var ferr *domain.RateFetchError
			require.True(t, errors.As(err, &ferr), "expected RateFetchError, got %v", err)
		})
	}
}

func TestFetchRates_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, 100*time.Millisecond, zerolog.Nop())

	_, err := c.FetchRates(context.Background())
	assert.ErrorIs(t, err, domain.ErrRateFetch)
}
