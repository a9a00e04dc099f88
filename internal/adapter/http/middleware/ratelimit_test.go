package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/expensetracker/internal/infrastructure/metrics"
)

func TestRateLimiter_PerIP(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	rl := NewRateLimiter(1, 1).WithMetrics(m)

	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send("10.0.0.1:1000"); code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := send("10.0.0.1:2000"); code != http.StatusTooManyRequests {
		t.Fatalf("expected same host on another port to be throttled, got %d", code)
	}
	if code := send("10.0.0.2:1000"); code != http.StatusOK {
		t.Fatalf("expected other host to pass, got %d", code)
	}

	if got := testutil.ToFloat64(m.RateLimitHits); got != 1 {
		t.Fatalf("expected one rate limit hit, got %v", got)
	}
}

func TestGetIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	if got := getIP(req); got != "192.0.2.1" {
		t.Fatalf("expected host without port, got %q", got)
	}

	req.Header.Set("X-Real-IP", "198.51.100.7")
	if got := getIP(req); got != "198.51.100.7" {
		t.Fatalf("expected X-Real-IP, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := getIP(req); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded address, got %q", got)
	}
}

func TestRateLimiter_CleanupLimiters(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(10, 10)
	rl.now = func() time.Time { return now }

	rl.getLimiter("old")
	now = now.Add(2 * time.Hour)
	rl.getLimiter("fresh")

	if removed := rl.CleanupLimiters(time.Hour); removed != 1 {
		t.Fatalf("expected one stale limiter removed, got %d", removed)
	}
	if _, ok := rl.visitors["fresh"]; !ok {
		t.Fatal("expected fresh limiter to be kept")
	}
}
