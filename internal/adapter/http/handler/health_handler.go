package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

// Ping calls f.
func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Dependency is a named backing service checked by readiness.
type Dependency struct {
	Name   string
	Pinger Pinger
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps    []Dependency
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. Dependencies with a nil
// Pinger are skipped.
func NewHealthHandler(deps ...Dependency) *HealthHandler {
	active := make([]Dependency, 0, len(deps))
	for _, d := range deps {
		if d.Pinger != nil {
			active = append(active, d)
		}
	}
	return &HealthHandler{deps: active, timeout: 5 * time.Second}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := map[string]string{"status": "ready"}
	for _, d := range h.deps {
		if err := d.Pinger.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, d.Name+" unhealthy", err.Error())
			return
		}
		status[d.Name] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}
