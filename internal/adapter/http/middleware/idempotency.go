package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/expensetracker/internal/infrastructure/metrics"
	"github.com/iho/expensetracker/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	defaultIdempotencyTTL = 24 * time.Hour
	pendingMarker         = "processing"
	releaseTimeout        = 2 * time.Second
)

// IdempotencyMiddleware replays the response of a mutating request that was
// already answered under the same Idempotency-Key.
type IdempotencyMiddleware struct {
	store   usecase.IdempotencyStore
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{
		store:  store,
		ttl:    defaultIdempotencyTTL,
		logger: zerolog.Nop(),
	}
}

// WithTTL sets how long responses are kept.
func (m *IdempotencyMiddleware) WithTTL(ttl time.Duration) *IdempotencyMiddleware {
	if ttl > 0 {
		m.ttl = ttl
	}
	return m
}

// WithMetrics counts replays on mtr.
func (m *IdempotencyMiddleware) WithMetrics(mtr *metrics.Metrics) *IdempotencyMiddleware {
	m.metrics = mtr
	return m
}

// WithLogger sets the logger.
func (m *IdempotencyMiddleware) WithLogger(logger zerolog.Logger) *IdempotencyMiddleware {
	m.logger = logger
	return m
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		// a key only identifies a request together with the route it was sent to
		storeKey := r.Method + " " + r.URL.Path + " " + key

		exists, cachedResponse, err := m.store.CheckAndSet(r.Context(), storeKey, nil, m.ttl)
		if err != nil {
			m.logger.Error().Err(err).Str("key", key).Msg("idempotency check failed")
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if exists {
			if cachedResponse == nil || string(cachedResponse) == pendingMarker {
				http.Error(w, "request with this idempotency key is in progress", http.StatusConflict)
				return
			}

			var stored storedResponse
			if err := json.Unmarshal(cachedResponse, &stored); err != nil {
				m.logger.Error().Err(err).Str("key", key).Msg("malformed idempotent response")
				http.Error(w, "idempotency check failed", http.StatusInternalServerError)
				return
			}

			if m.metrics != nil {
				m.metrics.IdempotentReplays.Inc()
			}
			stored.replay(w)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		// the handler has already answered; store failures only cost a future replay
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), releaseTimeout)
		defer cancel()

		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			payload, err := json.Marshal(storedResponse{
				Status:      recorder.statusCode,
				ContentType: recorder.Header().Get("Content-Type"),
				Body:        recorder.body.Bytes(),
			})
			if err == nil {
				err = m.store.Update(ctx, storeKey, payload, m.ttl)
			}
			if err != nil {
				m.logger.Warn().Err(err).Str("key", key).Msg("failed to store idempotent response")
			}
			return
		}

		if err := m.store.Release(ctx, storeKey); err != nil {
			m.logger.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
		}
	})
}

// storedResponse is what a completed request leaves behind for replays.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

func (s storedResponse) replay(w http.ResponseWriter) {
	if s.ContentType != "" {
		w.Header().Set("Content-Type", s.ContentType)
	}
	w.Header().Set(IdempotencyReplayHeader, "true")
	w.WriteHeader(s.Status)
	if len(s.Body) > 0 {
		w.Write(s.Body)
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
