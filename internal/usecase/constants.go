package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single mutation transaction.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultRefreshTimeout bounds one shared rate fetch.
	DefaultRefreshTimeout = 30 * time.Second

	// TimestampPrecision is the resolution entry times are stored at.
	TimestampPrecision = time.Microsecond

	// MaxTopSpendingCount caps the ranking size a caller may request.
	MaxTopSpendingCount = 100
)

// Operation names reported to MetricsRecorder.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
	OpClear  = "clear"
)
