package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
)

// EntryRepository defines data access for expense and income entries.
// Implementations return domain.ErrNotFound (possibly wrapped) for unknown ids.
type EntryRepository interface {
	Insert(ctx context.Context, tx Transaction, entry *domain.Entry) error
	Update(ctx context.Context, tx Transaction, entry *domain.Entry) error
	Delete(ctx context.Context, tx Transaction, id string) error
	DeleteByVariant(ctx context.Context, tx Transaction, variant domain.Variant) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	ListByVariant(ctx context.Context, variant domain.Variant) ([]*domain.Entry, error)
}

// EntryLister provides entry snapshots by variant.
type EntryLister interface {
	ListAll(ctx context.Context, variant domain.Variant) ([]*domain.Entry, error)
}

// AmountConverter converts base-unit amounts for display.
type AmountConverter interface {
	Convert(amount decimal.Decimal, code string) (decimal.Decimal, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// RateSource fetches a complete exchange-rate table from an external service.
type RateSource interface {
	FetchRates(ctx context.Context) (*domain.RateTable, error)
}

// RateCache keeps the last-known-good rate table across restarts.
// Load returns (nil, nil) when nothing is cached.
type RateCache interface {
	Load(ctx context.Context) (*domain.RateTable, error)
	Save(ctx context.Context, table *domain.RateTable) error
}

// MetricsRecorder receives counters from the use cases.
type MetricsRecorder interface {
	EntryMutation(variant domain.Variant, op string, err error)
	RateRefresh(err error, duration time.Duration)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release removes a key so a failed request can be retried.
	Release(ctx context.Context, key string) error
}

type noopMetrics struct{}

func (noopMetrics) EntryMutation(domain.Variant, string, error) {}

func (noopMetrics) RateRefresh(error, time.Duration) {}
