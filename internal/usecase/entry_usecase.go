package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
)

// EntryUseCase is the entry store: it validates, persists and lists entries.
// All mutations go through one mutex so readers never see a half-applied change.
type EntryUseCase struct {
	mu        sync.Mutex
	txManager TransactionManager
	entryRepo EntryRepository
	idGen     IDGenerator
	retrier   Retrier
	metrics   MetricsRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(txManager TransactionManager, entryRepo EntryRepository, idGen IDGenerator, retrier Retrier) *EntryUseCase {
	return &EntryUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		idGen:     idGen,
		retrier:   retrier,
		metrics:   noopMetrics{},
		logger:    zerolog.Nop(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithMetrics sets the recorder for mutation counters.
func (uc *EntryUseCase) WithMetrics(m MetricsRecorder) *EntryUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// WithLogger sets the logger.
func (uc *EntryUseCase) WithLogger(logger zerolog.Logger) *EntryUseCase {
	uc.logger = logger.With().Str("component", "entry_store").Logger()
	return uc
}

// WithClock overrides the time source used for timestamps and date validation.
func (uc *EntryUseCase) WithClock(now func() time.Time) *EntryUseCase {
	uc.now = now
	return uc
}

// AddEntryInput represents input for recording an entry.
type AddEntryInput struct {
	Date     *time.Time
	Variant  domain.Variant
	Title    string
	Category string
	Amount   decimal.Decimal
}

// UpdateEntryInput carries the fields to change; nil fields are left untouched.
type UpdateEntryInput struct {
	Date     *time.Time
	Title    *string
	Category *string
	Amount   *decimal.Decimal
}

// Add validates and persists a new entry and returns it with its assigned ID.
func (uc *EntryUseCase) Add(ctx context.Context, input AddEntryInput) (*domain.Entry, error) {
	now := uc.clock()

	date := now
	if input.Date != nil {
		date = storedTime(*input.Date)
	}

	entry := &domain.Entry{
		Variant:  input.Variant,
		Title:    input.Title,
		Amount:   input.Amount,
		Date:     date,
		Category: input.Category,
	}
	entry.Normalize()

	if err := entry.Validate(now); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	entry.ID = uc.idGen.Generate()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	err := uc.inTx(ctx, func(tx Transaction) error {
		return uc.entryRepo.Insert(ctx, tx, entry)
	})
	uc.metrics.EntryMutation(entry.Variant, OpAdd, err)
	if err != nil {
		return nil, uc.persistenceError(OpAdd, entry.ID, err)
	}

	uc.logger.Debug().Str("id", entry.ID).Str("variant", string(entry.Variant)).Msg("entry added")

	return entry, nil
}

// Get retrieves a single entry.
func (uc *EntryUseCase) Get(ctx context.Context, id string) (*domain.Entry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.persistenceError("get", id, err)
	}
	return entry, nil
}

// Update applies the given fields to an existing entry. The variant never changes.
func (uc *EntryUseCase) Update(ctx context.Context, id string, input UpdateEntryInput) (*domain.Entry, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	existing, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.persistenceError(OpUpdate, id, err)
	}

	updated := existing.Clone()
	if input.Title != nil {
		updated.Title = *input.Title
	}
	if input.Amount != nil {
		updated.Amount = *input.Amount
	}
	if input.Date != nil {
		updated.Date = storedTime(*input.Date)
	}
	if input.Category != nil {
		updated.Category = *input.Category
	}
	updated.Normalize()

	now := uc.clock()
	if err := updated.Validate(now); err != nil {
		return nil, err
	}
	updated.UpdatedAt = now

	err = uc.inTx(ctx, func(tx Transaction) error {
		return uc.entryRepo.Update(ctx, tx, updated)
	})
	uc.metrics.EntryMutation(updated.Variant, OpUpdate, err)
	if err != nil {
		return nil, uc.persistenceError(OpUpdate, id, err)
	}

	return updated, nil
}

// Delete removes a single entry. Unknown ids fail with *domain.NotFoundError.
func (uc *EntryUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	existing, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return uc.persistenceError(OpDelete, id, err)
	}

	err = uc.inTx(ctx, func(tx Transaction) error {
		return uc.entryRepo.Delete(ctx, tx, id)
	})
	uc.metrics.EntryMutation(existing.Variant, OpDelete, err)
	if err != nil {
		return uc.persistenceError(OpDelete, id, err)
	}

	return nil
}

// ClearAll removes every entry of one variant and returns how many were removed.
// The caller is responsible for having obtained confirmation.
func (uc *EntryUseCase) ClearAll(ctx context.Context, variant domain.Variant) (int64, error) {
	if !variant.Valid() {
		return 0, &domain.ValidationError{Field: "variant", Reason: domain.ErrInvalidVariant.Error()}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	var removed int64
	err := uc.inTx(ctx, func(tx Transaction) error {
		n, err := uc.entryRepo.DeleteByVariant(ctx, tx, variant)
		removed = n
		return err
	})
	uc.metrics.EntryMutation(variant, OpClear, err)
	if err != nil {
		return 0, uc.persistenceError(OpClear, "", err)
	}

	uc.logger.Info().Str("variant", string(variant)).Int64("removed", removed).Msg("entries cleared")

	return removed, nil
}

// ListAll returns a snapshot of every entry of one variant.
func (uc *EntryUseCase) ListAll(ctx context.Context, variant domain.Variant) ([]*domain.Entry, error) {
	if !variant.Valid() {
		return nil, &domain.ValidationError{Field: "variant", Reason: domain.ErrInvalidVariant.Error()}
	}

	entries, err := uc.entryRepo.ListByVariant(ctx, variant)
	if err != nil {
		return nil, uc.persistenceError("list", "", err)
	}
	if entries == nil {
		entries = []*domain.Entry{}
	}

	return entries, nil
}

// clock returns the current time at storage precision.
func (uc *EntryUseCase) clock() time.Time {
	return storedTime(uc.now())
}

// storedTime normalizes t to UTC at TimestampPrecision so that every backend
// returns exactly what was written.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(TimestampPrecision)
}

// inTx runs fn inside one transaction, retrying the whole transaction on transient errors.
func (uc *EntryUseCase) inTx(ctx context.Context, fn func(tx Transaction) error) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	return uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := fn(tx); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

// persistenceError maps repository errors onto the domain error taxonomy.
func (uc *EntryUseCase) persistenceError(op, id string, err error) error {
	var nf *domain.NotFoundError
	switch {
	case errors.As(err, &nf):
		return nf
	case errors.Is(err, domain.ErrNotFound):
		return &domain.NotFoundError{ID: id}
	case errors.Is(err, domain.ErrPersistence):
		return err
	}

	uc.logger.Error().Err(err).Str("op", op).Str("id", id).Msg("storage operation failed")

	return &domain.PersistenceError{Op: op, Err: err}
}
