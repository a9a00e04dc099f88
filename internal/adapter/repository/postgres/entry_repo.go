package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/infrastructure/postgres/generated"
	"github.com/iho/expensetracker/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return newEntryRepository(pool)
}

func newEntryRepository(db generated.DBTX) *EntryRepository {
	return &EntryRepository{queries: generated.New(db)}
}

// Insert creates a new entry.
func (r *EntryRepository) Insert(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	queries, err := r.withTx(tx)
	if err != nil {
		return err
	}

	return queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:        entry.ID,
		Variant:   string(entry.Variant),
		Title:     entry.Title,
		Amount:    decimalToNumeric(entry.Amount),
		Category:  entry.Category,
		EntryDate: timeToPgTimestamptz(entry.Date),
		CreatedAt: timeToPgTimestamptz(entry.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(entry.UpdatedAt),
	})
}

// Update overwrites the mutable fields of an entry.
func (r *EntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	queries, err := r.withTx(tx)
	if err != nil {
		return err
	}

	n, err := queries.UpdateEntry(ctx, generated.UpdateEntryParams{
		ID:        entry.ID,
		Title:     entry.Title,
		Amount:    decimalToNumeric(entry.Amount),
		Category:  entry.Category,
		EntryDate: timeToPgTimestamptz(entry.Date),
		UpdatedAt: timeToPgTimestamptz(entry.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{ID: entry.ID}
	}

	return nil
}

// Delete removes one entry.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	queries, err := r.withTx(tx)
	if err != nil {
		return err
	}

	n, err := queries.DeleteEntry(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{ID: id}
	}

	return nil
}

// DeleteByVariant removes every entry of one variant.
func (r *EntryRepository) DeleteByVariant(ctx context.Context, tx usecase.Transaction, variant domain.Variant) (int64, error) {
	queries, err := r.withTx(tx)
	if err != nil {
		return 0, err
	}

	return queries.DeleteEntriesByVariant(ctx, string(variant))
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row, err := r.queries.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, err
	}

	return rowToEntry(row), nil
}

// ListByVariant returns all entries of one variant in insertion order.
func (r *EntryRepository) ListByVariant(ctx context.Context, variant domain.Variant) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntriesByVariant(ctx, string(variant))
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries, nil
}

func (r *EntryRepository) withTx(tx usecase.Transaction) (*generated.Queries, error) {
	pgTx, ok := tx.(*Tx)
	if !ok {
		return nil, fmt.Errorf("postgres: unexpected transaction type %T", tx)
	}
	return r.queries.WithTx(pgTx.PgxTx()), nil
}

func rowToEntry(row generated.Entry) *domain.Entry {
	return &domain.Entry{
		ID:        row.ID,
		Variant:   domain.Variant(row.Variant),
		Title:     row.Title,
		Amount:    numericToDecimal(row.Amount),
		Category:  row.Category,
		Date:      row.EntryDate.Time.UTC(),
		CreatedAt: row.CreatedAt.Time.UTC(),
		UpdatedAt: row.UpdatedAt.Time.UTC(),
	}
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
