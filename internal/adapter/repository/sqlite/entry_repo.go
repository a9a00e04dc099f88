package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/usecase"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const (
	insertEntry = `INSERT INTO entries (id, variant, title, amount, category, entry_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	updateEntry = `UPDATE entries
SET title = ?, amount = ?, category = ?, entry_date = ?, updated_at = ?
WHERE id = ?`

	deleteEntry = `DELETE FROM entries WHERE id = ?`

	deleteEntriesByVariant = `DELETE FROM entries WHERE variant = ?`

	selectEntry = `SELECT id, variant, title, amount, category, entry_date, created_at, updated_at
FROM entries WHERE id = ?`

	selectEntriesByVariant = `SELECT id, variant, title, amount, category, entry_date, created_at, updated_at
FROM entries WHERE variant = ? ORDER BY rowid`
)

// EntryRepository implements usecase.EntryRepository on SQLite.
type EntryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Insert creates a new entry.
func (r *EntryRepository) Insert(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	sqlTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	_, err = sqlTx.ExecContext(ctx, insertEntry,
		entry.ID,
		string(entry.Variant),
		entry.Title,
		entry.Amount.String(),
		entry.Category,
		formatTime(entry.Date),
		formatTime(entry.CreatedAt),
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of an entry.
func (r *EntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	sqlTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	res, err := sqlTx.ExecContext(ctx, updateEntry,
		entry.Title,
		entry.Amount.String(),
		entry.Category,
		formatTime(entry.Date),
		formatTime(entry.UpdatedAt),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	return requireAffected(res, entry.ID)
}

// Delete removes one entry.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	sqlTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	res, err := sqlTx.ExecContext(ctx, deleteEntry, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	return requireAffected(res, id)
}

// DeleteByVariant removes every entry of one variant.
func (r *EntryRepository) DeleteByVariant(ctx context.Context, tx usecase.Transaction, variant domain.Variant) (int64, error) {
	sqlTx, err := unwrapTx(tx)
	if err != nil {
		return 0, err
	}

	res, err := sqlTx.ExecContext(ctx, deleteEntriesByVariant, string(variant))
	if err != nil {
		return 0, fmt.Errorf("delete entries: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	entry, err := scanEntry(r.db.QueryRowContext(ctx, selectEntry, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// ListByVariant returns all entries of one variant in insertion order.
func (r *EntryRepository) ListByVariant(ctx context.Context, variant domain.Variant) ([]*domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, selectEntriesByVariant, string(variant))
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*domain.Entry, error) {
	var (
		e                               domain.Entry
		variant, amount                 string
		entryDate, createdAt, updatedAt string
	)

	if err := s.Scan(&e.ID, &variant, &e.Title, &amount, &e.Category, &entryDate, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	e.Variant = domain.Variant(variant)
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if e.Date, err = parseTime(entryDate); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &e, nil
}

func unwrapTx(tx usecase.Transaction) (*sql.Tx, error) {
	t, ok := tx.(*Tx)
	if !ok {
		return nil, fmt.Errorf("sqlite: unexpected transaction type %T", tx)
	}
	return t.SQLTx(), nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
