package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/expensetracker/internal/usecase"
)

// entryTxOptions runs every entry mutation serializably. Conflicts surface as
// SQLSTATE 40001, which IsRetryableError hands back to the retrier.
var entryTxOptions = pgx.TxOptions{IsoLevel: pgx.Serializable}

type txStarter interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// TxManager opens the transactions the entry store mutates through.
type TxManager struct {
	db txStarter
}

// NewTxManager creates a TxManager on pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManager(pool)
}

func newTxManager(db txStarter) *TxManager {
	return &TxManager{db: db}
}

// Begin opens a serializable transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.db.BeginTx(ctx, entryTxOptions)
	if err != nil {
		return nil, fmt.Errorf("begin entry transaction: %w", err)
	}

	return &Tx{tx: tx}, nil
}

// Tx is one entry-store transaction. The repository reaches the pgx handle via PgxTx.
type Tx struct {
	tx pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit entry transaction: %w", err)
	}
	return nil
}

// Rollback discards the transaction. It is always deferred after Begin, so a
// transaction that already committed is not an error.
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback entry transaction: %w", err)
	}
	return nil
}

func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}
