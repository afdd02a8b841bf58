package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxBeginner starts transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// Transactor runs progress writes in a transaction with fixed options.
type Transactor struct {
	db   TxBeginner
	opts pgx.TxOptions
}

// NewTransactor creates a Transactor using read-committed isolation, which is
// enough for single-row upserts.
func NewTransactor(db TxBeginner) *Transactor {
	return &Transactor{db: db, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// WithinTx runs fn inside a transaction, committing only when fn succeeds.
// A failed fn or commit rolls back and leaves the previous record in place.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := t.db.BeginTx(ctx, t.opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
