// Package uow selects how a multi-step write (status flip plus attendance
// reconciliation) executes: inside one database transaction, or as plain
// sequential statements for deployments whose pooler cannot hold a
// transaction across statements.
package uow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type ctxKey struct{}

// Runner executes fn as one unit of work. The transactional implementation
// aborts every write when fn fails; the sequential one leaves prior writes
// in place and relies on the callers' conditional updates for safety.
type Runner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// QuerierFrom resolves the querier for the current unit of work: the open
// transaction if there is one, otherwise the shared pool.
func QuerierFrom(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(ctxKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}

// TxRunner wraps each unit of work in a database transaction.
type TxRunner struct {
	db *database.DB
}

func NewTxRunner(db *database.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, ctxKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// SequentialRunner executes fn directly against the pool. A crash between
// the status flip and the attendance write can leave an approved request
// whose attendance effect was never applied; reconciliation is idempotent,
// so re-running the approval effect repairs it.
type SequentialRunner struct{}

func NewSequentialRunner() *SequentialRunner {
	return &SequentialRunner{}
}

func (r *SequentialRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Select picks the runner once at startup. mode is "on", "off" or "auto";
// auto probes the database with a throwaway transaction.
func Select(ctx context.Context, db *database.DB, mode string, logger *slog.Logger) Runner {
	switch mode {
	case "on":
		return NewTxRunner(db)
	case "off":
		logger.Warn("atomic approval disabled; approvals run sequentially")
		return NewSequentialRunner()
	}

	tx, err := db.BeginTx(ctx)
	if err != nil {
		logger.Warn("transaction probe failed; approvals run sequentially", slog.Any("error", err))
		return NewSequentialRunner()
	}
	_ = tx.Rollback(ctx)

	return NewTxRunner(db)
}
