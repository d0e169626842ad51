// Package simpletxmanager is the metrics-free counterpart of txmanager,
// used when the metrics subsystem is disabled in config.
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/pkg/dbmetrics"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/txmanager"
)

const (
	maxAttempts  = 3
	retryBackoff = 25 * time.Millisecond
)

// TransactionManager runs closures in serializable transactions over a bare
// *sql.DB.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager creates a manager over the given database.
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable executes fn inside a SERIALIZABLE transaction with bounded
// retry on serialization failures. Semantics match txmanager.DoSerializable.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !txmanager.IsSerializationFailure(err) {
			return err
		}

		lastErr = err
		select {
		case <-time.After(time.Duration(attempt) * retryBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("%w: %v", txmanager.ErrRetriesExhausted, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: %v", txmanager.ErrBeginTx, err)
	}

	wrapped := &dbmetrics.SqlTxWrapper{Tx: tx}
	txCtx := dbmetrics.WithTx(ctx, wrapped)

	if err := fn(txCtx); err != nil {
		_ = wrapped.Rollback()
		return err
	}

	if err := wrapped.Commit(); err != nil {
		if txmanager.IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %v", txmanager.ErrCommitTx, err)
	}
	return nil
}
