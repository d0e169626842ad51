// Package txmanager runs closures inside SERIALIZABLE transactions with
// bounded retry on serialization failures. It is the enforcement point for
// the booking commit guard: check-then-insert sequences executed through
// DoSerializable are not observable as separate steps by concurrent requests.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/intellectif-llc/intellectif-website-sub002/pkg/dbmetrics"
)

const (
	// maxAttempts bounds retries of serialization failures. The third
	// consecutive conflict on the same slot almost always means the slot is
	// genuinely contended and the business check will reject anyway.
	maxAttempts = 3

	retryBackoff = 25 * time.Millisecond
)

var (
	// ErrBeginTx is returned when a transaction cannot be opened.
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx is returned when a commit fails for a non-retryable reason.
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted is returned after maxAttempts serialization
	// failures. Safe to retry at the caller level.
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// TxBeginner opens transactions. Implemented by *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager runs closures in serializable transactions.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager creates a manager over the given database.
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable executes fn inside a SERIALIZABLE transaction. The
// transaction is exposed to repositories through the context (dbmetrics),
// never passed explicitly. Serialization failures (SQLSTATE 40001/40P01)
// are retried up to maxAttempts times; any other error rolls back and is
// returned as-is so sentinel errors survive for errors.Is at the caller.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !IsSerializationFailure(err) {
			return err
		}

		lastErr = err
		select {
		case <-time.After(time.Duration(attempt) * retryBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		// Rollback error is secondary to the closure error.
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}
	return nil
}

// IsSerializationFailure reports whether err is a Postgres serialization
// or deadlock failure, i.e. safe to retry the whole transaction.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
