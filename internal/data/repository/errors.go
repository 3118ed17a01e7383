package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConflict signals that a write lost a race with a concurrent transaction
// (unique violation, serialization failure or deadlock). Nothing was
// persisted and the whole unit of work can be retried.
var ErrConflict = errors.New("storage conflict")

// ErrTransient signals a pool, timeout or connectivity failure. Nothing was
// persisted and the operation can be retried.
var ErrTransient = errors.New("storage unavailable")

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeQueryCanceled        = "57014"
	codeTooManyConnections   = "53300"
	codeAdminShutdown        = "57P01"
	codeCannotConnectNow     = "57P03"
)

// classify tags PostgreSQL and connection errors with ErrConflict or
// ErrTransient. Other errors are returned unchanged.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrConflict) || errors.Is(err, ErrTransient) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeSerializationFailure, codeDeadlockDetected:
			return fmt.Errorf("%w: %w", ErrConflict, err)
		case codeQueryCanceled, codeTooManyConnections, codeAdminShutdown, codeCannotConnectNow:
			return fmt.Errorf("%w: %w", ErrTransient, err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &connectErr) ||
		pgconn.Timeout(err) ||
		pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}

	return err
}
