// Package pgerr classifies PostgreSQL driver errors for the repositories.
package pgerr

import (
	"context"
	"database/sql/driver"
	"errors"

	"backoffice/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes after which retrying the whole transaction is expected to succeed.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeUniqueViolation      = "23505"
)

// IsTransient reports whether err is a failure the caller may retry unchanged:
// connection loss, timeouts and lock conflicts.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return true
		}
	}

	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

// IsDuplicate signals that the error is a duplicate key violation.
func IsDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// Wrap converts transient storage errors to errs.TransientFailureError and returns every other
// error unchanged. op names the storage operation for the message.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		return errs.NewTransientFailureError(op, err)
	}
	return err
}

// WrapInsert is Wrap for INSERTs. A duplicate key there means a concurrent writer created the
// same row first; retrying lets the caller observe that row, so it is reported as transient.
func WrapInsert(op string, err error) error {
	if IsDuplicate(err) {
		return errs.NewTransientFailureError(op, err)
	}
	return Wrap(op, err)
}
