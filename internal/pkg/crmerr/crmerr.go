package crmerr

import "errors"

var (
	// ErrInvalidArgument is a generic sentinel for malformed or missing input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks operations rejected because of conflicting state,
	// including concurrent writers racing on the same rows.
	ErrConflict = errors.New("conflict")
	// ErrTransactionFailed marks a mutation whose transaction rolled back.
	// The whole operation is safe to retry.
	ErrTransactionFailed = errors.New("transaction failed")
	// ErrQueryFailed marks a read-only failure. Safe to retry.
	ErrQueryFailed = errors.New("query failed")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks callers lacking the role for an operation.
	ErrForbidden = errors.New("forbidden")
)
