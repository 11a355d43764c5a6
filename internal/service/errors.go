package service

import (
	"context"
	"errors"

	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

// storeError maps a persistence failure into the error taxonomy.
// AppErrors pass through unchanged.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ports.ErrVersionConflict):
		return apperror.ErrConflict("Record was modified concurrently, re-read and retry")
	case errors.Is(err, context.DeadlineExceeded), pgconn.Timeout(err):
		return apperror.ErrTimeout(err)
	case isConnectError(err):
		return apperror.ErrUnavailable(err)
	}
	return apperror.InternalError(err)
}

func isConnectError(err error) bool {
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

// transient reports whether a failed read is worth repeating.
func transient(err error) bool {
	if err == nil {
		return false
	}
	switch apperror.CodeOf(err) {
	case apperror.CodeTimeout, apperror.CodeUnavailable:
		return true
	case "":
		return pgconn.Timeout(err) || isConnectError(err) || errors.Is(err, context.DeadlineExceeded)
	}
	return false
}
