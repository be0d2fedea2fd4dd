package service

import (
	"context"

	"instime/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

// Transactor runs fn inside one database transaction. Repository calls
// made with the context passed to fn take part in it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// inTransaction runs fn through tx. Any error response from fn rolls the
// transaction back and is returned unchanged; a failed commit becomes an
// internal error.
func inTransaction(ctx context.Context, tx Transactor, fn func(ctx context.Context) apierror.ErrorResponse) apierror.ErrorResponse {
	var apierr apierror.ErrorResponse
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		apierr = fn(ctx)
		if apierr != nil {
			return apierr
		}
		return nil
	})

	if apierr != nil {
		return apierr
	}
	if err != nil {
		log.Errorf("transaction failed: %v", err)
		return apierror.InternalServerError
	}
	return nil
}
