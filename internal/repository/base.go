package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
)

// internalError records an infrastructure failure on the active span and
// wraps it; the cause is traced and logged but never serialized to callers.
func internalError(ctx context.Context, err error) *models.AppError {
	observability.RecordErrorInContext(ctx, err)
	return models.NewInternalError(err)
}
