package ports

import (
	"context"

	"backoffice/internal/core/domain/model/pricing"
)

// ParametersRepository stores the pricing singleton.
type ParametersRepository interface {
	// Get returns the current parameters.
	Get(ctx context.Context) (pricing.Parameters, error)

	// Replace overwrites all fields in one atomic write.
	Replace(ctx context.Context, params pricing.Parameters) error
}
