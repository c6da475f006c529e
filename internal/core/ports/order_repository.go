package ports

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order. Returns errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads an order and holds it exclusively until the surrounding unit of work
	// ends. Status changes go through it so that concurrent transitions cannot overwrite each other.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order permanently.
	Delete(ctx context.Context, id kernel.UUID) error

	// CountByAgent returns how many orders reference agentID.
	CountByAgent(ctx context.Context, agentID kernel.UUID) (int64, error)

	// GetDeliveredUnsettled returns up to limit delivered orders whose commission has not been
	// charged yet, oldest first.
	GetDeliveredUnsettled(ctx context.Context, limit int) ([]*order.Order, error)
}
