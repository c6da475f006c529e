package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand marks an assigned order as delivered.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeliverOrderCommand(orderID kernel.UUID) (DeliverOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
