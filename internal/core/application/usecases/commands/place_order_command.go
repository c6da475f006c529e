package commands

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand records a shipment placed by a customer. The fare is computed by the handler
// from the pricing parameters in force at that moment.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	origin      string
	destination string
	distance    kernel.Distance

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	orderID kernel.UUID,
	origin, destination string,
	distance kernel.Distance,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRoute(origin, destination),
		cmd.setDistance(distance),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c PlaceOrderCommand) Origin() string            { return c.origin }
func (c PlaceOrderCommand) Destination() string       { return c.destination }
func (c PlaceOrderCommand) Distance() kernel.Distance { return c.distance }

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setRoute(origin, destination string) error {
	var problems []error
	if strings.TrimSpace(origin) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("origin"))
	}
	if strings.TrimSpace(destination) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("destination"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	c.origin = origin
	c.destination = destination
	return nil
}

func (c *PlaceOrderCommand) setDistance(distance kernel.Distance) error {
	if err := distance.Validate(); err != nil {
		return err
	}
	c.distance = distance
	return nil
}
