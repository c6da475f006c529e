package order

import (
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrOrderHasNoAgent is returned when delivering an order nobody was assigned to.
	ErrOrderHasNoAgent = errs.NewValueIsRequiredError("agent")
	// ErrCommissionAlreadySettled is returned when settling an order twice.
	ErrCommissionAlreadySettled = errs.NewValueIsInvalidError("commission is already settled")
	// ErrOrderIsNotDelivered is returned when settling an order that has not been delivered.
	ErrOrderIsNotDelivered = errs.NewValueIsInvalidError("order is not delivered")
)

// Order is a shipment placed on the platform. It is the aggregate root of the order side of the
// ledger: fare and commission are fixed from the pricing parameters in force when the order was
// placed and never re-priced afterwards.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Origin and destination are non-empty free text
//   - 0 <= commission <= fare
//   - Delivered orders always reference an agent
//   - Commission is settled against the agent balance at most once, and only after delivery
type Order struct {
	id          kernel.UUID
	origin      string
	destination string
	distance    kernel.Distance
	fare        kernel.Money
	commission  kernel.Money
	status      Status

	// agentID is a weak reference, nil while unassigned.
	agentID *kernel.UUID

	commissionSettled bool

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending, unassigned order priced with fare and commission.
//
// Example:
//
//	q, err := params.Quote(distance)
//	o, err := order.NewOrder(kernel.NewUUID(), "Plateau", "Almadies", distance, q.Fare, q.Commission)
func NewOrder(
	id kernel.UUID,
	origin, destination string,
	distance kernel.Distance,
	fare, commission kernel.Money,
) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrigin(origin),
		o.setDestination(destination),
		o.setDistance(distance),
		o.setPrice(fare, commission),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistent storage. Unlike NewOrder it accepts any
// valid status together with the agent reference and the settlement flag, and it re-checks the
// combinations a row could get wrong:
//   - a Delivered order without an agent is rejected
//   - a settled commission on an order that is not Delivered is rejected
//
// Repositories are its only callers; application code places orders with NewOrder.
//
// Example:
//
//	o, err := order.RestoreOrder(id, dto.Origin, dto.Destination, distance,
//	    fare, commission, order.Status(dto.Status), agentID, dto.CommissionSettled)
func RestoreOrder(
	id kernel.UUID,
	origin, destination string,
	distance kernel.Distance,
	fare, commission kernel.Money,
	status Status,
	agentID *kernel.UUID,
	commissionSettled bool,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrigin(origin),
		o.setDestination(destination),
		o.setDistance(distance),
		o.setPrice(fare, commission),
		o.setStatus(status, agentID),
	); err != nil {
		return nil, err
	}
	if commissionSettled && status != Delivered {
		return nil, ErrOrderIsNotDelivered
	}
	o.commissionSettled = commissionSettled

	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID           { return o.id }
func (o *Order) Origin() string            { return o.origin }
func (o *Order) Destination() string       { return o.destination }
func (o *Order) Distance() kernel.Distance { return o.distance }
func (o *Order) Fare() kernel.Money        { return o.fare }
func (o *Order) Commission() kernel.Money  { return o.commission }
func (o *Order) Status() Status            { return o.status }
func (o *Order) CommissionSettled() bool   { return o.commissionSettled }

// Agent returns the assigned agent's ID, or nil while the order is unassigned.
// The returned pointer is the order's own reference; treat it as read-only.
func (o *Order) Agent() *kernel.UUID {
	return o.agentID
}

// IsAssignedTo reports whether the order references agentID.
func (o *Order) IsAssignedTo(agentID kernel.UUID) bool {
	return o.agentID != nil && o.agentID.IsEqual(agentID)
}

// Assign sets or replaces the agent of a Pending order. Reassignment is allowed until the
// order is delivered; a Delivered order keeps the agent that delivered it and Assign fails
// with errs.ErrValueIsInvalid.
//
// Assign does not look at the agent itself. Checking that the agent exists and is Approved is
// the job of AssignOrderCommandHandler, which holds the agent row while it assigns.
//
// Example:
//
//	if o.IsAssignedTo(a.ID()) {
//	    return nil
//	}
//	if err := o.Assign(a.ID()); err != nil {
//	    return err
//	}
func (o *Order) Assign(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateAssign(); err != nil {
		return err
	}

	o.agentID = &agentID
	return nil
}

// Deliver marks an assigned Pending order as Delivered.
//
// Errors:
//   - ErrOrderHasNoAgent when nobody was assigned
//   - errs.InvalidTransitionError when the order is already Delivered
//
// Delivering does not touch any balance: the commission is charged later, once, by the
// commission settlement job.
func (o *Order) Deliver() error {
	if o.agentID == nil {
		return ErrOrderHasNoAgent
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkCommissionSettled records that the commission has been charged to the agent. It is
// the flag that makes settlement idempotent: a second call returns
// ErrCommissionAlreadySettled and the caller must not debit the agent again.
//
// Only services.CommissionSettler calls it, in the same unit of work that updates the
// agent balance.
func (o *Order) MarkCommissionSettled() error {
	if o.status != Delivered {
		return ErrOrderIsNotDelivered
	}
	if o.commissionSettled {
		return ErrCommissionAlreadySettled
	}

	o.commissionSettled = true
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	o.origin = origin
	return nil
}

func (o *Order) setDestination(destination string) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	o.destination = destination
	return nil
}

func (o *Order) setDistance(distance kernel.Distance) error {
	if err := distance.Validate(); err != nil {
		return err
	}
	o.distance = distance
	return nil
}

func (o *Order) setPrice(fare, commission kernel.Money) error {
	if fare.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("fare", fmt.Errorf("%s is negative", fare))
	}
	if commission.IsNegative() || commission.Amount() > fare.Amount() {
		return errs.NewValueIsOutOfRangeError("commission", commission.Amount(), 0, fare.Amount())
	}
	o.fare = fare
	o.commission = commission
	return nil
}

func (o *Order) setStatus(status Status, agentID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveAgent(agentID != nil); err != nil {
		return err
	}
	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return err
		}
		id := *agentID
		o.agentID = &id
	}
	o.status = status
	return nil
}
