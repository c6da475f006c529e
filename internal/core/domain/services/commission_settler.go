package services

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/order"
)

// ErrAgentMismatch is returned when the agent handed to the settler is not the one the order
// is assigned to.
var ErrAgentMismatch = errors.New("agent is not assigned to the order")

// CommissionSettler charges the platform commission of a delivered order to the agent that
// carried it. It is the only place where an order changes an agent balance.
type CommissionSettler struct{}

func NewCommissionSettler() CommissionSettler {
	return CommissionSettler{}
}

// Settle applies AddDebt(commission) to a and marks o settled. An order with zero commission is
// marked settled without touching the balance. Neither aggregate is modified on error.
func (s CommissionSettler) Settle(o *order.Order, a *agent.Agent) error {
	if err := errors.Join(o.Validate(), a.Validate()); err != nil {
		return err
	}
	if o.Status() != order.Delivered {
		return order.ErrOrderIsNotDelivered
	}
	if o.CommissionSettled() {
		return order.ErrCommissionAlreadySettled
	}
	if !o.IsAssignedTo(a.ID()) {
		return fmt.Errorf("%w: order %s, agent %s", ErrAgentMismatch, o.ID(), a.ID())
	}

	if o.Commission().IsPositive() {
		debt, err := agent.NewAddDebt(o.Commission())
		if err != nil {
			return err
		}
		if err = a.Apply(debt); err != nil {
			return err
		}
	}

	return o.MarkCommissionSettled()
}
