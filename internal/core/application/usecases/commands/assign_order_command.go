package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand hands a pending order to an agent.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignOrderCommand(orderID, agentID kernel.UUID) (AssignOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), agentID.Validate()); err != nil {
		return AssignOrderCommand{}, err
	}
	return AssignOrderCommand{orderID: orderID, agentID: agentID, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c AssignOrderCommand) AgentID() kernel.UUID { return c.agentID }
