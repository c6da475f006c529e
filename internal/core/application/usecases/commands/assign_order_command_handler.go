package commands

import (
	"context"
	"fmt"

	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/pkg/errs"
)

// AssignOrderCommandHandler assigns a Pending order to an Approved agent. The agent row is
// locked before the order, in the same order as commission settlement, so a concurrent
// DeleteAgentCommandHandler either sees the new order or runs before the assignment.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewAssignOrderCommandHandler(uowFactory UoWFactory) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	a, err := uow.AgentRepository().GetForUpdate(ctx, cmd.AgentID())
	if err != nil {
		return err
	}
	if a.Status() != agent.Approved {
		return errs.NewValueIsInvalidErrorWithCause("agent",
			fmt.Errorf("agent %s is %s, only approved agents take orders", a.ID(), a.Status()))
	}

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if o.IsAssignedTo(a.ID()) {
		return nil
	}

	if err = o.Assign(a.ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
