package commands

import (
	"context"

	"backoffice/internal/core/domain/model/agent"
)

// ChangeAgentStatusCommandHandler runs the Pending -> Approved | Rejected transition.
// Any other transition, including repeating the same decision, fails with
// errs.InvalidTransitionError and nothing is written.
type ChangeAgentStatusCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewChangeAgentStatusCommandHandler(uowFactory AgentUoWFactory) ChangeAgentStatusCommandHandler {
	return ChangeAgentStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the agent with its new status.
func (h ChangeAgentStatusCommandHandler) Handle(ctx context.Context, cmd ChangeAgentStatusCommand) (*agent.Agent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()

	a, err := agentRepo.GetForUpdate(ctx, cmd.AgentID())
	if err != nil {
		return nil, err
	}

	if err = a.ChangeStatus(cmd.Target()); err != nil {
		return nil, err
	}

	if err = agentRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
