package commands

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/pkg/errs"
)

// RegisterAgentCommandHandler creates a Pending agent. Registering an ID that already exists is
// a no-op so redelivered events are harmless.
type RegisterAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewRegisterAgentCommandHandler(uowFactory AgentUoWFactory) RegisterAgentCommandHandler {
	return RegisterAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RegisterAgentCommandHandler) Handle(ctx context.Context, cmd RegisterAgentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	a, err := agent.NewAgent(cmd.AgentID(), cmd.Name(), cmd.Phone(), cmd.Vehicle())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()

	_, err = agentRepo.Get(ctx, cmd.AgentID())
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if err = agentRepo.Add(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
