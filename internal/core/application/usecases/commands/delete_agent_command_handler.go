package commands

import (
	"context"
	"log/slog"

	"backoffice/internal/pkg/errs"
)

// DeleteAgentCommandHandler removes an agent that no order references.
//
// Orders keep a weak reference to their agent. Rather than cascading or leaving orphans, the
// deletion is refused with errs.ObjectHasDependentsError while any order still points at the
// agent; the orders have to be deleted first.
type DeleteAgentCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewDeleteAgentCommandHandler(uowFactory UoWFactory, logger *slog.Logger) DeleteAgentCommandHandler {
	return DeleteAgentCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "delete-agent"),
	}
}

func (h DeleteAgentCommandHandler) Handle(ctx context.Context, cmd DeleteAgentCommand) error {
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

	agentRepo := uow.AgentRepository()
	orderRepo := uow.OrderRepository()

	a, err := agentRepo.GetForUpdate(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	dependents, err := orderRepo.CountByAgent(ctx, a.ID())
	if err != nil {
		return err
	}
	if dependents > 0 {
		return errs.NewObjectHasDependentsError("agent", a.ID().String(), dependents)
	}

	if err = agentRepo.Delete(ctx, a.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "agent deleted",
		"agent_id", a.ID().String(),
		"status", a.Status().String(),
		"balance", a.Balance().Amount(),
	)
	return nil
}
