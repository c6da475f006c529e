package commands

import (
	"context"
	"log/slog"

	"backoffice/internal/core/domain/model/agent"
)

// AdjustBalanceCommandHandler applies AddDebt / RecordPayment to an agent balance.
//
// The agent is loaded with GetForUpdate, so two adjustments on the same agent run one after the
// other and neither update is lost. A failed adjustment rolls back and leaves the stored balance
// unchanged.
type AdjustBalanceCommandHandler struct {
	uowFactory AgentUoWFactory
	logger     *slog.Logger
	observer   AdjustmentObserver
}

// AdjustmentObserver is notified after an adjustment is committed.
type AdjustmentObserver interface {
	ObserveAdjustment(kind agent.AdjustmentKind, amount int64)
}

// NewAdjustBalanceCommandHandler creates the handler. observer may be nil.
func NewAdjustBalanceCommandHandler(
	uowFactory AgentUoWFactory,
	logger *slog.Logger,
	observer AdjustmentObserver,
) AdjustBalanceCommandHandler {
	return AdjustBalanceCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "adjust-balance"),
		observer:   observer,
	}
}

// Handle applies the adjustment and returns the agent as committed.
func (h AdjustBalanceCommandHandler) Handle(ctx context.Context, cmd AdjustBalanceCommand) (*agent.Agent, error) {
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

	before := a.Balance()
	if err = a.Apply(cmd.Adjustment()); err != nil {
		return nil, err
	}

	if err = agentRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "balance adjusted",
		"agent_id", a.ID().String(),
		"adjustment", cmd.Adjustment().String(),
		"balance_before", before.Amount(),
		"balance_after", a.Balance().Amount(),
	)
	if h.observer != nil {
		h.observer.ObserveAdjustment(cmd.Adjustment().Kind(), cmd.Adjustment().Amount().Amount())
	}

	return a, nil
}
