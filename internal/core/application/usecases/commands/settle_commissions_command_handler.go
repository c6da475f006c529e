package commands

import (
	"context"
	"errors"
	"log/slog"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/services"
)

// SettlementResult counts what one settlement run did.
type SettlementResult struct {
	Settled int
	Skipped int
	Failed  int
}

// SettleCommissionsCommandHandler charges delivered orders' commission to their agents.
//
// Every order is settled in its own unit of work. The agent is locked before the order is
// re-read, so concurrent runs can not charge the same order twice, and a failure on one order
// does not hold back the rest of the batch.
type SettleCommissionsCommandHandler struct {
	uowFactory UoWFactory
	settler    services.CommissionSettler
	logger     *slog.Logger
}

func NewSettleCommissionsCommandHandler(
	uowFactory UoWFactory,
	settler services.CommissionSettler,
	logger *slog.Logger,
) SettleCommissionsCommandHandler {
	return SettleCommissionsCommandHandler{
		uowFactory: uowFactory,
		settler:    settler,
		logger:     logger.With("component", "settle-commissions"),
	}
}

// Handle returns an error only when the batch could not be listed or ctx was cancelled;
// per-order failures are logged and counted.
func (h SettleCommissionsCommandHandler) Handle(ctx context.Context, cmd SettleCommissionsCommand) (SettlementResult, error) {
	var result SettlementResult

	if err := cmd.Validate(); err != nil {
		return result, err
	}

	pending, err := h.listPending(ctx, cmd.Batch())
	if err != nil {
		return result, err
	}

	for _, id := range pending {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		settled, err := h.settleOne(ctx, id)
		switch {
		case err != nil:
			result.Failed++
			h.logger.ErrorContext(ctx, "failed to settle commission", "order_id", id.String(), "error", err)
		case settled:
			result.Settled++
		default:
			result.Skipped++
		}
	}

	return result, nil
}

func (h SettleCommissionsCommandHandler) listPending(ctx context.Context, batch int) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetDeliveredUnsettled(ctx, batch)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids, nil
}

func (h SettleCommissionsCommandHandler) settleOne(ctx context.Context, orderID kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()
	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return false, err
	}
	if o.Agent() == nil {
		return false, order.ErrOrderHasNoAgent
	}

	a, err := agentRepo.GetForUpdate(ctx, *o.Agent())
	if err != nil {
		return false, err
	}

	// the order may have been settled while we waited for the agent lock
	if o, err = orderRepo.GetForUpdate(ctx, orderID); err != nil {
		return false, err
	}
	if o.CommissionSettled() {
		return false, nil
	}

	if err = h.settler.Settle(o, a); err != nil {
		if errors.Is(err, order.ErrCommissionAlreadySettled) {
			return false, nil
		}
		return false, err
	}

	if err = agentRepo.Update(ctx, a); err != nil {
		return false, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.logger.InfoContext(ctx, "commission settled",
		"order_id", o.ID().String(),
		"agent_id", a.ID().String(),
		"commission", o.Commission().Amount(),
	)
	return true, nil
}
