package commands

import (
	"context"

	"backoffice/internal/core/domain/model/order"
)

// DeliverOrderCommandHandler completes an order. Redelivering a Delivered order is a no-op.
// The commission is charged later by SettleCommissionsCommandHandler.
type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeliverOrderCommandHandler(uowFactory OrderUoWFactory) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
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

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if o.Status() == order.Delivered {
		return nil
	}

	if err = o.Deliver(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
