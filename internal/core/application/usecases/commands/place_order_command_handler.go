package commands

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"
)

// PlaceOrderCommandHandler prices and stores a new order. The quote is taken inside the same
// transaction that reads the parameters, so an order is never priced with a mix of old and new
// values. Placing an existing order ID is a no-op.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewPlaceOrderCommandHandler(uowFactory UoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
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

	_, err := orderRepo.Get(ctx, cmd.OrderID())
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	params, err := uow.ParametersRepository().Get(ctx)
	if err != nil {
		return err
	}

	quote, err := params.Quote(cmd.Distance())
	if err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Origin(), cmd.Destination(), cmd.Distance(), quote.Fare, quote.Commission)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
