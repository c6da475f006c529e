package queries

import (
	"context"
)

// GetAllOrdersQueryHandler returns all orders.
type GetAllOrdersQueryHandler struct {
	reader OrderReader
}

func NewGetAllOrdersQueryHandler(reader OrderReader) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{reader: reader}
}

func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = make([]OrderView, 0)
	}
	return orders, nil
}
