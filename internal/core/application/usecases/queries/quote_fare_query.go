package queries

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/pkg/guard"
)

var ErrQuoteFareQueryIsNotConstructed = errors.New(
	"QuoteFareQuery must be created via NewQuoteFareQuery constructor",
)

// QuoteFareQuery prices a trip of the given distance with the current parameters.
type QuoteFareQuery struct {
	distance kernel.Distance

	guard guard.ConstructorGuard
}

func NewQuoteFareQuery(distance kernel.Distance) (QuoteFareQuery, error) {
	if err := distance.Validate(); err != nil {
		return QuoteFareQuery{}, err
	}
	return QuoteFareQuery{distance: distance, guard: guard.NewConstructorGuard()}, nil
}

func (q QuoteFareQuery) Validate() error {
	return q.guard.Validate(ErrQuoteFareQueryIsNotConstructed)
}

func (q QuoteFareQuery) Distance() kernel.Distance {
	return q.distance
}

// QuoteFareQueryHandler is the read-only counterpart of order placement pricing.
type QuoteFareQueryHandler struct {
	reader ParametersReader
}

func NewQuoteFareQueryHandler(reader ParametersReader) QuoteFareQueryHandler {
	return QuoteFareQueryHandler{reader: reader}
}

func (h QuoteFareQueryHandler) Handle(ctx context.Context, query QuoteFareQuery) (pricing.Quote, error) {
	if err := query.Validate(); err != nil {
		return pricing.Quote{}, err
	}

	params, err := h.reader.CurrentParameters(ctx)
	if err != nil {
		return pricing.Quote{}, err
	}
	return params.Quote(query.Distance())
}
