package queries

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/pkg/guard"
)

var ErrGetParametersQueryIsNotConstructed = errors.New(
	"GetParametersQuery must be created via NewGetParametersQuery constructor",
)

// GetParametersQuery reads the pricing configuration.
type GetParametersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetParametersQuery() GetParametersQuery {
	return GetParametersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetParametersQuery) Validate() error {
	return q.guard.Validate(ErrGetParametersQueryIsNotConstructed)
}

// GetParametersQueryHandler returns the complete current parameter set.
type GetParametersQueryHandler struct {
	reader ParametersReader
}

func NewGetParametersQueryHandler(reader ParametersReader) GetParametersQueryHandler {
	return GetParametersQueryHandler{reader: reader}
}

func (h GetParametersQueryHandler) Handle(ctx context.Context, query GetParametersQuery) (pricing.Parameters, error) {
	if err := query.Validate(); err != nil {
		return pricing.Parameters{}, err
	}
	return h.reader.CurrentParameters(ctx)
}
