package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/pkg/guard"
)

var ErrUpdateParametersCommandIsNotConstructed = errors.New(
	"UpdateParametersCommand must be created via NewUpdateParametersCommand constructor",
)

// UpdateParametersCommand replaces the pricing configuration.
type UpdateParametersCommand struct { //nolint:recvcheck //using for validation
	params pricing.Parameters

	guard guard.ConstructorGuard
}

// NewUpdateParametersCommand expects parameters built by pricing.NewParameters or
// pricing.ParseParameters, which already enforce every bound.
func NewUpdateParametersCommand(params pricing.Parameters) (UpdateParametersCommand, error) {
	if err := params.Validate(); err != nil {
		return UpdateParametersCommand{}, err
	}
	return UpdateParametersCommand{params: params, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateParametersCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParametersCommandIsNotConstructed)
}

func (c UpdateParametersCommand) Parameters() pricing.Parameters {
	return c.params
}
