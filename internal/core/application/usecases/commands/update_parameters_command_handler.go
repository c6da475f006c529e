package commands

import (
	"context"
	"log/slog"

	"backoffice/internal/core/domain/model/pricing"
)

// UpdateParametersCommandHandler swaps the pricing singleton in one write.
type UpdateParametersCommandHandler struct {
	uowFactory ParametersUoWFactory
	logger     *slog.Logger
}

func NewUpdateParametersCommandHandler(uowFactory ParametersUoWFactory, logger *slog.Logger) UpdateParametersCommandHandler {
	return UpdateParametersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "update-parameters"),
	}
}

// Handle returns the parameters as stored.
func (h UpdateParametersCommandHandler) Handle(ctx context.Context, cmd UpdateParametersCommand) (pricing.Parameters, error) {
	if err := cmd.Validate(); err != nil {
		return pricing.Parameters{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return pricing.Parameters{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParametersRepository()

	previous, err := repo.Get(ctx)
	if err != nil {
		return pricing.Parameters{}, err
	}

	if err = repo.Replace(ctx, cmd.Parameters()); err != nil {
		return pricing.Parameters{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return pricing.Parameters{}, err
	}

	h.logger.InfoContext(ctx, "pricing parameters replaced",
		"previous", previous.String(),
		"current", cmd.Parameters().String(),
	)
	return cmd.Parameters(), nil
}
