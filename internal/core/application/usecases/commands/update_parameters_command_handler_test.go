package commands_test

import (
	"errors"
	"testing"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateParametersCommand(t *testing.T) {
	_, err := commands.NewUpdateParametersCommand(pricing.DefaultParameters())
	require.NoError(t, err)

	_, err = commands.NewUpdateParametersCommand(pricing.Parameters{})
	require.ErrorIs(t, err, pricing.ErrParametersAreNotConstructed)
}

func TestUpdateParametersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	next, err := pricing.NewParameters(kernel.MustMoney(600), kernel.MustMoney(100), decimal.RequireFromString("0.15"))
	require.NoError(t, err)
	cmd, err := commands.NewUpdateParametersCommand(next)
	require.NoError(t, err)

	repo := new(MockParametersRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParametersRepository").Return(repo).Once(),
		repo.On("Get", ctx).Return(pricing.DefaultParameters(), nil).Once(),
		repo.On("Replace", ctx, next).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockParametersUoWFactory)
	factory.On("Create").Return(uow).Once()

	stored, err := commands.NewUpdateParametersCommandHandler(factory, discardLogger()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, stored.Equal(next))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateParametersCommandHandler_Handle_ReplaceError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpdateParametersCommand(pricing.DefaultParameters())
	require.NoError(t, err)

	repo := new(MockParametersRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParametersRepository").Return(repo).Once()
	repo.On("Get", ctx).Return(pricing.DefaultParameters(), nil).Once()
	repo.On("Replace", ctx, mock.Anything).Return(errors.New("disk full")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockParametersUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewUpdateParametersCommandHandler(factory, discardLogger()).Handle(ctx, cmd)

	require.EqualError(t, err, "disk full")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
