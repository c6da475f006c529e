package commands_test

import (
	"testing"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewChangeAgentStatusCommand(t *testing.T) {
	_, err := commands.NewChangeAgentStatusCommand(kernel.NewUUID(), agent.Approved)
	require.NoError(t, err)
	_, err = commands.NewChangeAgentStatusCommand(kernel.NewUUID(), agent.Rejected)
	require.NoError(t, err)

	_, err = commands.NewChangeAgentStatusCommand(kernel.NewUUID(), agent.Pending)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = commands.NewChangeAgentStatusCommand(kernel.UUID{}, agent.Approved)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func changeStatusFixture(t *testing.T, a *agent.Agent, expectUpdate bool) (*MockAgentRepository, *MockUoW, *MockAgentUoWFactory) {
	t.Helper()
	ctx := t.Context()
	repo := new(MockAgentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AgentRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
	if expectUpdate {
		repo.On("Update", ctx, a).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()
	return repo, uow, factory
}

func TestChangeAgentStatusCommandHandler_Approve(t *testing.T) {
	a := newPendingAgent(t)
	repo, uow, factory := changeStatusFixture(t, a, true)
	cmd, err := commands.NewChangeAgentStatusCommand(a.ID(), agent.Approved)
	require.NoError(t, err)

	h := commands.NewChangeAgentStatusCommandHandler(factory)
	updated, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, agent.Approved, updated.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeAgentStatusCommandHandler_Reject(t *testing.T) {
	a := newPendingAgent(t)
	_, _, factory := changeStatusFixture(t, a, true)
	cmd, err := commands.NewChangeAgentStatusCommand(a.ID(), agent.Rejected)
	require.NoError(t, err)

	updated, err := commands.NewChangeAgentStatusCommandHandler(factory).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, agent.Rejected, updated.Status())
}

func TestChangeAgentStatusCommandHandler_ApproveTwiceIsRejected(t *testing.T) {
	a := newAgentWith(t, agent.Approved, 0)
	repo, uow, factory := changeStatusFixture(t, a, false)
	cmd, err := commands.NewChangeAgentStatusCommand(a.ID(), agent.Approved)
	require.NoError(t, err)

	_, err = commands.NewChangeAgentStatusCommandHandler(factory).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeAgentStatusCommandHandler_RejectedCannotBeApproved(t *testing.T) {
	a := newAgentWith(t, agent.Rejected, 0)
	_, _, factory := changeStatusFixture(t, a, false)
	cmd, err := commands.NewChangeAgentStatusCommand(a.ID(), agent.Approved)
	require.NoError(t, err)

	_, err = commands.NewChangeAgentStatusCommandHandler(factory).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, agent.Rejected, a.Status())
}
