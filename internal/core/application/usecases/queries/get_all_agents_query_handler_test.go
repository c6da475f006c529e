package queries_test

import (
	"errors"
	"testing"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetAllAgentsQueryHandler_PassesIncludeRejected(t *testing.T) {
	views := []queries.AgentView{{
		ID:      kernel.NewUUID(),
		Name:    "Awa Diop",
		Status:  agent.Rejected,
		Balance: kernel.MustMoney(-300),
	}}

	rm := &MockReadModel{}
	rm.On("ListAgents", mock.Anything, true).Return(views, nil).Once()

	got, err := queries.NewGetAllAgentsQueryHandler(rm).Handle(t.Context(), queries.NewGetAllAgentsQuery(true))

	require.NoError(t, err)
	assert.Equal(t, views, got)
	rm.AssertExpectations(t)
}

func TestGetAllAgentsQueryHandler_EmptyIsNotNil(t *testing.T) {
	rm := &MockReadModel{}
	rm.On("ListAgents", mock.Anything, false).Return(nil, nil).Once()

	got, err := queries.NewGetAllAgentsQueryHandler(rm).Handle(t.Context(), queries.NewGetAllAgentsQuery(false))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetAllAgentsQueryHandler_ReaderError(t *testing.T) {
	boom := errors.New("boom")
	rm := &MockReadModel{}
	rm.On("ListAgents", mock.Anything, false).Return(nil, boom).Once()

	_, err := queries.NewGetAllAgentsQueryHandler(rm).Handle(t.Context(), queries.NewGetAllAgentsQuery(false))

	require.ErrorIs(t, err, boom)
}

func TestGetAllAgentsQueryHandler_RejectsZeroQuery(t *testing.T) {
	rm := &MockReadModel{}

	_, err := queries.NewGetAllAgentsQueryHandler(rm).Handle(t.Context(), queries.GetAllAgentsQuery{})

	require.ErrorIs(t, err, queries.ErrGetAllAgentsQueryIsNotConstructed)
	rm.AssertNotCalled(t, "ListAgents", mock.Anything, mock.Anything)
}
