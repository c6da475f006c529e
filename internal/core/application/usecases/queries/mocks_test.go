package queries_test

import (
	"context"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/pricing"

	"github.com/stretchr/testify/mock"
)

type MockReadModel struct{ mock.Mock }

func (m *MockReadModel) ListAgents(ctx context.Context, includeRejected bool) ([]queries.AgentView, error) {
	args := m.Called(ctx, includeRejected)
	views, _ := args.Get(0).([]queries.AgentView)
	return views, args.Error(1)
}

func (m *MockReadModel) ListOrders(ctx context.Context) ([]queries.OrderView, error) {
	args := m.Called(ctx)
	views, _ := args.Get(0).([]queries.OrderView)
	return views, args.Error(1)
}

func (m *MockReadModel) CurrentParameters(ctx context.Context) (pricing.Parameters, error) {
	args := m.Called(ctx)
	return args.Get(0).(pricing.Parameters), args.Error(1)
}

func (m *MockReadModel) Statistics(ctx context.Context) (queries.StatisticsView, error) {
	args := m.Called(ctx)
	return args.Get(0).(queries.StatisticsView), args.Error(1)
}
