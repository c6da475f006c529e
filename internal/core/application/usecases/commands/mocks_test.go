package commands_test

import (
	"context"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Add(ctx context.Context, a *agent.Agent) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, a *agent.Agent) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*agent.Agent)
	return a, args.Error(1)
}

func (m *MockAgentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*agent.Agent)
	return a, args.Error(1)
}

func (m *MockAgentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) CountByAgent(ctx context.Context, agentID kernel.UUID) (int64, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GetDeliveredUnsettled(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockParametersRepository struct{ mock.Mock }

func (m *MockParametersRepository) Get(ctx context.Context) (pricing.Parameters, error) {
	args := m.Called(ctx)
	return args.Get(0).(pricing.Parameters), args.Error(1)
}

func (m *MockParametersRepository) Replace(ctx context.Context, params pricing.Parameters) error {
	return m.Called(ctx, params).Error(0)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	return m.Called().Get(0).(ports.AgentRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ParametersRepository() ports.ParametersRepository {
	return m.Called().Get(0).(ports.ParametersRepository)
}

type MockAgentUoWFactory struct{ mock.Mock }

func (m *MockAgentUoWFactory) Create() commands.AgentUoW {
	return m.Called().Get(0).(commands.AgentUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockParametersUoWFactory struct{ mock.Mock }

func (m *MockParametersUoWFactory) Create() commands.ParametersUoW {
	return m.Called().Get(0).(commands.ParametersUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockAdjustmentObserver struct{ mock.Mock }

func (m *MockAdjustmentObserver) ObserveAdjustment(kind agent.AdjustmentKind, amount int64) {
	m.Called(kind, amount)
}
