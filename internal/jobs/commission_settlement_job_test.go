package jobs_test

import (
	"log/slog"
	"testing"

	"backoffice/internal/adapters/out/memory"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type agentUoWFactory struct{ s *memory.Store }

func (f agentUoWFactory) Create() commands.AgentUoW { return f.s.Create() }

type orderUoWFactory struct{ s *memory.Store }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.s.Create() }

type uowFactory struct{ s *memory.Store }

func (f uowFactory) Create() commands.UoW { return f.s.Create() }

type observerMock struct {
	mock.Mock
}

func (m *observerMock) ObserveRun(settled, skipped, failed int, err error) {
	m.Called(settled, skipped, failed, err)
}

// seedDelivered registers and approves an agent and delivers one order of km kilometres.
func seedDelivered(t *testing.T, store *memory.Store, km string) kernel.UUID {
	t.Helper()
	ctx := t.Context()

	agentID := kernel.NewUUID()
	register, err := commands.NewRegisterAgentCommand(agentID, "Awa", "+221770000000", "moto")
	require.NoError(t, err)
	require.NoError(t, commands.NewRegisterAgentCommandHandler(agentUoWFactory{store}).Handle(ctx, register))

	approve, err := commands.NewChangeAgentStatusCommand(agentID, agent.Approved)
	require.NoError(t, err)
	_, err = commands.NewChangeAgentStatusCommandHandler(agentUoWFactory{store}).Handle(ctx, approve)
	require.NoError(t, err)

	orderID := kernel.NewUUID()
	distance, err := kernel.ParseDistance(km)
	require.NoError(t, err)
	place, err := commands.NewPlaceOrderCommand(orderID, "Plateau", "Ngor", distance)
	require.NoError(t, err)
	require.NoError(t, commands.NewPlaceOrderCommandHandler(uowFactory{store}).Handle(ctx, place))

	assign, err := commands.NewAssignOrderCommand(orderID, agentID)
	require.NoError(t, err)
	require.NoError(t, commands.NewAssignOrderCommandHandler(uowFactory{store}).Handle(ctx, assign))

	deliver, err := commands.NewDeliverOrderCommand(orderID)
	require.NoError(t, err)
	require.NoError(t, commands.NewDeliverOrderCommandHandler(orderUoWFactory{store}).Handle(ctx, deliver))

	return agentID
}

func newJob(store *memory.Store, schedule string, batch int, observer jobs.SettlementObserver) *jobs.CommissionSettlementJob {
	logger := slog.New(slog.DiscardHandler)
	handler := commands.NewSettleCommissionsCommandHandler(uowFactory{store}, services.NewCommissionSettler(), logger)
	return jobs.NewCommissionSettlementJob(handler, schedule, batch, observer, logger)
}

func TestCommissionSettlementJob_SettlesEachOrderOnce(t *testing.T) {
	store := memory.NewStore(pricing.DefaultParameters())
	agentID := seedDelivered(t, store, "3")

	observer := &observerMock{}
	observer.On("ObserveRun", 1, 0, 0, nil).Once()
	observer.On("ObserveRun", 0, 0, 0, nil).Once()
	job := newJob(store, jobs.DefaultSettlementSchedule, 10, observer)

	result, err := job.RunOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, commands.SettlementResult{Settled: 1}, result)

	result, err = job.RunOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, commands.SettlementResult{}, result)
	observer.AssertExpectations(t)

	agents, err := store.ListAgents(t.Context(), false)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.True(t, agents[0].ID.IsEqual(agentID))
	// fare 800, commission 80
	assert.Equal(t, int64(-80), agents[0].Balance.Amount())

	orders, err := store.ListOrders(t.Context())
	require.NoError(t, err)
	assert.True(t, orders[0].CommissionSettled)
}

func TestCommissionSettlementJob_RespectsBatch(t *testing.T) {
	store := memory.NewStore(pricing.DefaultParameters())
	seedDelivered(t, store, "1")
	seedDelivered(t, store, "2")

	job := newJob(store, jobs.DefaultSettlementSchedule, 1, nil)

	result, err := job.RunOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Settled)

	result, err = job.RunOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Settled)

	stats, err := store.Statistics(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(60+70), stats.TotalDebt.Amount())
}

func TestCommissionSettlementJob_StartValidates(t *testing.T) {
	store := memory.NewStore(pricing.DefaultParameters())

	assert.Error(t, newJob(store, "not a schedule", 10, nil).Start())
	assert.Error(t, newJob(store, jobs.DefaultSettlementSchedule, 0, nil).Start())

	job := newJob(store, "*/30 * * * * *", 10, nil)
	require.NoError(t, job.Start())
	job.Stop()
}
