package memory_test

import (
	"io"
	"log/slog"
	"testing"

	"backoffice/internal/adapters/out/memory"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

// harness wires the real command handlers to one store.
type harness struct {
	store    *memory.Store
	register commands.RegisterAgentCommandHandler
	status   commands.ChangeAgentStatusCommandHandler
	adjust   commands.AdjustBalanceCommandHandler
	delete   commands.DeleteAgentCommandHandler
	place    commands.PlaceOrderCommandHandler
	assign   commands.AssignOrderCommandHandler
	deliver  commands.DeliverOrderCommandHandler
	settle   commands.SettleCommissionsCommandHandler
	params   commands.UpdateParametersCommandHandler
}

type agentUoWFactory struct{ s *memory.Store }

func (f agentUoWFactory) Create() commands.AgentUoW { return f.s.Create() }

type orderUoWFactory struct{ s *memory.Store }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.s.Create() }

type parametersUoWFactory struct{ s *memory.Store }

func (f parametersUoWFactory) Create() commands.ParametersUoW { return f.s.Create() }

type uowFactory struct{ s *memory.Store }

func (f uowFactory) Create() commands.UoW { return f.s.Create() }

func newHarness() *harness {
	store := memory.NewStore(pricing.DefaultParameters())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &harness{
		store:    store,
		register: commands.NewRegisterAgentCommandHandler(agentUoWFactory{store}),
		status:   commands.NewChangeAgentStatusCommandHandler(agentUoWFactory{store}),
		adjust:   commands.NewAdjustBalanceCommandHandler(agentUoWFactory{store}, logger, nil),
		delete:   commands.NewDeleteAgentCommandHandler(uowFactory{store}, logger),
		place:    commands.NewPlaceOrderCommandHandler(uowFactory{store}),
		assign:   commands.NewAssignOrderCommandHandler(uowFactory{store}),
		deliver:  commands.NewDeliverOrderCommandHandler(orderUoWFactory{store}),
		settle:   commands.NewSettleCommissionsCommandHandler(uowFactory{store}, services.NewCommissionSettler(), logger),
		params:   commands.NewUpdateParametersCommandHandler(parametersUoWFactory{store}, logger),
	}
}

func (h *harness) registerAgent(t *testing.T, name string) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterAgentCommand(id, name, "+221770000000", "moto")
	require.NoError(t, err)
	require.NoError(t, h.register.Handle(t.Context(), cmd))
	return id
}

func (h *harness) approve(t *testing.T, id kernel.UUID) {
	t.Helper()
	cmd, err := commands.NewChangeAgentStatusCommand(id, agent.Approved)
	require.NoError(t, err)
	_, err = h.status.Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func (h *harness) adjustBalance(t *testing.T, id kernel.UUID, kind agent.AdjustmentKind, amount int64) (*agent.Agent, error) {
	t.Helper()
	cmd, err := commands.NewAdjustBalanceCommand(id, kind, kernel.MustMoney(amount))
	if err != nil {
		return nil, err
	}
	return h.adjust.Handle(t.Context(), cmd)
}

// deliveredOrder places an order of km kilometres, assigns it to agentID and delivers it.
func (h *harness) deliveredOrder(t *testing.T, agentID kernel.UUID, km string) kernel.UUID {
	t.Helper()
	ctx := t.Context()
	id := kernel.NewUUID()

	d, err := kernel.ParseDistance(km)
	require.NoError(t, err)
	place, err := commands.NewPlaceOrderCommand(id, "Plateau", "Almadies", d)
	require.NoError(t, err)
	require.NoError(t, h.place.Handle(ctx, place))

	assign, err := commands.NewAssignOrderCommand(id, agentID)
	require.NoError(t, err)
	require.NoError(t, h.assign.Handle(ctx, assign))

	deliver, err := commands.NewDeliverOrderCommand(id)
	require.NoError(t, err)
	require.NoError(t, h.deliver.Handle(ctx, deliver))
	return id
}
