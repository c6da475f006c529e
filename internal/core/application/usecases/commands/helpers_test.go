package commands_test

import (
	"io"
	"log/slog"
	"testing"

	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPendingAgent(t *testing.T) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), "Awa Diop", "+221770000000", "moto")
	require.NoError(t, err)
	return a
}

func newAgentWith(t *testing.T, status agent.Status, balance int64) *agent.Agent {
	t.Helper()
	a, err := agent.RestoreAgent(kernel.NewUUID(), "Moussa Fall", "+221780000000", "velo", status, kernel.MustMoney(balance))
	require.NoError(t, err)
	return a
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	d, err := kernel.ParseDistance("12")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "Plateau", "Almadies", d, kernel.MustMoney(1700), kernel.MustMoney(170))
	require.NoError(t, err)
	return o
}

func newDeliveredOrder(t *testing.T, agentID kernel.UUID) *order.Order {
	t.Helper()
	o := newPendingOrder(t)
	require.NoError(t, o.Assign(agentID))
	require.NoError(t, o.Deliver())
	return o
}
