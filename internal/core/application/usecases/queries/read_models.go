// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for the back-office screens; they never load aggregates.
package queries

import (
	"context"

	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// Read-side storage contracts. The PostgreSQL adapter answers them with raw SQL, the in-memory
// adapter by scanning its maps.
type (
	// AgentReader lists agents ordered by name.
	AgentReader interface {
		ListAgents(ctx context.Context, includeRejected bool) ([]AgentView, error)
	}

	// OrderReader lists orders, most recent first.
	OrderReader interface {
		ListOrders(ctx context.Context) ([]OrderView, error)
	}

	// ParametersReader returns the pricing singleton.
	ParametersReader interface {
		CurrentParameters(ctx context.Context) (pricing.Parameters, error)
	}

	// StatisticsReader computes the statistics snapshot over the full data set at call time.
	StatisticsReader interface {
		Statistics(ctx context.Context) (StatisticsView, error)
	}
)

// AgentView is an agent row as shown in the roster.
type AgentView struct {
	ID      kernel.UUID
	Name    string
	Phone   string
	Vehicle string
	Status  agent.Status
	Balance kernel.Money
}

// OrderView is an order row as shown in the orders table.
type OrderView struct {
	ID                kernel.UUID
	Origin            string
	Destination       string
	DistanceKm        decimal.Decimal
	Fare              kernel.Money
	Commission        kernel.Money
	Status            order.Status
	AgentID           *kernel.UUID
	CommissionSettled bool
}

// StatisticsView is the point-in-time dashboard snapshot.
//
//   - TotalAgents counts agents that are not Rejected
//   - TotalOrders counts every order
//   - TotalCommission sums the commission of Delivered orders
//   - TotalDebt sums |balance| over agents with a negative balance, whatever their status
type StatisticsView struct {
	TotalAgents     int64
	TotalOrders     int64
	TotalCommission kernel.Money
	TotalDebt       kernel.Money
}
