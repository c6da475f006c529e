// Package readmodel answers the query side with raw SQL over the tables written by the
// repositories. It loads no aggregates.
package readmodel

import (
	"context"
	"database/sql"
	"errors"

	"backoffice/internal/adapters/out/postgres/pgerr"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReadModel implements queries.AgentReader, OrderReader, ParametersReader and StatisticsReader.
//
// Example:
//
//	rm := readmodel.New(db)
//	handler := queries.NewGetAllAgentsQueryHandler(rm)
type ReadModel struct {
	db *gorm.DB
}

func New(db *gorm.DB) *ReadModel {
	return &ReadModel{db: db}
}

// ListAgents returns agents sorted by name, then id for a stable order.
func (m *ReadModel) ListAgents(ctx context.Context, includeRejected bool) ([]queries.AgentView, error) {
	rows, err := m.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			vehicle,
			status,
			balance
		FROM agents
		WHERE ? OR status <> ?
		ORDER BY name, id
	`, includeRejected, int(agent.Rejected)).Rows()
	if err != nil {
		return nil, pgerr.Wrap("list agents", err)
	}
	defer rows.Close()

	agents := make([]queries.AgentView, 0)
	for rows.Next() {
		var view queries.AgentView
		var id uuid.UUID
		var status int
		var balance int64

		if err = rows.Scan(&id, &view.Name, &view.Phone, &view.Vehicle, &status, &balance); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		view.Status = agent.Status(status)
		if view.Balance, err = kernel.NewMoney(balance); err != nil {
			return nil, err
		}

		agents = append(agents, view)
	}

	if err = rows.Err(); err != nil {
		return nil, pgerr.Wrap("list agents", err)
	}
	return agents, nil
}

// ListOrders returns all orders, most recently placed first.
func (m *ReadModel) ListOrders(ctx context.Context) ([]queries.OrderView, error) {
	rows, err := m.db.WithContext(ctx).Raw(`
		SELECT
			id,
			origin,
			destination,
			distance_km,
			fare,
			commission,
			status,
			agent_id,
			commission_settled
		FROM orders
		ORDER BY created_at DESC, id
	`).Rows()
	if err != nil {
		return nil, pgerr.Wrap("list orders", err)
	}
	defer rows.Close()

	orders := make([]queries.OrderView, 0)
	for rows.Next() {
		var view queries.OrderView
		var id uuid.UUID
		var agentID uuid.NullUUID
		var status int
		var fare, commission int64

		err = rows.Scan(
			&id,
			&view.Origin,
			&view.Destination,
			&view.DistanceKm,
			&fare,
			&commission,
			&status,
			&agentID,
			&view.CommissionSettled,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if agentID.Valid {
			aID, idErr := kernel.UUIDFromBytes(agentID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			view.AgentID = &aID
		}
		view.Status = order.Status(status)
		if view.Fare, err = kernel.NewMoney(fare); err != nil {
			return nil, err
		}
		if view.Commission, err = kernel.NewMoney(commission); err != nil {
			return nil, err
		}

		orders = append(orders, view)
	}

	if err = rows.Err(); err != nil {
		return nil, pgerr.Wrap("list orders", err)
	}
	return orders, nil
}

// CurrentParameters reads the singleton row.
func (m *ReadModel) CurrentParameters(ctx context.Context) (pricing.Parameters, error) {
	var base, perDistance int64
	var rate decimal.Decimal

	row := m.db.WithContext(ctx).Raw(`
		SELECT base_fare, per_distance_fare, commission_rate
		FROM pricing_parameters
		WHERE id = 1
	`).Row()
	if err := row.Scan(&base, &perDistance, &rate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.Parameters{}, errs.NewObjectNotFoundError("pricing parameters", "singleton")
		}
		return pricing.Parameters{}, pgerr.Wrap("get pricing parameters", err)
	}

	baseFare, err := kernel.NewMoney(base)
	if err != nil {
		return pricing.Parameters{}, err
	}
	perDistanceFare, err := kernel.NewMoney(perDistance)
	if err != nil {
		return pricing.Parameters{}, err
	}
	return pricing.NewParameters(baseFare, perDistanceFare, rate)
}

// Statistics computes all four figures in one statement so they describe the same snapshot.
func (m *ReadModel) Statistics(ctx context.Context) (queries.StatisticsView, error) {
	var view queries.StatisticsView
	var commission, debt decimal.Decimal

	row := m.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM agents WHERE status <> ?),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(commission), 0) FROM orders WHERE status = ?),
			(SELECT COALESCE(SUM(-balance), 0) FROM agents WHERE balance < 0)
	`, int(agent.Rejected), int(order.Delivered)).Row()
	if err := row.Scan(&view.TotalAgents, &view.TotalOrders, &commission, &debt); err != nil {
		return queries.StatisticsView{}, pgerr.Wrap("compute statistics", err)
	}

	var err error
	if view.TotalCommission, err = sumToMoney("totalCommission", commission); err != nil {
		return queries.StatisticsView{}, err
	}
	if view.TotalDebt, err = sumToMoney("totalDebt", debt); err != nil {
		return queries.StatisticsView{}, err
	}
	return view, nil
}

// sumToMoney narrows a NUMERIC aggregate back to kernel.Money.
func sumToMoney(name string, sum decimal.Decimal) (kernel.Money, error) {
	if sum.GreaterThan(decimal.NewFromInt(kernel.MaxMoney)) {
		return kernel.Money{}, errs.NewValueIsOutOfRangeError(name, sum.String(), 0, kernel.MaxMoney)
	}
	return kernel.NewMoney(sum.IntPart())
}
