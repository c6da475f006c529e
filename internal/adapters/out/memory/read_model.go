package memory

import (
	"context"
	"sort"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/pricing"
)

// ListAgents implements queries.AgentReader.
func (s *Store) ListAgents(ctx context.Context, includeRejected bool) ([]queries.AgentView, error) {
	views := make([]queries.AgentView, 0)
	err := s.view(ctx, func(st *state) error {
		for _, row := range st.agents {
			if row.status == agent.Rejected && !includeRejected {
				continue
			}
			views = append(views, queries.AgentView{
				ID:      row.id,
				Name:    row.name,
				Phone:   row.phone,
				Vehicle: row.vehicle,
				Status:  row.status,
				Balance: row.balance,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(views, func(i, j int) bool {
		if views[i].Name != views[j].Name {
			return views[i].Name < views[j].Name
		}
		return views[i].ID.String() < views[j].ID.String()
	})
	return views, nil
}

// ListOrders implements queries.OrderReader; newest first.
func (s *Store) ListOrders(ctx context.Context) ([]queries.OrderView, error) {
	var rows []orderRow
	err := s.view(ctx, func(st *state) error {
		rows = make([]orderRow, 0, len(st.orders))
		for _, row := range st.orders {
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	views := make([]queries.OrderView, 0, len(rows))
	for _, row := range rows {
		views = append(views, queries.OrderView{
			ID:                row.id,
			Origin:            row.origin,
			Destination:       row.destination,
			DistanceKm:        row.distance.Km(),
			Fare:              row.fare,
			Commission:        row.commission,
			Status:            row.status,
			AgentID:           row.agentID,
			CommissionSettled: row.settled,
		})
	}
	return views, nil
}

// CurrentParameters implements queries.ParametersReader.
func (s *Store) CurrentParameters(ctx context.Context) (pricing.Parameters, error) {
	var params pricing.Parameters
	err := s.view(ctx, func(st *state) error {
		params = st.params
		return nil
	})
	return params, err
}

// Statistics implements queries.StatisticsReader over one consistent snapshot.
func (s *Store) Statistics(ctx context.Context) (queries.StatisticsView, error) {
	var view queries.StatisticsView
	err := s.view(ctx, func(st *state) error {
		var err error
		for _, row := range st.agents {
			if row.status != agent.Rejected {
				view.TotalAgents++
			}
			if row.balance.IsNegative() {
				if view.TotalDebt, err = view.TotalDebt.Add(row.balance.Abs()); err != nil {
					return err
				}
			}
		}
		for _, row := range st.orders {
			view.TotalOrders++
			if row.status == order.Delivered {
				if view.TotalCommission, err = view.TotalCommission.Add(row.commission); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return queries.StatisticsView{}, err
	}
	return view, nil
}

var (
	_ queries.AgentReader      = (*Store)(nil)
	_ queries.OrderReader      = (*Store)(nil)
	_ queries.ParametersReader = (*Store)(nil)
	_ queries.StatisticsReader = (*Store)(nil)
)
