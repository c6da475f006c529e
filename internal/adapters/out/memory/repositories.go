package memory

import (
	"context"
	"fmt"
	"sort"

	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/pkg/errs"
)

type agentRepository struct{ uow *UnitOfWork }

func (r agentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(st *state) error {
		if _, ok := st.agents[aggregate.ID()]; ok {
			return fmt.Errorf("memory: agent %s already exists", aggregate.ID())
		}
		st.agents[aggregate.ID()] = fromAgent(aggregate)
		return nil
	})
}

func (r agentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(st *state) error {
		if _, ok := st.agents[aggregate.ID()]; !ok {
			return errs.NewObjectNotFoundError("agent", aggregate.ID().String())
		}
		st.agents[aggregate.ID()] = fromAgent(aggregate)
		return nil
	})
}

func (r agentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var a *agent.Agent
	err := r.uow.run(ctx, func(st *state) error {
		row, ok := st.agents[id]
		if !ok {
			return errs.NewObjectNotFoundError("agent", id.String())
		}
		var err error
		a, err = row.toDomain()
		return err
	})
	return a, err
}

// GetForUpdate is Get: the unit of work already holds the store-wide lock.
func (r agentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	return r.Get(ctx, id)
}

func (r agentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(st *state) error {
		if _, ok := st.agents[id]; !ok {
			return errs.NewObjectNotFoundError("agent", id.String())
		}
		delete(st.agents, id)
		return nil
	})
}

type orderRepository struct{ uow *UnitOfWork }

func (r orderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(st *state) error {
		if _, ok := st.orders[aggregate.ID()]; ok {
			return fmt.Errorf("memory: order %s already exists", aggregate.ID())
		}
		st.seq++
		st.orders[aggregate.ID()] = fromOrder(aggregate, st.seq)
		return nil
	})
}

func (r orderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(st *state) error {
		prev, ok := st.orders[aggregate.ID()]
		if !ok {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		st.orders[aggregate.ID()] = fromOrder(aggregate, prev.seq)
		return nil
	})
}

func (r orderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var o *order.Order
	err := r.uow.run(ctx, func(st *state) error {
		row, ok := st.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		var err error
		o, err = row.toDomain()
		return err
	})
	return o, err
}

// GetForUpdate is Get: the unit of work already holds the store-wide lock.
func (r orderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r orderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		delete(st.orders, id)
		return nil
	})
}

func (r orderRepository) CountByAgent(ctx context.Context, agentID kernel.UUID) (int64, error) {
	if err := agentID.Validate(); err != nil {
		return 0, err
	}
	var count int64
	err := r.uow.run(ctx, func(st *state) error {
		for _, row := range st.orders {
			if row.agentID != nil && row.agentID.IsEqual(agentID) {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r orderRepository) GetDeliveredUnsettled(ctx context.Context, limit int) ([]*order.Order, error) {
	var rows []orderRow
	err := r.uow.run(ctx, func(st *state) error {
		for _, row := range st.orders {
			if row.status == order.Delivered && !row.settled {
				rows = append(rows, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	orders := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

type parametersRepository struct{ uow *UnitOfWork }

func (r parametersRepository) Get(ctx context.Context) (pricing.Parameters, error) {
	var params pricing.Parameters
	err := r.uow.run(ctx, func(st *state) error {
		params = st.params
		return nil
	})
	return params, err
}

// Replace swaps the whole value in one assignment.
func (r parametersRepository) Replace(ctx context.Context, params pricing.Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(st *state) error {
		st.params = params
		return nil
	})
}
