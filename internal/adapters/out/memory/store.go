// Package memory keeps agents, orders and pricing in process memory. It implements the same
// ports and read models as the PostgreSQL adapter and backs development runs and concurrency
// tests.
//
// Every unit of work holds a store-wide lock from Begin until Commit or Rollback and works on
// a private copy of the state; Commit swaps the copy in. Transactions are therefore fully
// serialized and readers only ever see committed state.
package memory

import (
	"context"

	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

type agentRow struct {
	id      kernel.UUID
	name    string
	phone   string
	vehicle string
	status  agent.Status
	balance kernel.Money
}

type orderRow struct {
	id          kernel.UUID
	seq         int64
	origin      string
	destination string
	distance    kernel.Distance
	fare        kernel.Money
	commission  kernel.Money
	status      order.Status
	agentID     *kernel.UUID
	settled     bool
}

type state struct {
	agents map[kernel.UUID]agentRow
	orders map[kernel.UUID]orderRow
	params pricing.Parameters
	seq    int64
}

func (s *state) clone() *state {
	c := &state{
		agents: make(map[kernel.UUID]agentRow, len(s.agents)),
		orders: make(map[kernel.UUID]orderRow, len(s.orders)),
		params: s.params,
		seq:    s.seq,
	}
	for id, row := range s.agents {
		c.agents[id] = row
	}
	for id, row := range s.orders {
		c.orders[id] = row
	}
	return c
}

// Store is the in-memory database. The zero value is not usable; call NewStore.
type Store struct {
	// sem is a one-slot semaphore rather than a mutex so that waiting honours ctx.
	sem   chan struct{}
	state *state
}

// NewStore returns an empty store with the pricing singleton set to params.
func NewStore(params pricing.Parameters) *Store {
	return &Store{
		sem: make(chan struct{}, 1),
		state: &state{
			agents: make(map[kernel.UUID]agentRow),
			orders: make(map[kernel.UUID]orderRow),
			params: params,
		},
	}
}

func (s *Store) lock(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errs.NewTransientFailureError("acquire store lock", ctx.Err())
	}
}

func (s *Store) unlock() {
	<-s.sem
}

// view runs f against the committed state under the store lock.
func (s *Store) view(ctx context.Context, f func(st *state) error) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()
	return f(s.state)
}

// Create returns a new unit of work over the store.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

func fromAgent(a *agent.Agent) agentRow {
	return agentRow{
		id:      a.ID(),
		name:    a.Name(),
		phone:   a.Phone(),
		vehicle: a.Vehicle(),
		status:  a.Status(),
		balance: a.Balance(),
	}
}

func (r agentRow) toDomain() (*agent.Agent, error) {
	return agent.RestoreAgent(r.id, r.name, r.phone, r.vehicle, r.status, r.balance)
}

func fromOrder(o *order.Order, seq int64) orderRow {
	var agentID *kernel.UUID
	if id := o.Agent(); id != nil {
		cp := *id
		agentID = &cp
	}
	return orderRow{
		id:          o.ID(),
		seq:         seq,
		origin:      o.Origin(),
		destination: o.Destination(),
		distance:    o.Distance(),
		fare:        o.Fare(),
		commission:  o.Commission(),
		status:      o.Status(),
		agentID:     agentID,
		settled:     o.CommissionSettled(),
	}
}

func (r orderRow) toDomain() (*order.Order, error) {
	return order.RestoreOrder(
		r.id,
		r.origin,
		r.destination,
		r.distance,
		r.fare,
		r.commission,
		r.status,
		r.agentID,
		r.settled,
	)
}
