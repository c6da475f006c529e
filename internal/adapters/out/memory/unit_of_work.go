package memory

import (
	"context"
	"errors"

	"backoffice/internal/core/ports"
)

// ErrNoTransaction is returned by Commit when Begin was not called.
var ErrNoTransaction = errors.New("memory: no active transaction")

// UnitOfWork is a serialized transaction over a Store.
type UnitOfWork struct {
	store *Store
	tx    *state
}

// Begin waits for the store lock and snapshots the committed state. Calling it again while a
// transaction is open is a no-op.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil
	}
	if err := u.store.lock(ctx); err != nil {
		return err
	}
	u.tx = u.store.state.clone()
	return nil
}

// Commit publishes the transaction's state and releases the lock.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	u.store.state = u.tx
	u.tx = nil
	u.store.unlock()
	return nil
}

// Rollback drops the transaction's state. It is a no-op without an open transaction.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return nil
	}
	u.tx = nil
	u.store.unlock()
	return nil
}

// run applies f to the open transaction, or to the committed state under the lock when there
// is none (auto-commit).
func (u *UnitOfWork) run(ctx context.Context, f func(st *state) error) error {
	if u.tx != nil {
		return f(u.tx)
	}
	return u.store.view(ctx, f)
}

func (u *UnitOfWork) AgentRepository() ports.AgentRepository {
	return agentRepository{uow: u}
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return orderRepository{uow: u}
}

func (u *UnitOfWork) ParametersRepository() ports.ParametersRepository {
	return parametersRepository{uow: u}
}
