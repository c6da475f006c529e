// Package postgres provides the GORM-based Unit of Work and the database bootstrap.
//
// A unit of work wraps one database transaction. Repositories handed out after Begin run
// inside that transaction; the agent repository's GetForUpdate takes a row lock there, which
// is what serializes concurrent balance adjustments on one agent.
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	a, err := uow.AgentRepository().GetForUpdate(ctx, id)
//	// ... mutate a
//	if err := uow.AgentRepository().Update(ctx, a); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each goroutine must use its own UnitOfWork instance.
package postgres

import (
	"context"

	"backoffice/internal/adapters/out/postgres/agentrepo"
	"backoffice/internal/adapters/out/postgres/orderrepo"
	"backoffice/internal/adapters/out/postgres/pgerr"
	"backoffice/internal/adapters/out/postgres/pricingrepo"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the aggregates written
// through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Wrap("begin transaction", tx.Error)
	}

	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Wrap("commit transaction", err)
}

// Rollback discards the current transaction. After Commit, or without Begin, it does nothing,
// which lets handlers defer it unconditionally.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// AgentRepository returns an agent repository bound to the open transaction, or to the
// plain connection when there is none.
func (uow *GormUnitOfWork) AgentRepository() ports.AgentRepository {
	return agentrepo.NewGormAgentRepository(uow.conn(), uow)
}

// OrderRepository returns an order repository bound to the open transaction, or to the
// plain connection when there is none.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// ParametersRepository returns the pricing repository bound to the open transaction.
func (uow *GormUnitOfWork) ParametersRepository() ports.ParametersRepository {
	return pricingrepo.NewGormParametersRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs lists the IDs of aggregates written since Begin, in write order.
func (uow *GormUnitOfWork) TrackedIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}
