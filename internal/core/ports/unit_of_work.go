package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Either everything done through its
// repositories between Begin and Commit becomes visible, or nothing does.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It is a no-op after Commit.
	Rollback(ctx context.Context) error

	// AgentRepository returns an AgentRepository bound to the current transaction.
	AgentRepository() AgentRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// ParametersRepository returns a ParametersRepository bound to the current transaction.
	ParametersRepository() ParametersRepository
}
