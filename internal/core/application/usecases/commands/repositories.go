// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"backoffice/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// AgentRepoFactory provides access to the agent repository within a transaction.
	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ParametersRepoFactory provides access to the pricing repository within a transaction.
	ParametersRepoFactory interface {
		ParametersRepository() ports.ParametersRepository
	}

	// AgentUoW manages transactions for agent-only operations.
	AgentUoW interface {
		TxManager
		AgentRepoFactory
	}

	// AgentUoWFactory creates new agent unit of work instances.
	AgentUoWFactory interface {
		Create() AgentUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ParametersUoW manages transactions for pricing operations.
	ParametersUoW interface {
		TxManager
		ParametersRepoFactory
	}

	// ParametersUoWFactory creates new pricing unit of work instances.
	ParametersUoWFactory interface {
		Create() ParametersUoW
	}

	// UoW manages transactions that span agents, orders and pricing.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   agentRepo := uow.AgentRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		AgentRepoFactory
		OrderRepoFactory
		ParametersRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
