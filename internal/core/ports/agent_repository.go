// Package ports defines the persistence contracts of the back-office core.
// Adapters in internal/adapters/out implement them for PostgreSQL and for an in-process store.
package ports

import (
	"context"

	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
)

// AgentRepository is the persistence contract for agent aggregates.
type AgentRepository interface {
	// Add persists a new agent.
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update persists changes to an existing agent.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// Get loads an agent. Returns errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetForUpdate loads an agent and holds it exclusively until the surrounding unit of work
	// ends, so that concurrent balance adjustments on the same agent are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// Delete removes an agent permanently.
	Delete(ctx context.Context, id kernel.UUID) error
}
