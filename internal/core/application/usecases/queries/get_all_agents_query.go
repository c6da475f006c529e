package queries

import (
	"errors"

	"backoffice/internal/pkg/guard"
)

var ErrGetAllAgentsQueryIsNotConstructed = errors.New(
	"GetAllAgentsQuery must be created via NewGetAllAgentsQuery constructor",
)

// GetAllAgentsQuery lists the agent roster. Rejected agents are hidden unless includeRejected
// is set.
type GetAllAgentsQuery struct {
	includeRejected bool

	guard guard.ConstructorGuard
}

func NewGetAllAgentsQuery(includeRejected bool) GetAllAgentsQuery {
	return GetAllAgentsQuery{includeRejected: includeRejected, guard: guard.NewConstructorGuard()}
}

func (q GetAllAgentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllAgentsQueryIsNotConstructed)
}

func (q GetAllAgentsQuery) IncludeRejected() bool {
	return q.includeRejected
}
