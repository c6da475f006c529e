package queries

import (
	"context"
)

// GetAllAgentsQueryHandler returns the roster, ordered by name.
type GetAllAgentsQueryHandler struct {
	reader AgentReader
}

func NewGetAllAgentsQueryHandler(reader AgentReader) GetAllAgentsQueryHandler {
	return GetAllAgentsQueryHandler{reader: reader}
}

// Handle never returns a nil slice on success.
func (h GetAllAgentsQueryHandler) Handle(ctx context.Context, query GetAllAgentsQuery) ([]AgentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	agents, err := h.reader.ListAgents(ctx, query.IncludeRejected())
	if err != nil {
		return nil, err
	}
	if agents == nil {
		agents = make([]AgentView, 0)
	}
	return agents, nil
}
