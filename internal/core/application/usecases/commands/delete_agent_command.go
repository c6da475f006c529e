package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"
)

var ErrDeleteAgentCommandIsNotConstructed = errors.New(
	"DeleteAgentCommand must be created via NewDeleteAgentCommand constructor",
)

// DeleteAgentCommand permanently removes an agent.
type DeleteAgentCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteAgentCommand(agentID kernel.UUID) (DeleteAgentCommand, error) {
	if err := agentID.Validate(); err != nil {
		return DeleteAgentCommand{}, err
	}
	return DeleteAgentCommand{agentID: agentID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteAgentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAgentCommandIsNotConstructed)
}

func (c DeleteAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}
