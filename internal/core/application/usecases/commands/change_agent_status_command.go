package commands

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrChangeAgentStatusCommandIsNotConstructed = errors.New(
	"ChangeAgentStatusCommand must be created via NewChangeAgentStatusCommand constructor",
)

// ChangeAgentStatusCommand approves or rejects an agent.
type ChangeAgentStatusCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	target  agent.Status

	guard guard.ConstructorGuard
}

// NewChangeAgentStatusCommand accepts Approved or Rejected as target.
func NewChangeAgentStatusCommand(agentID kernel.UUID, target agent.Status) (ChangeAgentStatusCommand, error) {
	cmd := ChangeAgentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgentID(agentID),
		cmd.setTarget(target),
	); err != nil {
		return ChangeAgentStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeAgentStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeAgentStatusCommandIsNotConstructed)
}

func (c ChangeAgentStatusCommand) AgentID() kernel.UUID { return c.agentID }
func (c ChangeAgentStatusCommand) Target() agent.Status { return c.target }

func (c *ChangeAgentStatusCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	c.agentID = agentID
	return nil
}

func (c *ChangeAgentStatusCommand) setTarget(target agent.Status) error {
	if target != agent.Approved && target != agent.Rejected {
		return errs.NewValueIsInvalidErrorWithCause("target status", fmt.Errorf("%s cannot be requested", target))
	}
	c.target = target
	return nil
}
