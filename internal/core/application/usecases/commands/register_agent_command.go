package commands

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrRegisterAgentCommandIsNotConstructed = errors.New(
	"RegisterAgentCommand must be created via NewRegisterAgentCommand constructor",
)

// RegisterAgentCommand records an agent that signed up through the courier app.
type RegisterAgentCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	name    string
	phone   string
	vehicle string

	guard guard.ConstructorGuard
}

func NewRegisterAgentCommand(agentID kernel.UUID, name, phone, vehicle string) (RegisterAgentCommand, error) {
	cmd := RegisterAgentCommand{
		vehicle: vehicle,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgentID(agentID),
		cmd.setName(name),
		cmd.setPhone(phone),
	); err != nil {
		return RegisterAgentCommand{}, err
	}

	return cmd, nil
}

func (c RegisterAgentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAgentCommandIsNotConstructed)
}

func (c RegisterAgentCommand) AgentID() kernel.UUID { return c.agentID }
func (c RegisterAgentCommand) Name() string         { return c.name }
func (c RegisterAgentCommand) Phone() string        { return c.phone }
func (c RegisterAgentCommand) Vehicle() string      { return c.vehicle }

func (c *RegisterAgentCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	c.agentID = agentID
	return nil
}

func (c *RegisterAgentCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *RegisterAgentCommand) setPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}
