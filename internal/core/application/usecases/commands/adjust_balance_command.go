package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"
)

var ErrAdjustBalanceCommandIsNotConstructed = errors.New(
	"AdjustBalanceCommand must be created via NewAdjustBalanceCommand constructor",
)

// AdjustBalanceCommand is the tagged balance operation addressed to one agent.
//
// Example:
//
//	cmd, err := NewAdjustBalanceCommand(agentID, agent.AddDebt, kernel.MustMoney(1000))
//	if err != nil {
//	    return err // errs.InvalidAmountError for amounts <= 0
//	}
//	updated, err := handler.Handle(ctx, cmd)
type AdjustBalanceCommand struct { //nolint:recvcheck //using for validation
	agentID    kernel.UUID
	adjustment agent.Adjustment

	guard guard.ConstructorGuard
}

// NewAdjustBalanceCommand validates the agent ID and builds the adjustment; the amount must be
// a positive magnitude.
func NewAdjustBalanceCommand(
	agentID kernel.UUID,
	kind agent.AdjustmentKind,
	amount kernel.Money,
) (AdjustBalanceCommand, error) {
	cmd := AdjustBalanceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgentID(agentID),
		cmd.setAdjustment(kind, amount),
	); err != nil {
		return AdjustBalanceCommand{}, err
	}

	return cmd, nil
}

func (c AdjustBalanceCommand) Validate() error {
	return c.guard.Validate(ErrAdjustBalanceCommandIsNotConstructed)
}

func (c AdjustBalanceCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c AdjustBalanceCommand) Adjustment() agent.Adjustment {
	return c.adjustment
}

func (c *AdjustBalanceCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	c.agentID = agentID
	return nil
}

func (c *AdjustBalanceCommand) setAdjustment(kind agent.AdjustmentKind, amount kernel.Money) error {
	adj, err := agent.NewAdjustment(kind, amount)
	if err != nil {
		return err
	}
	c.adjustment = adj
	return nil
}
