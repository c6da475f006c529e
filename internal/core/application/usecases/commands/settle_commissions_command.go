package commands

import (
	"errors"

	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

const (
	// DefaultSettlementBatch is the batch size used by the settlement job unless configured.
	DefaultSettlementBatch = 100
	maxSettlementBatch     = 10000
)

var ErrSettleCommissionsCommandIsNotConstructed = errors.New(
	"SettleCommissionsCommand must be created via NewSettleCommissionsCommand constructor",
)

// SettleCommissionsCommand charges the commission of up to Batch delivered orders.
type SettleCommissionsCommand struct {
	batch int

	guard guard.ConstructorGuard
}

func NewSettleCommissionsCommand(batch int) (SettleCommissionsCommand, error) {
	if batch <= 0 || batch > maxSettlementBatch {
		return SettleCommissionsCommand{}, errs.NewValueIsOutOfRangeError("batch", batch, 1, maxSettlementBatch)
	}
	return SettleCommissionsCommand{batch: batch, guard: guard.NewConstructorGuard()}, nil
}

func (c SettleCommissionsCommand) Validate() error {
	return c.guard.Validate(ErrSettleCommissionsCommandIsNotConstructed)
}

func (c SettleCommissionsCommand) Batch() int {
	return c.batch
}
