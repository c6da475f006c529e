package agent

import (
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

// AdjustmentKind tells which way a balance adjustment moves the balance.
type AdjustmentKind int

const (
	// AddDebt lowers the balance: the agent owes the platform more.
	AddDebt AdjustmentKind = iota + 1
	// RecordPayment raises the balance. Payments are not capped at the outstanding debt.
	RecordPayment
)

func (k AdjustmentKind) String() string {
	switch k {
	case AddDebt:
		return "AddDebt"
	case RecordPayment:
		return "RecordPayment"
	default:
		return "Unknown"
	}
}

// ErrAdjustmentIsNotConstructed is returned when a zero-value Adjustment is applied.
var ErrAdjustmentIsNotConstructed = errs.NewInvalidAmountErrorWithCause(
	"<unset>", errs.NewValueIsRequiredError("adjustment must be created via NewAdjustment"))

// Adjustment is the tagged balance operation {Kind, Amount}. Amount is always a positive
// magnitude; the sign is derived from Kind, never from the caller.
type Adjustment struct {
	kind   AdjustmentKind
	amount kernel.Money
	guard  guard.ConstructorGuard
}

// NewAdjustment fails with errs.InvalidAmountError unless amount > 0.
func NewAdjustment(kind AdjustmentKind, amount kernel.Money) (Adjustment, error) {
	if kind != AddDebt && kind != RecordPayment {
		return Adjustment{}, errs.NewValueIsInvalidErrorWithCause("adjustment kind", fmt.Errorf("%d is not a known kind", kind))
	}
	if !amount.IsPositive() {
		return Adjustment{}, errs.NewInvalidAmountError(amount.String())
	}
	return Adjustment{kind: kind, amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// NewAddDebt is NewAdjustment(AddDebt, amount).
func NewAddDebt(amount kernel.Money) (Adjustment, error) {
	return NewAdjustment(AddDebt, amount)
}

// NewRecordPayment is NewAdjustment(RecordPayment, amount).
func NewRecordPayment(amount kernel.Money) (Adjustment, error) {
	return NewAdjustment(RecordPayment, amount)
}

func (a Adjustment) Kind() AdjustmentKind { return a.kind }
func (a Adjustment) Amount() kernel.Money { return a.amount }

func (a Adjustment) Validate() error {
	return a.guard.Validate(ErrAdjustmentIsNotConstructed)
}

// Delta returns the signed change to the balance: -amount for AddDebt, +amount for RecordPayment.
func (a Adjustment) Delta() kernel.Money {
	if a.kind == AddDebt {
		return a.amount.Neg()
	}
	return a.amount
}

func (a Adjustment) String() string {
	return a.kind.String() + "(" + a.amount.String() + ")"
}
