package agent

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

// Domain errors for agent operations.
var (
	// ErrNameIsRequired is returned when an agent has a blank name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when an agent has a blank phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrAgentIsNotConstructed is returned when using an improperly initialized Agent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent or RestoreAgent")
)

// Agent is a courier registered with the platform. It is the aggregate root of the ledger: the
// balance can only change through Apply, and the application status only through the Status
// state machine.
//
// Business rules:
//   - An agent has a valid UUID, a non-empty name and a non-empty phone number
//   - New agents start Pending with a zero balance
//   - A negative balance means the agent owes the platform; a positive one is credit
//   - Adjustments are accepted in every status, so debt can still be collected after rejection
//
// Example usage:
//
//	a, err := agent.NewAgent(kernel.NewUUID(), "Awa Diop", "+221770000000", "moto")
//	if err != nil {
//	    return err
//	}
//	debt, _ := agent.NewAddDebt(kernel.MustMoney(1000))
//	_ = a.Apply(debt) // balance is now -1000
type Agent struct {
	id      kernel.UUID
	name    string
	phone   string
	vehicle string
	status  Status
	balance kernel.Money
	guard   guard.ConstructorGuard
}

// NewAgent registers a new agent in Pending status with a zero balance.
func NewAgent(id kernel.UUID, name, phone, vehicle string) (*Agent, error) {
	a := &Agent{
		status:  Pending,
		balance: kernel.Zero,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
		a.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAgent reconstructs an agent from persistent storage, keeping its status and balance.
func RestoreAgent(
	id kernel.UUID,
	name, phone, vehicle string,
	status Status,
	balance kernel.Money,
) (*Agent, error) {
	a := &Agent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
		a.setVehicle(vehicle),
		a.setStatus(status),
	); err != nil {
		return nil, err
	}
	a.balance = balance

	return a, nil
}

// IsEqual compares agents by identifier.
func (a *Agent) IsEqual(other *Agent) bool {
	if other == nil {
		return false
	}
	return a.id.IsEqual(other.id)
}

// Validate reports ErrAgentIsNotConstructed for nil or zero-value agents.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

func (a *Agent) ID() kernel.UUID       { return a.id }
func (a *Agent) Name() string          { return a.name }
func (a *Agent) Phone() string         { return a.phone }
func (a *Agent) Vehicle() string       { return a.vehicle }
func (a *Agent) Status() Status        { return a.status }
func (a *Agent) Balance() kernel.Money { return a.balance }

// InDebt reports whether the agent owes the platform.
func (a *Agent) InDebt() bool {
	return a.balance.IsNegative()
}

// Debt returns the outstanding debt as a non-negative magnitude; agents with a zero or credit
// balance have no debt.
func (a *Agent) Debt() kernel.Money {
	if !a.balance.IsNegative() {
		return kernel.Zero
	}
	return a.balance.Abs()
}

// Apply adds the signed delta of adj to the balance. On error the balance is unchanged.
//
// Errors:
//   - errs.InvalidAmountError if adj was not built by NewAdjustment
//   - errs.ValueIsOutOfRangeError if the new balance would not fit in kernel.Money
func (a *Agent) Apply(adj Adjustment) error {
	if err := adj.Validate(); err != nil {
		return err
	}

	balance, err := a.balance.Add(adj.Delta())
	if err != nil {
		return err
	}

	a.balance = balance
	return nil
}

// ChangeStatus moves the agent to target following the Status state machine.
func (a *Agent) ChangeStatus(target Status) error {
	next, err := a.status.TransitionTo(target)
	if err != nil {
		return err
	}

	a.status = next
	return nil
}

// Approve moves a Pending agent to Approved.
func (a *Agent) Approve() error {
	return a.ChangeStatus(Approved)
}

// Reject moves a Pending agent to Rejected.
func (a *Agent) Reject() error {
	return a.ChangeStatus(Rejected)
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Agent) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneIsRequired
	}
	a.phone = phone
	return nil
}

// vehicle is optional.
func (a *Agent) setVehicle(vehicle string) error {
	a.vehicle = strings.TrimSpace(vehicle)
	return nil
}

func (a *Agent) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	a.status = status
	return nil
}
