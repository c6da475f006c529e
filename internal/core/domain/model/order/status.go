package order

import (
	"fmt"

	"backoffice/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
//	Pending ──> Delivered
//
// An order may be (re)assigned to an agent while Pending. Delivered is final: the order can
// no longer be reassigned, and its commission becomes eligible for settlement.
//
// Status is persisted as its integer value, so the constants must keep their order.
//
// Example usage:
//
//	next, err := o.Status().Deliver()
//	if err != nil {
//	    return err // errs.KindOf(err) == errs.KindInvalidTransition
//	}
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the status of a placed order that has not been delivered yet.
	Pending

	// Delivered indicates the shipment reached its destination.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Delivered: "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Delivered: "Delivered",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateAssign reports whether an agent may be (re)assigned in this status.
func (s Status) ValidateAssign() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveAgent checks the status against the presence of an assigned agent:
// Delivered orders must have one, Pending orders may or may not.
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	if !hasAgent && s == Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no agent", s.String()),
		)
	}
	return nil
}

// Deliver transitions Pending -> Delivered. Any other starting status, including Delivered
// itself, yields an errs.InvalidTransitionError; callers that want redelivery to be a no-op
// check for Delivered first.
func (s Status) Deliver() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidTransitionError(s, Delivered)
	}
	return Delivered, nil
}
