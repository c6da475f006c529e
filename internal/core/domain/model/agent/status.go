package agent

import (
	"fmt"

	"backoffice/internal/pkg/errs"
)

// Status is the application state of an agent.
//
//	Pending ──┬──> Approved
//	          └──> Rejected
//
// Approved and Rejected are terminal. There is no way back to Pending, and repeating a
// decision (Approved -> Approved) is rejected with errs.InvalidTransitionError rather than
// treated as a no-op.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	// Pending is the status of a freshly registered agent awaiting review.
	Pending
	// Approved agents are part of the active roster.
	Approved
	// Rejected agents are hidden from the roster but their record and balance are retained.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Approved: "Approved",
		Rejected: "Rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:  "Pending",
		Approved: "Approved",
		Rejected: "Rejected",
	}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// TransitionTo returns target if the move from s is allowed.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if s != Pending || target == Pending {
		return Unknown, errs.NewInvalidTransitionError(s, target)
	}
	return target, nil
}

// Approve is TransitionTo(Approved).
func (s Status) Approve() (Status, error) {
	return s.TransitionTo(Approved)
}

// Reject is TransitionTo(Rejected).
func (s Status) Reject() (Status, error) {
	return s.TransitionTo(Rejected)
}
