package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to exactly one of them so callers can
// classify failures with errors.Is without knowing the concrete type.
var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrInvalidAmount       = errors.New("amount is invalid")
	ErrInvalidParameter    = errors.New("parameter is invalid")
	ErrInvalidTransition   = errors.New("transition is invalid")
	ErrObjectHasDependents = errors.New("object has dependents")
	ErrTransientFailure    = errors.New("transient failure")
)

// Kind names the error families exposed to API clients.
type Kind string

const (
	KindInvalidAmount     Kind = "InvalidAmount"
	KindInvalidParameter  Kind = "InvalidParameter"
	KindInvalidTransition Kind = "InvalidTransition"
	KindInvalidValue      Kind = "InvalidValue"
	KindNotFound          Kind = "NotFound"
	KindConflict          Kind = "Conflict"
	KindTransientFailure  Kind = "TransientFailure"
	KindInternal          Kind = "Internal"
)

// KindOf classifies err. Unknown errors are KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidAmount):
		return KindInvalidAmount
	case errors.Is(err, ErrInvalidParameter):
		return KindInvalidParameter
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrObjectHasDependents):
		return KindConflict
	case errors.Is(err, ErrTransientFailure):
		return KindTransientFailure
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrValueIsRequired):
		return KindInvalidValue
	default:
		return KindInternal
	}
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// sanitize keeps user supplied values on a single line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// ObjectNotFoundError reports a missing entity.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return withCause(
			fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, e.ID),
			e.Cause,
		)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a malformed value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsOutOfRange, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max)), e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidAmountError reports a monetary input that is not a positive whole amount.
type InvalidAmountError struct {
	Value any
	Cause error
}

func NewInvalidAmountError(value any) *InvalidAmountError {
	return &InvalidAmountError{Value: value}
}

func NewInvalidAmountErrorWithCause(value any, cause error) *InvalidAmountError {
	return &InvalidAmountError{Value: value, Cause: cause}
}

func (e *InvalidAmountError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrInvalidAmount, sanitize(e.Value)), e.Cause)
}

func (e *InvalidAmountError) Unwrap() error {
	return ErrInvalidAmount
}

// InvalidParameterError reports a pricing field outside its allowed range.
type InvalidParameterError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
}

// NewInvalidParameterError builds the error; a nil maxValue means the range is unbounded above.
func NewInvalidParameterError(paramName string, value, minValue, maxValue any) *InvalidParameterError {
	return &InvalidParameterError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func (e *InvalidParameterError) Error() string {
	upper := "+inf)"
	if e.Max != nil {
		upper = sanitize(e.Max) + "]"
	}
	return fmt.Sprintf("%s: %s is %s, allowed range is [%s, %s",
		ErrInvalidParameter, e.ParamName, sanitize(e.Value), sanitize(e.Min), upper)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// InvalidTransitionError reports a forbidden status change.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String()}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ObjectHasDependentsError reports a deletion refused because other records reference the object.
type ObjectHasDependentsError struct {
	ParamName  string
	ID         any
	Dependents int64
}

func NewObjectHasDependentsError(paramName string, id any, dependents int64) *ObjectHasDependentsError {
	return &ObjectHasDependentsError{ParamName: paramName, ID: id, Dependents: dependents}
}

func (e *ObjectHasDependentsError) Error() string {
	return fmt.Sprintf("%s: %s %s is referenced by %d records",
		ErrObjectHasDependents, e.ParamName, sanitize(e.ID), e.Dependents)
}

func (e *ObjectHasDependentsError) Unwrap() error {
	return ErrObjectHasDependents
}

// TransientFailureError reports a backend that is temporarily unavailable.
type TransientFailureError struct {
	Op    string
	Cause error
}

func NewTransientFailureError(op string, cause error) *TransientFailureError {
	return &TransientFailureError{Op: op, Cause: cause}
}

func (e *TransientFailureError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrTransientFailure, e.Op), e.Cause)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *TransientFailureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransientFailure}
	}
	return []error{ErrTransientFailure, e.Cause}
}
