package kernel

import (
	"strings"

	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrDistanceIsNotConstructed is returned when a zero-value Distance is used.
var ErrDistanceIsNotConstructed = errs.NewValueIsRequiredError("distance must be created via NewDistance or ParseDistance")

// Distance is a non-negative trip length in kilometres, the only input of fare pricing.
//
// It keeps the exact decimal the caller gave ("2.5" stays 2.5) so a fare is rounded only
// once, in pricing.Parameters.Quote, and never before. Zero is a valid distance: a pickup and
// drop-off at the same address still pays the base fare.
//
// The zero value is invalid; build it with NewDistance or ParseDistance.
//
// Example usage:
//
//	d, err := kernel.ParseDistance(c.QueryParam("distance"))
//	if err != nil {
//	    return err
//	}
//	q, err := params.Quote(d)
type Distance struct {
	km    decimal.Decimal
	guard guard.ConstructorGuard
}

// NewDistance validates km >= 0.
func NewDistance(km decimal.Decimal) (Distance, error) {
	if km.IsNegative() {
		return Distance{}, errs.NewValueIsOutOfRangeError("distance", km.String(), 0, "+inf")
	}
	return Distance{km: km, guard: guard.NewConstructorGuard()}, nil
}

// ParseDistance parses a kilometre value such as "12.5", as received in query strings and
// event payloads. Surrounding whitespace is ignored.
//
// Errors:
//   - errs.ErrValueIsRequired for an empty string
//   - errs.ErrValueIsInvalid for anything that is not a decimal number
//   - errs.ErrValueIsOutOfRange for a negative value
func ParseDistance(s string) (Distance, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Distance{}, errs.NewValueIsRequiredError("distance")
	}
	km, err := decimal.NewFromString(raw)
	if err != nil {
		return Distance{}, errs.NewValueIsInvalidErrorWithCause("distance", err)
	}
	return NewDistance(km)
}

// Km returns the length in kilometres.
func (d Distance) Km() decimal.Decimal {
	return d.km
}

func (d Distance) Validate() error {
	return d.guard.Validate(ErrDistanceIsNotConstructed)
}

func (d Distance) String() string {
	return d.km.String() + "km"
}
