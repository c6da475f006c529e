package pricing

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrParametersAreNotConstructed is returned when zero-value Parameters are used.
var ErrParametersAreNotConstructed = errors.New("Parameters must be created via NewParameters")

var (
	rateMin = decimal.Zero
	rateMax = decimal.NewFromInt(1)
)

// Parameters is the process-wide pricing configuration. It is an immutable value: an update
// replaces the whole set, so readers see either the old or the new configuration.
//
// Invariants:
//   - baseFare >= 0
//   - perDistanceFare >= 0
//   - 0 <= commissionRate <= 1 (a fraction, never a percentage)
type Parameters struct {
	baseFare        kernel.Money
	perDistanceFare kernel.Money
	commissionRate  decimal.Decimal
	guard           guard.ConstructorGuard
}

// NewParameters validates every bound and reports all violations at once as
// errs.InvalidParameterError values joined together.
func NewParameters(baseFare, perDistanceFare kernel.Money, commissionRate decimal.Decimal) (Parameters, error) {
	var problems []error
	if baseFare.IsNegative() {
		problems = append(problems, errs.NewInvalidParameterError("baseFare", baseFare.Amount(), 0, nil))
	}
	if perDistanceFare.IsNegative() {
		problems = append(problems, errs.NewInvalidParameterError("perDistanceFare", perDistanceFare.Amount(), 0, nil))
	}
	if commissionRate.LessThan(rateMin) || commissionRate.GreaterThan(rateMax) {
		problems = append(problems, errs.NewInvalidParameterError("commissionRate", commissionRate.String(), 0, 1))
	}
	if err := errors.Join(problems...); err != nil {
		return Parameters{}, err
	}

	return Parameters{
		baseFare:        baseFare,
		perDistanceFare: perDistanceFare,
		commissionRate:  commissionRate,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// ParseParameters builds Parameters from client supplied numbers. Fares must be whole amounts in
// the kernel.Money range; anything else is an errs.InvalidParameterError.
func ParseParameters(baseFare, perDistanceFare, commissionRate decimal.Decimal) (Parameters, error) {
	base, baseErr := fareFromDecimal("baseFare", baseFare)
	perDistance, perDistanceErr := fareFromDecimal("perDistanceFare", perDistanceFare)
	var rateErr error
	if commissionRate.LessThan(rateMin) || commissionRate.GreaterThan(rateMax) {
		rateErr = errs.NewInvalidParameterError("commissionRate", commissionRate.String(), 0, 1)
	}
	if err := errors.Join(baseErr, perDistanceErr, rateErr); err != nil {
		return Parameters{}, err
	}
	return NewParameters(base, perDistance, commissionRate)
}

func fareFromDecimal(name string, d decimal.Decimal) (kernel.Money, error) {
	if d.IsNegative() || !d.IsInteger() || d.GreaterThan(decimal.NewFromInt(kernel.MaxMoney)) {
		return kernel.Money{}, errs.NewInvalidParameterError(name, d.String(), 0, nil)
	}
	return kernel.NewMoney(d.IntPart())
}

// DefaultParameters is the configuration seeded on first start.
func DefaultParameters() Parameters {
	p, err := NewParameters(kernel.MustMoney(500), kernel.MustMoney(100), decimal.RequireFromString("0.1"))
	if err != nil {
		panic(err)
	}
	return p
}

func (p Parameters) BaseFare() kernel.Money          { return p.baseFare }
func (p Parameters) PerDistanceFare() kernel.Money   { return p.perDistanceFare }
func (p Parameters) CommissionRate() decimal.Decimal { return p.commissionRate }

func (p Parameters) Validate() error {
	return p.guard.Validate(ErrParametersAreNotConstructed)
}

// Equal compares all three fields.
func (p Parameters) Equal(other Parameters) bool {
	return p.baseFare.Equal(other.baseFare) &&
		p.perDistanceFare.Equal(other.perDistanceFare) &&
		p.commissionRate.Equal(other.commissionRate)
}

func (p Parameters) String() string {
	return "{base: " + p.baseFare.String() +
		", perDistance: " + p.perDistanceFare.String() +
		", commission: " + p.commissionRate.String() + "}"
}
