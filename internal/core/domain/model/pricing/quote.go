package pricing

import (
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Quote is the price of a trip under a given set of Parameters.
type Quote struct {
	Distance   kernel.Distance
	Fare       kernel.Money
	Commission kernel.Money
}

// Quote prices a trip:
//
//	fare       = round(baseFare + perDistanceFare * km)
//	commission = round(fare * commissionRate)
//
// Both roundings are half-up to a whole unit. Fails with errs.ValueIsOutOfRangeError when the
// fare does not fit in kernel.Money.
func (p Parameters) Quote(distance kernel.Distance) (Quote, error) {
	if err := distance.Validate(); err != nil {
		return Quote{}, err
	}

	fare := p.baseFare.Decimal().
		Add(p.perDistanceFare.Decimal().Mul(distance.Km())).
		Round(0)
	if fare.GreaterThan(decimal.NewFromInt(kernel.MaxMoney)) {
		return Quote{}, errs.NewValueIsOutOfRangeError("fare", fare.String(), 0, kernel.MaxMoney)
	}
	commission := fare.Mul(p.commissionRate).Round(0)

	return Quote{
		Distance:   distance,
		Fare:       kernel.MustMoney(fare.IntPart()),
		Commission: kernel.MustMoney(commission.IntPart()),
	}, nil
}
