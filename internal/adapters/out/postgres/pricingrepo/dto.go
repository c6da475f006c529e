// Package pricingrepo stores the pricing parameters singleton.
package pricingrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// singletonID is the primary key of the only parameters row.
const singletonID = 1

// ParametersDTO is the pricing_parameters row. The check constraint keeps the table to one row.
type ParametersDTO struct {
	ID              int             `gorm:"primaryKey;autoIncrement:false;check:pricing_parameters_singleton,id = 1"`
	BaseFare        int64           `gorm:"not null"`
	PerDistanceFare int64           `gorm:"not null"`
	CommissionRate  decimal.Decimal `gorm:"type:numeric(6,5);not null"`
	UpdatedAt       time.Time
}

func (ParametersDTO) TableName() string {
	return "pricing_parameters"
}

func fromDomain(p pricing.Parameters) ParametersDTO {
	return ParametersDTO{
		ID:              singletonID,
		BaseFare:        p.BaseFare().Amount(),
		PerDistanceFare: p.PerDistanceFare().Amount(),
		CommissionRate:  p.CommissionRate(),
	}
}

func toDomain(dto ParametersDTO) (pricing.Parameters, error) {
	base, err := kernel.NewMoney(dto.BaseFare)
	if err != nil {
		return pricing.Parameters{}, err
	}
	perDistance, err := kernel.NewMoney(dto.PerDistanceFare)
	if err != nil {
		return pricing.Parameters{}, err
	}
	return pricing.NewParameters(base, perDistance, dto.CommissionRate)
}
