// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Fare and commission are frozen at placement; the settlement job scans by
// (status, commission_settled).
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AgentID           *uuid.UUID      `gorm:"type:uuid;index"`
	Origin            string          `gorm:"not null"`
	Destination       string          `gorm:"not null"`
	DistanceKm        decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Fare              int64           `gorm:"not null"`
	Commission        int64           `gorm:"not null"`
	Status            int             `gorm:"not null;index:idx_orders_settlement,priority:1"`
	CommissionSettled bool            `gorm:"not null;default:false;index:idx_orders_settlement,priority:2"`
	CreatedAt         time.Time       `gorm:"index"`
	UpdatedAt         time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := o.Agent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return OrderDTO{
		ID:                o.ID().Bytes(),
		AgentID:           agentID,
		Origin:            o.Origin(),
		Destination:       o.Destination(),
		DistanceKm:        o.Distance().Km(),
		Fare:              o.Fare().Amount(),
		Commission:        o.Commission().Amount(),
		Status:            int(o.Status()),
		CommissionSettled: o.CommissionSettled(),
	}
}

// toDomain reconstructs the aggregate, including agent reference and settlement flag.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	distance, err := kernel.NewDistance(dto.DistanceKm)
	if err != nil {
		return nil, err
	}

	fare, err := kernel.NewMoney(dto.Fare)
	if err != nil {
		return nil, err
	}
	commission, err := kernel.NewMoney(dto.Commission)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Origin,
		dto.Destination,
		distance,
		fare,
		commission,
		order.Status(dto.Status),
		agentID,
		dto.CommissionSettled,
	)
}
