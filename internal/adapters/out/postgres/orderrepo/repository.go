package orderrepo

import (
	"context"
	"errors"

	"backoffice/internal/adapters/out/postgres/pgerr"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.WrapInsert("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Zero values (no agent, unsettled) are
// written too, so columns are listed explicitly.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"agent_id":           dto.AgentID,
		"origin":             dto.Origin,
		"destination":        dto.Destination,
		"distance_km":        dto.DistanceKm,
		"fare":               dto.Fare,
		"commission":         dto.Commission,
		"status":             dto.Status,
		"commission_settled": dto.CommissionSettled,
	})
	if result.Error != nil {
		return pgerr.Wrap("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves an order and locks its row (SELECT ... FOR UPDATE) until the
// transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Wrap("get order", err)
	}

	return toDomain(dto)
}

// Delete removes an order permanently.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Wrap("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// CountByAgent counts orders referencing agentID, in any status.
func (r *GormOrderRepository) CountByAgent(ctx context.Context, agentID kernel.UUID) (int64, error) {
	if err := agentID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("agent_id = ?", agentID.Bytes()).Count(&count).Error; err != nil {
		return 0, pgerr.Wrap("count orders by agent", err)
	}
	return count, nil
}

// GetDeliveredUnsettled retrieves up to limit delivered orders whose commission is still
// uncharged, oldest first.
func (r *GormOrderRepository) GetDeliveredUnsettled(ctx context.Context, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND commission_settled = ?", int(order.Delivered), false).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Wrap("list unsettled orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
