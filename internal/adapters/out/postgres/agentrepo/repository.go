package agentrepo

import (
	"context"
	"errors"

	"backoffice/internal/adapters/out/postgres/pgerr"
	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAgentRepository implements ports.AgentRepository using GORM.
type GormAgentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAgentRepository creates a new GORM agent repository.
func NewGormAgentRepository(db *gorm.DB, tracker aggregateTracker) *GormAgentRepository {
	return &GormAgentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new agent to the database.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.WrapInsert("add agent", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every mutable column of an existing agent.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AgentDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":    dto.Name,
		"phone":   dto.Phone,
		"vehicle": dto.Vehicle,
		"status":  dto.Status,
		"balance": dto.Balance,
	})
	if result.Error != nil {
		return pgerr.Wrap("update agent", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agent", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an agent by ID.
func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves an agent and locks its row (SELECT ... FOR UPDATE) until the
// transaction ends. Outside a transaction the lock is released immediately.
func (r *GormAgentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormAgentRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", id.String())
		}
		return nil, pgerr.Wrap("get agent", err)
	}

	return toDomain(dto)
}

// Delete removes an agent permanently.
func (r *GormAgentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AgentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Wrap("delete agent", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agent", id.String())
	}
	return nil
}
