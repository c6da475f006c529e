package pricingrepo

import (
	"context"
	"errors"

	"backoffice/internal/adapters/out/postgres/pgerr"
	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParametersRepository implements ports.ParametersRepository on a single-row table.
type GormParametersRepository struct {
	db *gorm.DB
}

func NewGormParametersRepository(db *gorm.DB) *GormParametersRepository {
	return &GormParametersRepository{db: db}
}

// Get returns the stored parameters, or errs.ObjectNotFoundError before the row is seeded.
func (r *GormParametersRepository) Get(ctx context.Context) (pricing.Parameters, error) {
	var dto ParametersDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", singletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pricing.Parameters{}, errs.NewObjectNotFoundError("pricing parameters", "singleton")
		}
		return pricing.Parameters{}, pgerr.Wrap("get pricing parameters", err)
	}
	return toDomain(dto)
}

// Replace writes all three fields with one INSERT ... ON CONFLICT DO UPDATE statement, so a
// concurrent reader sees either the old row or the new one.
func (r *GormParametersRepository) Replace(ctx context.Context, params pricing.Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}

	dto := fromDomain(params)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"base_fare", "per_distance_fare", "commission_rate", "updated_at"}),
	}).Create(&dto).Error
	return pgerr.Wrap("replace pricing parameters", err)
}

// Seed inserts defaults when the table is empty and leaves an existing row alone.
func (r *GormParametersRepository) Seed(ctx context.Context, defaults pricing.Parameters) error {
	if err := defaults.Validate(); err != nil {
		return err
	}

	dto := fromDomain(defaults)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
	return pgerr.Wrap("seed pricing parameters", err)
}
