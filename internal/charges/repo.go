package charges

import (
	"context"

	"github.com/foodiecrew/catering-backend/internal/repo"
	"github.com/foodiecrew/catering-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the admin charge configuration.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindLatest(ctx context.Context) (*models.AdminCharge, error)
	Save(ctx context.Context, charge *models.AdminCharge) (*models.AdminCharge, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a charge configuration repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

// FindLatest returns the most recently updated charge row. The table is
// effectively a singleton but we tolerate historical rows.
func (r *repository) FindLatest(ctx context.Context) (*models.AdminCharge, error) {
	var charge models.AdminCharge
	err := r.DB(ctx).
		Order("updated_at DESC").
		First(&charge).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (r *repository) Save(ctx context.Context, charge *models.AdminCharge) (*models.AdminCharge, error) {
	if err := r.DB(ctx).Save(charge).Error; err != nil {
		return nil, err
	}
	return charge, nil
}
