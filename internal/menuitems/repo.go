package menuitems

import (
	"context"

	"github.com/foodiecrew/catering-backend/internal/repo"
	"github.com/foodiecrew/catering-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the menu catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListAvailable(ctx context.Context) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a menu item repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.DB(ctx).
		Where("is_available = ?", true).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.DB(ctx).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}
