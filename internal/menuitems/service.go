package menuitems

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodiecrew/catering-backend/pkg/db/models"
	pkgerrors "github.com/foodiecrew/catering-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the customer-facing menu catalog.
type Service interface {
	ListAvailable(ctx context.Context) ([]models.MenuItem, error)
	Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

type service struct {
	repo Repository
}

// NewService builds a menu catalog service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu items repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing menu items")
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id required")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching menu item")
	}
	return item, nil
}
