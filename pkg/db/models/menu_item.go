package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/foodiecrew/catering-backend/pkg/enums"
)

// MenuItem represents a dish on the catering menu. Price is the per-guest
// plate rate in whole currency units.
type MenuItem struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	Description *string        `gorm:"column:description"`
	Price       int64          `gorm:"column:price;not null"`
	FoodType    enums.FoodType `gorm:"column:food_type;type:food_type;not null;default:'veg'"`
	IsAvailable bool           `gorm:"column:is_available;not null;default:true"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
