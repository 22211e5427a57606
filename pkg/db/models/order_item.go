package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots one menu item on an order. Quantity is the absolute
// plate count (cart quantity multiplied by guest count at submission) and
// Price the per-plate rate at booking time.
type OrderItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	MenuItemID uuid.UUID `gorm:"column:menu_item_id;type:uuid;not null"`
	Quantity   int       `gorm:"column:quantity;not null"`
	Price      int64     `gorm:"column:price;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
