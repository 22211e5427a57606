package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/foodiecrew/catering-backend/pkg/enums"
)

// Order is a confirmed catering booking. EventDate carries the merged
// date + time slot; the raw slot string is duplicated into Notes for
// display.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID    uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	EventName     string            `gorm:"column:event_name;not null"`
	EventLocation string            `gorm:"column:event_location;not null"`
	EventDate     time.Time         `gorm:"column:event_date;not null"`
	GuestCount    int               `gorm:"column:guest_count;not null"`
	TotalAmount   int64             `gorm:"column:total_amount;not null"`
	Status        enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	Notes         *string           `gorm:"column:notes"`
	Items         []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
