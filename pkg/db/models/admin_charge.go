package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminCharge is the singleton surcharge rate sheet maintained from the
// admin Settings screen and read by every booking session.
type AdminCharge struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DeliveryCharge       int64     `gorm:"column:delivery_charge;not null"`
	VesselCharge         int64     `gorm:"column:vessel_charge;not null"`
	StaffChargePerPerson int64     `gorm:"column:staff_charge_per_person;not null"`
	GuestsPerStaff       int       `gorm:"column:guests_per_staff;not null"`
	ServiceChargePercent float64   `gorm:"column:service_charge_percent;type:numeric(5,2);not null"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
