package charges

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodiecrew/catering-backend/pkg/db/models"
	pkgerrors "github.com/foodiecrew/catering-backend/pkg/errors"
	"gorm.io/gorm"
)

// Config carries the pricing knobs every quote is computed from.
type Config struct {
	VesselCharge         int64
	DeliveryCharge       int64
	StaffChargePerPerson int64
	GuestsPerStaff       int
	ServiceChargePercent float64
}

// Defaults returns the built-in charge configuration used when the admin has
// never saved one.
func Defaults() Config {
	return Config{
		VesselCharge:         5000,
		DeliveryCharge:       3000,
		StaffChargePerPerson: 800,
		GuestsPerStaff:       50,
		ServiceChargePercent: 5,
	}
}

// UpdateInput captures an admin edit of the charge configuration.
type UpdateInput struct {
	VesselCharge         int64
	DeliveryCharge       int64
	StaffChargePerPerson int64
	GuestsPerStaff       int
	ServiceChargePercent float64
}

// Service exposes read and admin-write access to the charge configuration.
type Service interface {
	Current(ctx context.Context) (Config, error)
	Update(ctx context.Context, input UpdateInput) (Config, error)
}

type service struct {
	repo Repository
}

// NewService builds a charge configuration service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("charges repository required")
	}
	return &service{repo: repo}, nil
}

// Current loads the saved configuration, falling back to Defaults when none
// exists or the read fails. Quotes must never fail because the charge sheet
// is missing or unreachable.
func (s *service) Current(ctx context.Context) (Config, error) {
	charge, err := s.repo.FindLatest(ctx)
	if err != nil {
		return Defaults(), nil
	}
	return fromModel(charge), nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (Config, error) {
	details := map[string]string{}
	if input.VesselCharge < 0 {
		details["vessel_charge"] = "must be zero or positive"
	}
	if input.DeliveryCharge < 0 {
		details["delivery_charge"] = "must be zero or positive"
	}
	if input.StaffChargePerPerson < 0 {
		details["staff_charge_per_person"] = "must be zero or positive"
	}
	if input.GuestsPerStaff <= 0 {
		details["guests_per_staff"] = "must be positive"
	}
	if input.ServiceChargePercent < 0 || input.ServiceChargePercent > 100 {
		details["service_charge_percent"] = "must be between 0 and 100"
	}
	if len(details) > 0 {
		return Config{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid charge configuration").WithDetails(details)
	}

	charge, err := s.repo.FindLatest(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Config{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading charge configuration")
	}
	if charge == nil {
		charge = &models.AdminCharge{}
	}

	charge.VesselCharge = input.VesselCharge
	charge.DeliveryCharge = input.DeliveryCharge
	charge.StaffChargePerPerson = input.StaffChargePerPerson
	charge.GuestsPerStaff = input.GuestsPerStaff
	charge.ServiceChargePercent = input.ServiceChargePercent

	saved, err := s.repo.Save(ctx, charge)
	if err != nil {
		return Config{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving charge configuration")
	}
	return fromModel(saved), nil
}

func fromModel(charge *models.AdminCharge) Config {
	return Config{
		VesselCharge:         charge.VesselCharge,
		DeliveryCharge:       charge.DeliveryCharge,
		StaffChargePerPerson: charge.StaffChargePerPerson,
		GuestsPerStaff:       charge.GuestsPerStaff,
		ServiceChargePercent: charge.ServiceChargePercent,
	}
}
