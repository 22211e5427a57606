package controllers

import (
	"net/http"

	"github.com/foodiecrew/catering-backend/api/responses"
	"github.com/foodiecrew/catering-backend/api/validators"
	"github.com/foodiecrew/catering-backend/internal/charges"
	pkgerrors "github.com/foodiecrew/catering-backend/pkg/errors"
	"github.com/foodiecrew/catering-backend/pkg/logger"
)

type chargeConfigResponse struct {
	VesselCharge         int64   `json:"vessel_charge"`
	DeliveryCharge       int64   `json:"delivery_charge"`
	StaffChargePerPerson int64   `json:"staff_charge_per_person"`
	GuestsPerStaff       int     `json:"guests_per_staff"`
	ServiceChargePercent float64 `json:"service_charge_percent"`
}

func newChargeConfigResponse(cfg charges.Config) chargeConfigResponse {
	return chargeConfigResponse{
		VesselCharge:         cfg.VesselCharge,
		DeliveryCharge:       cfg.DeliveryCharge,
		StaffChargePerPerson: cfg.StaffChargePerPerson,
		GuestsPerStaff:       cfg.GuestsPerStaff,
		ServiceChargePercent: cfg.ServiceChargePercent,
	}
}

type updateChargesRequest struct {
	VesselCharge         int64   `json:"vessel_charge" validate:"min=0"`
	DeliveryCharge       int64   `json:"delivery_charge" validate:"min=0"`
	StaffChargePerPerson int64   `json:"staff_charge_per_person" validate:"min=0"`
	GuestsPerStaff       int     `json:"guests_per_staff" validate:"required,min=1"`
	ServiceChargePercent float64 `json:"service_charge_percent" validate:"min=0,max=100"`
}

// ChargesFetch exposes the current rate sheet to the booking UI.
func ChargesFetch(svc charges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "charges service unavailable"))
			return
		}

		cfg, err := svc.Current(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newChargeConfigResponse(cfg))
	}
}

// ChargesUpdate persists an admin edit of the rate sheet.
func ChargesUpdate(svc charges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "charges service unavailable"))
			return
		}

		var payload updateChargesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cfg, err := svc.Update(r.Context(), charges.UpdateInput{
			VesselCharge:         payload.VesselCharge,
			DeliveryCharge:       payload.DeliveryCharge,
			StaffChargePerPerson: payload.StaffChargePerPerson,
			GuestsPerStaff:       payload.GuestsPerStaff,
			ServiceChargePercent: payload.ServiceChargePercent,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newChargeConfigResponse(cfg))
	}
}
