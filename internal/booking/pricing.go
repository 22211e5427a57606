package booking

import (
	"github.com/foodiecrew/catering-backend/internal/charges"
	"github.com/shopspring/decimal"
)

// CostBreakdown itemizes everything a quote is made of. Amounts are in the
// smallest currency unit, matching menu item prices.
type CostBreakdown struct {
	FoodCost       int64 `json:"food_cost"`
	StaffCount     int   `json:"staff_count"`
	StaffCharges   int64 `json:"staff_charges"`
	ServiceCharges int64 `json:"service_charges"`
	VesselCharge   int64 `json:"vessel_charge"`
	DeliveryCharge int64 `json:"delivery_charge"`
	TotalAmount    int64 `json:"total_amount"`
}

// Quote prices a cart for a guest count under a charge configuration. It is
// a pure function: no I/O, no clock, reproducible for identical inputs. It
// performs no guest-count floor enforcement; step validation owns that.
func Quote(cart Cart, guestCount int, cfg charges.Config) CostBreakdown {
	var foodCost int64
	for _, line := range cart.Lines {
		foodCost += line.Item.Price * int64(line.Quantity) * int64(guestCount)
	}

	staffCount := 0
	if cfg.GuestsPerStaff > 0 && guestCount > 0 {
		staffCount = (guestCount + cfg.GuestsPerStaff - 1) / cfg.GuestsPerStaff
	}
	staffCharges := int64(staffCount) * cfg.StaffChargePerPerson

	// decimal keeps fractional percents exact; Round is half away from
	// zero, which is half-up for the non-negative amounts involved here
	serviceCharges := decimal.NewFromInt(foodCost).
		Mul(decimal.NewFromFloat(cfg.ServiceChargePercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	breakdown := CostBreakdown{
		FoodCost:       foodCost,
		StaffCount:     staffCount,
		StaffCharges:   staffCharges,
		ServiceCharges: serviceCharges,
		VesselCharge:   cfg.VesselCharge,
		DeliveryCharge: cfg.DeliveryCharge,
	}

	// an empty cart prices at exactly zero, never at the sum of flat fees
	if foodCost == 0 {
		return breakdown
	}

	breakdown.TotalAmount = foodCost + cfg.VesselCharge + cfg.DeliveryCharge + staffCharges + serviceCharges
	return breakdown
}
