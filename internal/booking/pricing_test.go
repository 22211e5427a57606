package booking

import (
	"testing"

	"github.com/foodiecrew/catering-backend/internal/charges"
	"github.com/stretchr/testify/assert"
)

func testChargeConfig() charges.Config {
	return charges.Config{
		VesselCharge:         5000,
		DeliveryCharge:       3000,
		StaffChargePerPerson: 800,
		GuestsPerStaff:       50,
		ServiceChargePercent: 5,
	}
}

func TestQuoteEndToEndScenario(t *testing.T) {
	cart := Cart{}
	itemA := itemRef("Item A", 100)
	cart.Add(itemA)
	cart.Add(itemA)

	breakdown := Quote(cart, 50, testChargeConfig())

	assert.Equal(t, int64(10000), breakdown.FoodCost)
	assert.Equal(t, 1, breakdown.StaffCount)
	assert.Equal(t, int64(800), breakdown.StaffCharges)
	assert.Equal(t, int64(500), breakdown.ServiceCharges)
	assert.Equal(t, int64(19300), breakdown.TotalAmount)
}

func TestQuoteEmptyCartIsZero(t *testing.T) {
	for _, guests := range []int{0, 1, 50, 500} {
		breakdown := Quote(Cart{}, guests, testChargeConfig())
		assert.Zero(t, breakdown.TotalAmount, "guests=%d", guests)
		assert.Zero(t, breakdown.FoodCost, "guests=%d", guests)
	}
}

func TestQuoteFoodCostLinearInGuestCount(t *testing.T) {
	cart := Cart{}
	cart.Add(itemRef("Paneer Tikka", 25000))
	cart.Add(itemRef("Biryani", 30000))

	base := Quote(cart, 50, testChargeConfig())
	scaled := Quote(cart, 150, testChargeConfig())

	assert.Equal(t, base.FoodCost*3, scaled.FoodCost)
}

func TestQuoteStaffCountCeiling(t *testing.T) {
	cart := Cart{}
	cart.Add(itemRef("Item", 100))
	cfg := testChargeConfig()

	cases := []struct {
		guests int
		staff  int
	}{
		{50, 1},
		{51, 2},
		{100, 2},
		{101, 3},
		{1, 1},
	}
	for _, tc := range cases {
		breakdown := Quote(cart, tc.guests, cfg)
		assert.Equal(t, tc.staff, breakdown.StaffCount, "guests=%d", tc.guests)
	}
}

func TestQuoteServiceChargeRoundsHalfUp(t *testing.T) {
	cfg := testChargeConfig()
	cfg.ServiceChargePercent = 2.5

	cart := Cart{}
	// food cost 1020 -> 2.5% = 25.5 -> rounds to 26
	cart.Add(itemRef("Item", 1020))

	breakdown := Quote(cart, 1, cfg)
	assert.Equal(t, int64(1020), breakdown.FoodCost)
	assert.Equal(t, int64(26), breakdown.ServiceCharges)

	// food cost 1010 -> 2.5% = 25.25 -> rounds to 25
	cart2 := Cart{}
	cart2.Add(itemRef("Item", 1010))
	breakdown2 := Quote(cart2, 1, cfg)
	assert.Equal(t, int64(25), breakdown2.ServiceCharges)
}

func TestQuoteNoGuestFloorEnforcement(t *testing.T) {
	cart := Cart{}
	cart.Add(itemRef("Item", 100))

	// the calculator is a dumb pure function; callers gate on validation
	breakdown := Quote(cart, 10, testChargeConfig())
	assert.Equal(t, int64(1000), breakdown.FoodCost)
	assert.NotZero(t, breakdown.TotalAmount)
}

func TestQuoteZeroDivisorYieldsNoStaff(t *testing.T) {
	cart := Cart{}
	cart.Add(itemRef("Item", 100))
	cfg := testChargeConfig()
	cfg.GuestsPerStaff = 0

	breakdown := Quote(cart, 50, cfg)
	assert.Zero(t, breakdown.StaffCount)
	assert.Zero(t, breakdown.StaffCharges)
}
