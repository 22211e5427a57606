package charges

import (
	"context"
	"testing"
	"time"

	"github.com/foodiecrew/catering-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupChargesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	adminCharges := `
CREATE TABLE IF NOT EXISTS admin_charges (
  id TEXT PRIMARY KEY,
  delivery_charge INTEGER NOT NULL,
  vessel_charge INTEGER NOT NULL,
  staff_charge_per_person INTEGER NOT NULL,
  guests_per_staff INTEGER NOT NULL,
  service_charge_percent REAL NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(adminCharges).Error)
	return db
}

func TestFindLatestReturnsNewestRow(t *testing.T) {
	db := setupChargesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	older := models.AdminCharge{
		ID:                   uuid.New(),
		DeliveryCharge:       5000,
		VesselCharge:         3000,
		StaffChargePerPerson: 800,
		GuestsPerStaff:       50,
		ServiceChargePercent: 5,
	}
	newer := models.AdminCharge{
		ID:                   uuid.New(),
		DeliveryCharge:       6000,
		VesselCharge:         3500,
		StaffChargePerPerson: 900,
		GuestsPerStaff:       40,
		ServiceChargePercent: 6,
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	// backdate the first row so ordering is deterministic
	backdated := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.AdminCharge{}).
		Where("id = ?", older.ID).
		UpdateColumn("updated_at", backdated).Error)

	got, err := repo.FindLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.Equal(t, int64(6000), got.DeliveryCharge)
}

func TestFindLatestOnEmptyTable(t *testing.T) {
	db := setupChargesTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindLatest(context.Background())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaveRoundTrips(t *testing.T) {
	db := setupChargesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, &models.AdminCharge{
		ID:                   uuid.New(),
		DeliveryCharge:       5000,
		VesselCharge:         3000,
		StaffChargePerPerson: 800,
		GuestsPerStaff:       50,
		ServiceChargePercent: 5,
	})
	require.NoError(t, err)

	got, err := repo.FindLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
}
