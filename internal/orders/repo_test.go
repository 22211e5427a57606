package orders

import (
	"context"
	"testing"
	"time"

	"github.com/foodiecrew/catering-backend/pkg/db/models"
	"github.com/foodiecrew/catering-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T, withOrderItems bool) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	customers := `
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  address TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  event_name TEXT NOT NULL,
  event_location TEXT NOT NULL,
  event_date DATETIME NOT NULL,
  guest_count INTEGER NOT NULL,
  total_amount INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  menu_item_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(customers).Error)
	require.NoError(t, db.Exec(orders).Error)
	if withOrderItems {
		require.NoError(t, db.Exec(orderItems).Error)
	}
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, repo Repository) *models.Order {
	t.Helper()
	ctx := context.Background()

	customer, err := repo.CreateCustomer(ctx, &models.Customer{
		ID:      uuid.New(),
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "12 MG Road",
	})
	require.NoError(t, err)

	order, err := repo.CreateOrder(ctx, &models.Order{
		ID:            uuid.New(),
		CustomerID:    customer.ID,
		EventName:     "Catering Event",
		EventLocation: "12 MG Road",
		EventDate:     time.Date(2026, 10, 12, 18, 0, 0, 0, time.UTC),
		GuestCount:    100,
		TotalAmount:   50000,
		Status:        enums.OrderStatusPending,
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrderWithItems(t *testing.T) {
	db := setupOrdersTestDB(t, true)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, repo)

	err := repo.CreateOrderItems(ctx, []models.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, MenuItemID: uuid.New(), Quantity: 100, Price: 25000},
		{ID: uuid.New(), OrderID: order.ID, MenuItemID: uuid.New(), Quantity: 200, Price: 30000},
	})
	require.NoError(t, err)

	got, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, enums.OrderStatusPending, got.Status)
}

func TestCreateOrderItemsNoopOnEmpty(t *testing.T) {
	db := setupOrdersTestDB(t, true)
	repo := NewRepository(db)

	require.NoError(t, repo.CreateOrderItems(context.Background(), nil))
}

func TestFindOrderByIDMissing(t *testing.T) {
	db := setupOrdersTestDB(t, true)
	repo := NewRepository(db)

	_, err := repo.FindOrderByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
