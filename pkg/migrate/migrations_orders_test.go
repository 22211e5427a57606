package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_orders.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no orders migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE",
		"CHECK (guest_count > 0)",
		"CHECK (total_amount >= 0)",
		"DROP TABLE IF EXISTS orders",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestAdminChargesMigrationSeedsDefaultRateSheet(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_admin_charges.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no admin_charges migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	// Seed column order is (delivery, vessel, staff, guests_per_staff, pct):
	// delivery is 3000 and vessel is 5000, not the other way around.
	checks := []string{
		"INSERT INTO admin_charges (delivery_charge, vessel_charge, staff_charge_per_person, guests_per_staff, service_charge_percent)",
		"VALUES (3000, 5000, 800, 50, 5)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrderItemsMigrationCascadesFromOrders(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_order_items.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no order_items migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS order_items",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"FOREIGN KEY (menu_item_id) REFERENCES menu_items(id)",
		"CHECK (quantity > 0)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
