package booking

import (
	"github.com/foodiecrew/catering-backend/pkg/enums"
	"github.com/google/uuid"
)

// MenuItemRef is the slice of the catalog a cart line carries: enough to
// render the cart and snapshot unit prices at submission.
type MenuItemRef struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Price    int64          `json:"price"`
	FoodType enums.FoodType `json:"food_type"`
}

// CartLine pairs a menu item with its per-guest quantity multiplier. The
// quantity is servings per guest, not an absolute plate count.
type CartLine struct {
	Item     MenuItemRef `json:"item"`
	Quantity int         `json:"quantity"`
}

// Cart holds the selected lines, at most one per menu item, in insertion
// order. All operations are total: they never fail, they just mutate or
// no-op.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add increments the line for the item by one, inserting it with quantity
// 1 when absent.
func (c *Cart) Add(item MenuItemRef) {
	for i := range c.Lines {
		if c.Lines[i].Item.ID == item.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{Item: item, Quantity: 1})
}

// Remove decrements the line for the item by one, deleting it when the
// quantity reaches zero. Absent items are a no-op.
func (c *Cart) Remove(itemID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].Item.ID != itemID {
			continue
		}
		if c.Lines[i].Quantity > 1 {
			c.Lines[i].Quantity--
			return
		}
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return
	}
}

// QuantityOf returns the current quantity for the item, zero when absent.
func (c *Cart) QuantityOf(itemID uuid.UUID) int {
	for i := range c.Lines {
		if c.Lines[i].Item.ID == itemID {
			return c.Lines[i].Quantity
		}
	}
	return 0
}

// TotalLineCount sums the quantities across all lines. This is the
// per-guest serving count, not total plates.
func (c *Cart) TotalLineCount() int {
	total := 0
	for i := range c.Lines {
		total += c.Lines[i].Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
