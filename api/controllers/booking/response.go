package booking

import (
	"time"

	bookingsvc "github.com/foodiecrew/catering-backend/internal/booking"
)

type cartLineResponse struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	FoodType   string `json:"food_type"`
	Quantity   int    `json:"quantity"`
}

type sessionResponse struct {
	ID          string                     `json:"id"`
	CurrentStep string                     `json:"current_step"`
	EventDate   *string                    `json:"event_date,omitempty"`
	TimeSlot    string                     `json:"time_slot,omitempty"`
	Cart        []cartLineResponse         `json:"cart"`
	GuestCount  string                     `json:"guest_count,omitempty"`
	Details     bookingsvc.CustomerDetails `json:"details"`
	CreatedAt   time.Time                  `json:"created_at"`
}

func newSessionResponse(s *bookingsvc.Session) sessionResponse {
	out := sessionResponse{
		ID:          s.ID.String(),
		CurrentStep: string(s.CurrentStep),
		TimeSlot:    s.TimeSlot,
		GuestCount:  s.GuestCount,
		Details:     s.Details,
		CreatedAt:   s.CreatedAt,
		Cart:        make([]cartLineResponse, 0, len(s.Cart.Lines)),
	}
	if s.EventDate != nil {
		formatted := s.EventDate.Format(eventDateLayout)
		out.EventDate = &formatted
	}
	for _, line := range s.Cart.Lines {
		out.Cart = append(out.Cart, cartLineResponse{
			MenuItemID: line.Item.ID.String(),
			Name:       line.Item.Name,
			Price:      line.Item.Price,
			FoodType:   string(line.Item.FoodType),
			Quantity:   line.Quantity,
		})
	}
	return out
}

type startSessionResponse struct {
	Session   sessionResponse `json:"session"`
	TimeSlots []string        `json:"time_slots"`
}

type submitResponse struct {
	OrderID     string                   `json:"order_id"`
	TotalAmount int64                    `json:"total_amount"`
	Breakdown   bookingsvc.CostBreakdown `json:"breakdown"`
	Session     sessionResponse          `json:"session"`
}
