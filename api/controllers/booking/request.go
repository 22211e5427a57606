package booking

import "time"

const eventDateLayout = "2006-01-02"

type selectDateRequest struct {
	EventDate string `json:"event_date" validate:"required"`
	TimeSlot  string `json:"time_slot" validate:"required"`
}

func (r selectDateRequest) parsedDate() (time.Time, error) {
	return time.Parse(eventDateLayout, r.EventDate)
}

type addItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
}

type setGuestsRequest struct {
	// raw string on purpose: the menu step validator owns digits-only
	// rejection, so nothing may coerce the value before it
	GuestCount string `json:"guest_count" validate:"required"`
}

type setDetailsRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Address string `json:"address" validate:"required"`
}
