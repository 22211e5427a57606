package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/foodiecrew/catering-backend/pkg/errors"
	"github.com/google/uuid"
)

// Step identifies one stage of the checkout flow.
type Step string

const (
	StepDate    Step = "date"
	StepMenu    Step = "menu"
	StepDetails Step = "details"
	StepConfirm Step = "confirm"
)

// stepOrder is the strict linear progression. confirm is terminal and only
// reachable through submission.
var stepOrder = []Step{StepDate, StepMenu, StepDetails, StepConfirm}

// MinGuestCount is the smallest bookable party size, used whenever the
// caller supplies no positive override.
const MinGuestCount = 50

var (
	digitsOnlyRe = regexp.MustCompile(`^[0-9]+$`)
	phoneRe      = regexp.MustCompile(`^[0-9]{10}$`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// CustomerDetails is the transient contact block captured on the details
// step. It becomes a Customer row only at submission.
type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Session is the server-side booking state: one per customer flow, stored
// in Redis between requests. GuestCount stays a raw string until validated
// so non-numeric input is rejected rather than silently truncated.
type Session struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	CurrentStep Step            `json:"current_step"`
	EventDate   *time.Time      `json:"event_date,omitempty"`
	TimeSlot    string          `json:"time_slot,omitempty"`
	Cart        Cart            `json:"cart"`
	GuestCount  string          `json:"guest_count,omitempty"`
	Details     CustomerDetails `json:"details"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewSession starts a fresh flow on the date step for the given user.
func NewSession(userID uuid.UUID) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          uuid.New(),
		UserID:      userID,
		CurrentStep: StepDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// GuestCountValue parses the raw guest count, returning zero when it is
// not a clean number.
func (s *Session) GuestCountValue() int {
	if !digitsOnlyRe.MatchString(s.GuestCount) {
		return 0
	}
	n, err := strconv.Atoi(s.GuestCount)
	if err != nil {
		return 0
	}
	return n
}

// Next validates the current step and advances on success. The returned
// map carries every violated field at once and is rebuilt from scratch on
// each call. Entry into confirm is reserved for submission.
func (s *Session) Next(minGuests int) (map[string]string, error) {
	switch s.CurrentStep {
	case StepConfirm:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "booking is already confirmed")
	case StepDetails:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "confirmation requires submitting the booking")
	}

	if errs := s.ValidateStep(s.CurrentStep, minGuests); len(errs) > 0 {
		return errs, nil
	}

	for i, step := range stepOrder {
		if step == s.CurrentStep {
			s.CurrentStep = stepOrder[i+1]
			break
		}
	}
	return nil, nil
}

// Prev moves one step back without validating or clearing anything. The
// date step has nowhere to go and confirm is terminal.
func (s *Session) Prev() error {
	switch s.CurrentStep {
	case StepDate:
		return nil
	case StepConfirm:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "confirmed booking cannot go back; reset to start over")
	}

	for i, step := range stepOrder {
		if step == s.CurrentStep {
			s.CurrentStep = stepOrder[i-1]
			break
		}
	}
	return nil
}

// Reset clears every piece of session-scoped data and returns to the date
// step.
func (s *Session) Reset() {
	s.CurrentStep = StepDate
	s.EventDate = nil
	s.TimeSlot = ""
	s.Cart = Cart{}
	s.GuestCount = ""
	s.Details = CustomerDetails{}
	s.UpdatedAt = time.Now().UTC()
}

// confirmSubmission moves the machine into its terminal state. Only the
// submission path calls this.
func (s *Session) confirmSubmission() {
	s.CurrentStep = StepConfirm
	s.UpdatedAt = time.Now().UTC()
}

// ValidateStep reproduces the per-step rules. Every violated field is
// reported; nothing is accumulated across calls. minGuests below one
// falls back to MinGuestCount.
func (s *Session) ValidateStep(step Step, minGuests int) map[string]string {
	if minGuests <= 0 {
		minGuests = MinGuestCount
	}
	errs := map[string]string{}

	switch step {
	case StepDate:
		if s.EventDate == nil {
			errs["event_date"] = "please select an event date"
		}
		if s.TimeSlot == "" {
			errs["time_slot"] = "please select a time slot"
		} else if !IsValidTimeSlot(s.TimeSlot) {
			errs["time_slot"] = "please select a valid time slot"
		}

	case StepMenu:
		if s.Cart.IsEmpty() {
			errs["items"] = "please add at least one menu item"
		}
		switch {
		case s.GuestCount == "":
			errs["guest_count"] = "please enter the guest count"
		case !digitsOnlyRe.MatchString(s.GuestCount):
			errs["guest_count"] = "guest count must contain digits only"
		default:
			if n, _ := strconv.Atoi(s.GuestCount); n < minGuests {
				errs["guest_count"] = fmt.Sprintf("minimum %d guests required", minGuests)
			}
		}

	case StepDetails:
		if len(strings.TrimSpace(s.Details.Name)) < 3 {
			errs["name"] = "name must be at least 3 characters"
		}
		if !phoneRe.MatchString(s.Details.Phone) {
			errs["phone"] = "phone must be exactly 10 digits"
		}
		if !emailRe.MatchString(s.Details.Email) {
			errs["email"] = "please enter a valid email address"
		}
		if strings.TrimSpace(s.Details.Address) == "" {
			errs["address"] = "address is required"
		}
	}

	return errs
}
