package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foodiecrew/catering-backend/internal/charges"
	"github.com/foodiecrew/catering-backend/internal/orders"
	"github.com/foodiecrew/catering-backend/pkg/db/models"
	pkgerrors "github.com/foodiecrew/catering-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// menuCatalog resolves menu items for cart operations.
type menuCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

// chargeProvider supplies the current rate sheet. It never fails; missing
// or unreachable configuration falls back to defaults upstream.
type chargeProvider interface {
	Current(ctx context.Context) (charges.Config, error)
}

// orderSubmitter persists a confirmed booking.
type orderSubmitter interface {
	SubmitBooking(ctx context.Context, input orders.SubmitInput) (*orders.Summary, error)
}

// submissionGuard prevents double-submission of one session.
type submissionGuard interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	SubmissionGuardKey(sessionID string) string
}

// SubmitResult is returned once a booking has been persisted and the
// session has entered its terminal step.
type SubmitResult struct {
	OrderID     uuid.UUID     `json:"order_id"`
	TotalAmount int64         `json:"total_amount"`
	Breakdown   CostBreakdown `json:"breakdown"`
	Session     *Session      `json:"session"`
}

// Service drives the whole checkout flow: session lifecycle, cart edits,
// step navigation, quoting, and submission.
type Service interface {
	Start(ctx context.Context, userID uuid.UUID) (*Session, error)
	Get(ctx context.Context, sessionID string, userID uuid.UUID) (*Session, error)
	SelectDate(ctx context.Context, sessionID string, userID uuid.UUID, date time.Time, slot string) (*Session, error)
	AddItem(ctx context.Context, sessionID string, userID uuid.UUID, menuItemID uuid.UUID) (*Session, error)
	RemoveItem(ctx context.Context, sessionID string, userID uuid.UUID, menuItemID uuid.UUID) (*Session, error)
	SetGuestCount(ctx context.Context, sessionID string, userID uuid.UUID, raw string) (*Session, error)
	SetDetails(ctx context.Context, sessionID string, userID uuid.UUID, details CustomerDetails) (*Session, error)
	Next(ctx context.Context, sessionID string, userID uuid.UUID) (*Session, map[string]string, error)
	Prev(ctx context.Context, sessionID string, userID uuid.UUID) (*Session, error)
	Reset(ctx context.Context, sessionID string, userID uuid.UUID) (*Session, error)
	Quote(ctx context.Context, sessionID string, userID uuid.UUID) (*CostBreakdown, error)
	Submit(ctx context.Context, sessionID string, userID uuid.UUID) (*SubmitResult, error)
}

type service struct {
	store     SessionStore
	catalog   menuCatalog
	charges   chargeProvider
	orders    orderSubmitter
	guard     submissionGuard
	guardTTL  time.Duration
	minGuests int
}

// NewService builds the booking service with the required collaborators.
// minGuestCount overrides the smallest bookable party size; zero or
// negative keeps the built-in minimum.
func NewService(store SessionStore, catalog menuCatalog, charges chargeProvider, orders orderSubmitter, guard submissionGuard, guardTTL time.Duration, minGuestCount int) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("menu catalog required")
	}
	if charges == nil {
		return nil, fmt.Errorf("charge provider required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	if guard == nil {
		return nil, fmt.Errorf("submission guard required")
	}
	if guardTTL <= 0 {
		return nil, fmt.Errorf("submission guard ttl must be positive")
	}
	if minGuestCount <= 0 {
		minGuestCount = MinGuestCount
	}
	return &service{
		store:     store,
		catalog:   catalog,
		charges:   charges,
		orders:    orders,
		guard:     guard,
		guardTTL:  guardTTL,
		minGuests: minGuestCount,
	}, nil
}

func (s *service) Start(ctx context.Context, userID uuid.UUID) (*Session, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	session := NewSession(userID)
	if err := s.store.Create(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating booking session")
	}
	return session, nil
}

func (s *service) Get(ctx context.Context, sessionID string, userID uuid.UUID) (*Session, error) {
	return s.load(ctx, sessionID, userID)
}

func (s *service) SelectDate(ctx context.Context, sessionID string, userID uuid.UUID, date time.Time, slot string) (*Session, error) {
	session, err := s.loadMutable(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	details := map[string]string{}
	if date.IsZero() {
		details["event_date"] = "please select an event date"
	}
	if !IsValidTimeSlot(slot) {
		details["time_slot"] = "please select a valid time slot"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date selection").WithDetails(details)
	}

	session.EventDate = &date
	session.TimeSlot = slot
	return s.save(ctx, session)
}

func (s *service) AddItem(ctx context.Context, sessionID string, userID uuid.UUID, menuItemID uuid.UUID) (*Session, error) {
	session, err := s.loadMutable(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if menuItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id required")
	}

	item, err := s.catalog.Get(ctx, menuItemID)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
			return nil, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading menu item")
	}
	if !item.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "menu item is not available")
	}

	session.Cart.Add(MenuItemRef{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		FoodType: item.FoodType,
	})
	return s.save(ctx, session)
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, userID uuid.UUID, menuItemID uuid.UUID) (*Session, error) {
	session, err := s.loadMutable(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.Cart.Remove(menuItemID)
	return s.save(ctx, session)
}

func (s *service) SetGuestCount(ctx context.Context, sessionID string, userID uuid.UUID, raw string) (*Session, error) {
	session, err := s.loadMutable(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	// stored raw; the menu step validator owns digits-only and the minimum
	session.GuestCount = raw
	return s.save(ctx, session)
}

func (s *service) SetDetails(ctx context.Context, sessionID string, userID uuid.UUID, details CustomerDetails) (*Session, error) {
	session, err := s.loadMutable(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.Details = details
	return s.save(ctx, session)
}

func (s *service) Next(ctx context.Context, sessionID string, userID uuid.UUID) (*Session, map[string]string, error) {
	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, nil, err
	}

	fieldErrs, err := session.Next(s.minGuests)
	if err != nil {
		return nil, nil, err
	}
	if len(fieldErrs) > 0 {
		return session, fieldErrs, nil
	}

	saved, err := s.save(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	return saved, nil, nil
}

func (s *service) Prev(ctx context.Context, sessionID string, userID uuid.UUID) (*Session, error) {
	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := session.Prev(); err != nil {
		return nil, err
	}
	return s.save(ctx, session)
}

func (s *service) Reset(ctx context.Context, sessionID string, userID uuid.UUID) (*Session, error) {
	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.Reset()
	// a reset session may be submitted again
	if err := s.guard.Del(ctx, s.guard.SubmissionGuardKey(session.ID.String())); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing submission guard")
	}
	return s.save(ctx, session)
}

func (s *service) Quote(ctx context.Context, sessionID string, userID uuid.UUID) (*CostBreakdown, error) {
	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.charges.Current(ctx)
	if err != nil {
		// the provider already falls back to defaults; treat a hard
		// failure the same way so quoting never breaks the flow
		cfg = charges.Defaults()
	}

	breakdown := Quote(session.Cart, session.GuestCountValue(), cfg)
	return &breakdown, nil
}

// Submit persists the booking and moves the session to confirm. On any
// failure the session stays on its current step so the customer can retry.
func (s *service) Submit(ctx context.Context, sessionID string, userID uuid.UUID) (*SubmitResult, error) {
	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if session.CurrentStep == StepConfirm {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "booking is already confirmed")
	}
	if session.CurrentStep != StepDetails {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "booking is not ready for submission")
	}

	// every violated field across all steps at once, nothing stale
	fieldErrs := map[string]string{}
	for _, step := range []Step{StepDate, StepMenu, StepDetails} {
		for field, msg := range session.ValidateStep(step, s.minGuests) {
			fieldErrs[field] = msg
		}
	}
	if len(fieldErrs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking is incomplete").WithDetails(fieldErrs)
	}

	eventDate, err := MergeEventDate(*session.EventDate, session.TimeSlot)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid time slot").
			WithDetails(map[string]string{"time_slot": "please select a valid time slot"})
	}

	guardKey := s.guard.SubmissionGuardKey(session.ID.String())
	acquired, err := s.guard.SetNX(ctx, guardKey, "1", s.guardTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquiring submission guard")
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeIdempotency, "booking submission already in progress")
	}

	cfg, err := s.charges.Current(ctx)
	if err != nil {
		cfg = charges.Defaults()
	}

	guestCount := session.GuestCountValue()
	breakdown := Quote(session.Cart, guestCount, cfg)

	lines := make([]orders.Line, 0, len(session.Cart.Lines))
	for _, line := range session.Cart.Lines {
		lines = append(lines, orders.Line{
			MenuItemID: line.Item.ID,
			UnitPrice:  line.Item.Price,
			Quantity:   line.Quantity,
		})
	}

	notes := "Time: " + session.TimeSlot
	summary, err := s.orders.SubmitBooking(ctx, orders.SubmitInput{
		CustomerName:    session.Details.Name,
		CustomerEmail:   session.Details.Email,
		CustomerPhone:   session.Details.Phone,
		CustomerAddress: session.Details.Address,
		EventName:       "Catering for " + session.Details.Name,
		EventLocation:   session.Details.Address,
		EventDate:       eventDate,
		GuestCount:      guestCount,
		TotalAmount:     breakdown.TotalAmount,
		Notes:           &notes,
		Lines:           lines,
	})
	if err != nil {
		// release the guard so the customer can retry from details
		_ = s.guard.Del(ctx, guardKey)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submitting booking")
	}

	session.confirmSubmission()
	if _, err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return &SubmitResult{
		OrderID:     summary.OrderID,
		TotalAmount: summary.TotalAmount,
		Breakdown:   breakdown,
		Session:     session,
	}, nil
}

func (s *service) load(ctx context.Context, sessionID string, userID uuid.UUID) (*Session, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking session not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading booking session")
	}
	if session.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "booking session belongs to another user")
	}
	return session, nil
}

// loadMutable rejects edits on a confirmed session.
func (s *service) loadMutable(ctx context.Context, sessionID string, userID uuid.UUID) (*Session, error) {
	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.CurrentStep == StepConfirm {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "confirmed booking cannot be modified; reset to start over")
	}
	return session, nil
}

func (s *service) save(ctx context.Context, session *Session) (*Session, error) {
	if err := s.store.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving booking session")
	}
	return session, nil
}
