package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foodiecrew/catering-backend/internal/charges"
	"github.com/foodiecrew/catering-backend/internal/orders"
	"github.com/foodiecrew/catering-backend/pkg/db/models"
	"github.com/foodiecrew/catering-backend/pkg/enums"
	pkgerrors "github.com/foodiecrew/catering-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessionStore struct {
	sessions map[string]Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]Session{}}
}

func (m *memSessionStore) Create(ctx context.Context, session *Session) error {
	m.sessions[session.ID.String()] = *session
	return nil
}

func (m *memSessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := s
	return &copied, nil
}

func (m *memSessionStore) Save(ctx context.Context, session *Session) error {
	m.sessions[session.ID.String()] = *session
	return nil
}

func (m *memSessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

type stubCatalog struct {
	items map[uuid.UUID]models.MenuItem
	err   error
}

func (s *stubCatalog) Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	item, ok := s.items[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	return &item, nil
}

type stubChargeProvider struct {
	cfg charges.Config
	err error
}

func (s *stubChargeProvider) Current(ctx context.Context) (charges.Config, error) {
	if s.err != nil {
		return charges.Config{}, s.err
	}
	return s.cfg, nil
}

type stubOrderSubmitter struct {
	lastInput *orders.SubmitInput
	summary   *orders.Summary
	err       error
}

func (s *stubOrderSubmitter) SubmitBooking(ctx context.Context, input orders.SubmitInput) (*orders.Summary, error) {
	s.lastInput = &input
	if s.err != nil {
		return nil, s.err
	}
	if s.summary != nil {
		return s.summary, nil
	}
	return &orders.Summary{
		OrderID:     uuid.New(),
		CustomerID:  uuid.New(),
		TotalAmount: input.TotalAmount,
		Status:      enums.OrderStatusPending,
		ItemCount:   len(input.Lines),
	}, nil
}

type stubGuard struct {
	held   map[string]bool
	setErr error
}

func newStubGuard() *stubGuard {
	return &stubGuard{held: map[string]bool{}}
}

func (s *stubGuard) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if s.setErr != nil {
		return false, s.setErr
	}
	if s.held[key] {
		return false, nil
	}
	s.held[key] = true
	return true, nil
}

func (s *stubGuard) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.held, key)
	}
	return nil
}

func (s *stubGuard) SubmissionGuardKey(sessionID string) string {
	return "foodie:submission:" + sessionID
}

type serviceFixture struct {
	svc     Service
	store   *memSessionStore
	catalog *stubCatalog
	charges *stubChargeProvider
	orders  *stubOrderSubmitter
	guard   *stubGuard
	userID  uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		store:   newMemSessionStore(),
		catalog: &stubCatalog{items: map[uuid.UUID]models.MenuItem{}},
		charges: &stubChargeProvider{cfg: testChargeConfig()},
		orders:  &stubOrderSubmitter{},
		guard:   newStubGuard(),
		userID:  uuid.New(),
	}
	svc, err := NewService(f.store, f.catalog, f.charges, f.orders, f.guard, time.Hour, MinGuestCount)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *serviceFixture) addCatalogItem(name string, price int64, available bool) models.MenuItem {
	item := models.MenuItem{
		ID:          uuid.New(),
		Name:        name,
		Price:       price,
		FoodType:    enums.FoodTypeVeg,
		IsAvailable: available,
	}
	f.catalog.items[item.ID] = item
	return item
}

// seedDetailsSession plants a fully valid session sitting on the details
// step, ready for submission.
func (f *serviceFixture) seedDetailsSession(t *testing.T) *Session {
	t.Helper()

	session := NewSession(f.userID)
	validDateStep(session)
	item := f.addCatalogItem("Paneer Tikka", 100, true)
	session.Cart.Add(MenuItemRef{ID: item.ID, Name: item.Name, Price: item.Price, FoodType: item.FoodType})
	session.Cart.Add(MenuItemRef{ID: item.ID, Name: item.Name, Price: item.Price, FoodType: item.FoodType})
	session.GuestCount = "50"
	validDetailsStep(session)
	session.CurrentStep = StepDetails
	require.NoError(t, f.store.Create(context.Background(), session))
	return session
}

func TestStartCreatesSessionOnDateStep(t *testing.T) {
	f := newServiceFixture(t)

	session, err := f.svc.Start(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, StepDate, session.CurrentStep)

	got, err := f.svc.Get(context.Background(), session.ID.String(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}

func TestStartRequiresIdentity(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Start(context.Background(), uuid.Nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestGetEnforcesOwnership(t *testing.T) {
	f := newServiceFixture(t)
	session, err := f.svc.Start(context.Background(), f.userID)
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), session.ID.String(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestAddItemResolvesCatalog(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	session, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)

	item := f.addCatalogItem("Biryani", 30000, true)

	updated, err := f.svc.AddItem(ctx, session.ID.String(), f.userID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Cart.QuantityOf(item.ID))
	assert.Equal(t, int64(30000), updated.Cart.Lines[0].Item.Price)

	updated, err = f.svc.AddItem(ctx, session.ID.String(), f.userID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Cart.QuantityOf(item.ID))
}

func TestAddItemRejectsUnavailable(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	session, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)

	item := f.addCatalogItem("Off Menu", 90000, false)

	_, err = f.svc.AddItem(ctx, session.ID.String(), f.userID, item.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestAddItemMapsCatalogOutage(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	session, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)

	f.catalog.err = errors.New("catalog unreachable")

	_, err = f.svc.AddItem(ctx, session.ID.String(), f.userID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	session, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)

	updated, err := f.svc.RemoveItem(ctx, session.ID.String(), f.userID, uuid.New())
	require.NoError(t, err)
	assert.True(t, updated.Cart.IsEmpty())
}

func TestNextSurfacesFieldErrors(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	session, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)

	got, fieldErrs, err := f.svc.Next(ctx, session.ID.String(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, StepDate, got.CurrentStep)
	assert.Contains(t, fieldErrs, "event_date")
	assert.Contains(t, fieldErrs, "time_slot")
}

func TestNextUsesConfiguredMinimumGuestCount(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	svc, err := NewService(f.store, f.catalog, f.charges, f.orders, f.guard, time.Hour, 10)
	require.NoError(t, err)

	session, err := svc.Start(ctx, f.userID)
	require.NoError(t, err)
	validDateStep(session)
	session.CurrentStep = StepMenu
	session.Cart.Add(itemRef("Biryani", 30000))
	session.GuestCount = "12"
	require.NoError(t, f.store.Save(ctx, session))

	got, fieldErrs, err := svc.Next(ctx, session.ID.String(), f.userID)
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)
	assert.Equal(t, StepDetails, got.CurrentStep)
}

func TestQuoteUsesChargeSheet(t *testing.T) {
	f := newServiceFixture(t)
	session := f.seedDetailsSession(t)

	breakdown, err := f.svc.Quote(context.Background(), session.ID.String(), f.userID)
	require.NoError(t, err)

	// 100 x 2 x 50 guests
	assert.Equal(t, int64(10000), breakdown.FoodCost)
	assert.Equal(t, int64(19300), breakdown.TotalAmount)
}

func TestQuoteFallsBackToDefaultsOnChargeFailure(t *testing.T) {
	f := newServiceFixture(t)
	f.charges.err = errors.New("charge sheet unreachable")
	session := f.seedDetailsSession(t)

	breakdown, err := f.svc.Quote(context.Background(), session.ID.String(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(19300), breakdown.TotalAmount)
}

func TestSubmitHappyPath(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	session := f.seedDetailsSession(t)

	result, err := f.svc.Submit(ctx, session.ID.String(), f.userID)
	require.NoError(t, err)

	assert.Equal(t, int64(19300), result.TotalAmount)
	assert.Equal(t, StepConfirm, result.Session.CurrentStep)

	input := f.orders.lastInput
	require.NotNil(t, input)
	assert.Equal(t, "Catering for Asha Rao", input.EventName)
	assert.Equal(t, "12 MG Road", input.EventLocation)
	assert.Equal(t, 50, input.GuestCount)
	require.NotNil(t, input.Notes)
	assert.Equal(t, "Time: 07:00 PM", *input.Notes)
	assert.Equal(t, 19, input.EventDate.Hour())
	require.Len(t, input.Lines, 1)
	assert.Equal(t, 2, input.Lines[0].Quantity)

	persisted, err := f.svc.Get(ctx, session.ID.String(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, StepConfirm, persisted.CurrentStep)
}

func TestSubmitFailureStaysOnDetailsAndAllowsRetry(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	session := f.seedDetailsSession(t)

	f.orders.err = errors.New("insert failed")
	_, err := f.svc.Submit(ctx, session.ID.String(), f.userID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())

	persisted, err := f.svc.Get(ctx, session.ID.String(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, StepDetails, persisted.CurrentStep)

	// guard was released, so a retry goes through
	f.orders.err = nil
	result, err := f.svc.Submit(ctx, session.ID.String(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, StepConfirm, result.Session.CurrentStep)
}

func TestSubmitDuplicateGuard(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	session := f.seedDetailsSession(t)

	f.guard.held[f.guard.SubmissionGuardKey(session.ID.String())] = true

	_, err := f.svc.Submit(ctx, session.ID.String(), f.userID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeIdempotency, pkgerrors.As(err).Code())
}

func TestSubmitRequiresDetailsStep(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	session, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, session.ID.String(), f.userID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestSubmitValidatesAllStepsAtOnce(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	session := NewSession(f.userID)
	session.CurrentStep = StepDetails
	require.NoError(t, f.store.Create(ctx, session))

	_, err := f.svc.Submit(ctx, session.ID.String(), f.userID)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	details, ok := appErr.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "event_date")
	assert.Contains(t, details, "items")
	assert.Contains(t, details, "name")
}

func TestConfirmedSessionRejectsEdits(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	session := f.seedDetailsSession(t)

	_, err := f.svc.Submit(ctx, session.ID.String(), f.userID)
	require.NoError(t, err)

	_, err = f.svc.SetGuestCount(ctx, session.ID.String(), f.userID, "80")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	_, err = f.svc.Submit(ctx, session.ID.String(), f.userID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestResetClearsSessionAndGuard(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	session := f.seedDetailsSession(t)

	_, err := f.svc.Submit(ctx, session.ID.String(), f.userID)
	require.NoError(t, err)

	reset, err := f.svc.Reset(ctx, session.ID.String(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, StepDate, reset.CurrentStep)
	assert.True(t, reset.Cart.IsEmpty())
	assert.Empty(t, f.guard.held)
}
