package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodiecrew/catering-backend/api/middleware"
	bookingsvc "github.com/foodiecrew/catering-backend/internal/booking"
	pkgerrors "github.com/foodiecrew/catering-backend/pkg/errors"
)

type stubBookingService struct {
	bookingsvc.Service

	session   *bookingsvc.Session
	fieldErrs map[string]string
	result    *bookingsvc.SubmitResult
	err       error

	lastGuestCount string
}

func (s *stubBookingService) Start(ctx context.Context, userID uuid.UUID) (*bookingsvc.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubBookingService) Get(ctx context.Context, sessionID string, userID uuid.UUID) (*bookingsvc.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubBookingService) SetGuestCount(ctx context.Context, sessionID string, userID uuid.UUID, raw string) (*bookingsvc.Session, error) {
	s.lastGuestCount = raw
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubBookingService) Next(ctx context.Context, sessionID string, userID uuid.UUID) (*bookingsvc.Session, map[string]string, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.session, s.fieldErrs, nil
}

func (s *stubBookingService) Submit(ctx context.Context, sessionID string, userID uuid.UUID) (*bookingsvc.SubmitResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestRouter(svc bookingsvc.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/sessions", SessionStart(svc, nil))
	r.Get("/sessions/{sessionId}", SessionFetch(svc, nil))
	r.Post("/sessions/{sessionId}/guests", SessionSetGuests(svc, nil))
	r.Post("/sessions/{sessionId}/next", SessionNext(svc, nil))
	r.Post("/sessions/{sessionId}/submit", SessionSubmit(svc, nil))
	return r
}

func authedRequest(method, target string, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func TestSessionStartReturnsTimeSlots(t *testing.T) {
	userID := uuid.New()
	svc := &stubBookingService{session: bookingsvc.NewSession(userID)}

	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, authedRequest("POST", "/sessions", "", userID))

	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data struct {
			Session struct {
				ID          string `json:"id"`
				CurrentStep string `json:"current_step"`
			} `json:"session"`
			TimeSlots []string `json:"time_slots"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "date", envelope.Data.Session.CurrentStep)
	assert.Len(t, envelope.Data.TimeSlots, 13)
}

func TestSessionStartRequiresIdentity(t *testing.T) {
	svc := &stubBookingService{session: bookingsvc.NewSession(uuid.New())}

	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest("POST", "/sessions", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionSetGuestsPassesRawString(t *testing.T) {
	userID := uuid.New()
	svc := &stubBookingService{session: bookingsvc.NewSession(userID)}

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/sessions/"+uuid.NewString()+"/guests", `{"guest_count":"50abc"}`, userID)
	newTestRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "50abc", svc.lastGuestCount)
}

func TestSessionNextSurfacesFieldErrors(t *testing.T) {
	userID := uuid.New()
	svc := &stubBookingService{
		session:   bookingsvc.NewSession(userID),
		fieldErrs: map[string]string{"guest_count": "minimum 50 guests required"},
	}

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/sessions/"+uuid.NewString()+"/next", "", userID)
	newTestRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(pkgerrors.CodeValidation), envelope.Error.Code)
	assert.Equal(t, "minimum 50 guests required", envelope.Error.Details["guest_count"])
}

func TestSessionSubmitMapsServiceErrors(t *testing.T) {
	userID := uuid.New()
	svc := &stubBookingService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "booking is not ready for submission")}

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/sessions/"+uuid.NewString()+"/submit", "", userID)
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSessionSubmitSuccessEnvelope(t *testing.T) {
	userID := uuid.New()
	session := bookingsvc.NewSession(userID)
	session.CreatedAt = time.Now().UTC()

	svc := &stubBookingService{result: &bookingsvc.SubmitResult{
		OrderID:     uuid.New(),
		TotalAmount: 19300,
		Breakdown:   bookingsvc.CostBreakdown{TotalAmount: 19300},
		Session:     session,
	}}

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/sessions/"+session.ID.String()+"/submit", "", userID)
	newTestRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data struct {
			TotalAmount int64 `json:"total_amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(19300), envelope.Data.TotalAmount)
}
