package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foodiecrew/catering-backend/api/middleware"
	"github.com/foodiecrew/catering-backend/api/responses"
	"github.com/foodiecrew/catering-backend/api/validators"
	bookingsvc "github.com/foodiecrew/catering-backend/internal/booking"
	pkgerrors "github.com/foodiecrew/catering-backend/pkg/errors"
	"github.com/foodiecrew/catering-backend/pkg/logger"
)

// SessionStart opens a new booking flow for the authenticated user.
func SessionStart(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Start(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, startSessionResponse{
			Session:   newSessionResponse(session),
			TimeSlots: bookingsvc.TimeSlots(),
		})
	}
}

// SessionFetch returns the current session state.
func SessionFetch(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Get(r.Context(), chi.URLParam(r, "sessionId"), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

// SessionSelectDate stores the event date and time slot.
func SessionSelectDate(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload selectDateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := payload.parsedDate()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid date selection").
				WithDetails(map[string]string{"event_date": "must be formatted YYYY-MM-DD"}))
			return
		}

		session, err := svc.SelectDate(r.Context(), chi.URLParam(r, "sessionId"), userID, date, payload.TimeSlot)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

// SessionAddItem adds one serving of a menu item to the cart.
func SessionAddItem(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		menuItemID, err := uuid.Parse(payload.MenuItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid menu item id"))
			return
		}

		session, err := svc.AddItem(r.Context(), chi.URLParam(r, "sessionId"), userID, menuItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

// SessionRemoveItem removes one serving of a menu item from the cart.
func SessionRemoveItem(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		menuItemID, err := uuid.Parse(chi.URLParam(r, "menuItemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid menu item id"))
			return
		}

		session, err := svc.RemoveItem(r.Context(), chi.URLParam(r, "sessionId"), userID, menuItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

// SessionSetGuests stores the raw guest count input.
func SessionSetGuests(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setGuestsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.SetGuestCount(r.Context(), chi.URLParam(r, "sessionId"), userID, payload.GuestCount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

// SessionSetDetails stores the customer contact block.
func SessionSetDetails(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setDetailsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.SetDetails(r.Context(), chi.URLParam(r, "sessionId"), userID, bookingsvc.CustomerDetails{
			Name:    payload.Name,
			Phone:   payload.Phone,
			Email:   payload.Email,
			Address: payload.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

// SessionNext validates the current step and advances. Field violations
// come back as a validation error keyed by field.
func SessionNext(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, fieldErrs, err := svc.Next(r.Context(), chi.URLParam(r, "sessionId"), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(fieldErrs) > 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "step validation failed").WithDetails(fieldErrs))
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

// SessionPrev moves one step back without validation.
func SessionPrev(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Prev(r.Context(), chi.URLParam(r, "sessionId"), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

// SessionReset clears the session back to the date step.
func SessionReset(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Reset(r.Context(), chi.URLParam(r, "sessionId"), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

// SessionQuote returns the current cost breakdown.
func SessionQuote(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		breakdown, err := svc.Quote(r.Context(), chi.URLParam(r, "sessionId"), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, breakdown)
	}
}

// SessionSubmit persists the booking and confirms the session.
func SessionSubmit(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), chi.URLParam(r, "sessionId"), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, submitResponse{
			OrderID:     result.OrderID.String(),
			TotalAmount: result.TotalAmount,
			Breakdown:   result.Breakdown,
			Session:     newSessionResponse(result.Session),
		})
	}
}

func userIDFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}
