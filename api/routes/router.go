package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodiecrew/catering-backend/api/controllers"
	bookingcontrollers "github.com/foodiecrew/catering-backend/api/controllers/booking"
	"github.com/foodiecrew/catering-backend/api/middleware"
	bookingsvc "github.com/foodiecrew/catering-backend/internal/booking"
	"github.com/foodiecrew/catering-backend/internal/charges"
	"github.com/foodiecrew/catering-backend/internal/menuitems"
	"github.com/foodiecrew/catering-backend/pkg/config"
	"github.com/foodiecrew/catering-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	cacheP controllers.Pinger,
	menuService menuitems.Service,
	chargesService charges.Service,
	bookingService bookingsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cacheP))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.MenuList(menuService, logg))
		r.Get("/charges", controllers.ChargesFetch(chargesService, logg))

		r.Route("/booking", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", bookingcontrollers.SessionStart(bookingService, logg))

				r.Route("/{sessionId}", func(r chi.Router) {
					r.Get("/", bookingcontrollers.SessionFetch(bookingService, logg))
					r.Post("/date", bookingcontrollers.SessionSelectDate(bookingService, logg))
					r.Post("/items", bookingcontrollers.SessionAddItem(bookingService, logg))
					r.Delete("/items/{menuItemId}", bookingcontrollers.SessionRemoveItem(bookingService, logg))
					r.Post("/guests", bookingcontrollers.SessionSetGuests(bookingService, logg))
					r.Post("/details", bookingcontrollers.SessionSetDetails(bookingService, logg))
					r.Post("/next", bookingcontrollers.SessionNext(bookingService, logg))
					r.Post("/prev", bookingcontrollers.SessionPrev(bookingService, logg))
					r.Post("/reset", bookingcontrollers.SessionReset(bookingService, logg))
					r.Get("/quote", bookingcontrollers.SessionQuote(bookingService, logg))
					r.Post("/submit", bookingcontrollers.SessionSubmit(bookingService, logg))
				})
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Put("/charges", controllers.ChargesUpdate(chargesService, logg))
	})

	return r
}
