package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/foodiecrew/catering-backend/api/routes"
	bookingsvc "github.com/foodiecrew/catering-backend/internal/booking"
	"github.com/foodiecrew/catering-backend/internal/charges"
	"github.com/foodiecrew/catering-backend/internal/menuitems"
	"github.com/foodiecrew/catering-backend/internal/orders"
	"github.com/foodiecrew/catering-backend/pkg/config"
	"github.com/foodiecrew/catering-backend/pkg/db"
	"github.com/foodiecrew/catering-backend/pkg/logger"
	"github.com/foodiecrew/catering-backend/pkg/migrate"
	"github.com/foodiecrew/catering-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	menuService, err := menuitems.NewService(menuitems.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create menu service", err)
		os.Exit(1)
	}

	chargesService, err := charges.NewService(charges.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create charges service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	sessionStore, err := bookingsvc.NewSessionStore(redisClient, cfg.Booking.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking session store", err)
		os.Exit(1)
	}

	bookingService, err := bookingsvc.NewService(
		sessionStore,
		menuService,
		chargesService,
		ordersService,
		redisClient,
		cfg.Booking.SessionTTL,
		cfg.Booking.MinGuestCount,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, menuService, chargesService, bookingService),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var closeErr error
		closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
		if err := <-errCh; err != nil && err != http.ErrServerClosed {
			closeErr = multierr.Append(closeErr, err)
		}
		if closeErr != nil {
			logg.Error(ctx, "api server shutdown with errors", closeErr)
			os.Exit(1)
		}
	}
}
