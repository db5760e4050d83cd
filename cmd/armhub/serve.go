package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/config"
	"github.com/iliyamo/armhub-seatdesk/internal/database"
	"github.com/iliyamo/armhub-seatdesk/internal/handler"
	"github.com/iliyamo/armhub-seatdesk/internal/live"
	"github.com/iliyamo/armhub-seatdesk/internal/middleware"
	"github.com/iliyamo/armhub-seatdesk/internal/router"
	"github.com/iliyamo/armhub-seatdesk/internal/service"
)

var (
	serveInMemory bool
	serveMigrate  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the seat desk HTTP API.

With --in-memory all data lives in the process and is lost on exit, which
is handy for demos and local frontend work.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveInMemory, "in-memory", false, "keep all data in process memory instead of MySQL")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if cfg.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, serveInMemory)
	if err != nil {
		return err
	}
	defer st.close()
	if serveMigrate && st.db != nil {
		if err := database.Migrate(st.db, database.MigrateUp, log); err != nil {
			return err
		}
	}

	hub := live.NewHub()
	var notifier live.Notifier = hub
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		bridge := live.NewRedisBridge(hub, rdb, cfg.Redis.Channel, log)
		notifier = bridge
		go func() {
			if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("seat change bridge stopped", zap.Error(err))
			}
		}()
	} else {
		log.Info("redis unavailable, live updates stay within this instance")
	}

	events := publisher(cfg, log)
	caps := cfg.Capacities()
	loc := cfg.Location()

	reaper := &service.Reaper{
		Enabled:  cfg.Reaper.Enabled,
		Interval: cfg.Reaper.Interval,
		Bookings: st.bookings,
		Location: loc,
		Notifier: notifier,
		Events:   events,
		Log:      log,
	}
	go reaper.Run(ctx)

	newsCache := middleware.NewResponseCache(cfg.Cache, rdb, log)
	deps := router.Deps{
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
		Auth: handler.NewAuthHandler(&service.Staff{
			Users:        st.users,
			JWTSecret:    cfg.JWT.Secret,
			AccessTTLMin: cfg.JWT.AccessTTLMin,
			BcryptCost:   cfg.BcryptCost,
			IsAdminEmail: cfg.IsAdminEmail,
			Log:          log,
		}),
		Seats: &handler.SeatHandler{
			Maps: &service.SeatMaps{Bookings: st.bookings, Metadata: st.metadata, Capacities: caps, Log: log},
			Reservations: &service.Reservations{
				Bookings:   st.bookings,
				Capacities: caps,
				Guard:      cfg.Booking.GuardEnabled,
				Location:   loc,
				Notifier:   notifier,
				Events:     events,
				Log:        log,
			},
			Hub: hub,
			Log: log,
		},
		Admin: &handler.AdminHandler{
			Clearing: &service.Clearing{Bookings: st.bookings, Notifier: notifier, Events: events, Log: log},
			Metadata: &service.Metadata{Store: st.metadata, Capacities: caps, Notifier: notifier, Log: log},
		},
		News:      &handler.NewsHandler{News: &service.News{Store: st.news, Log: log}, Cache: newsCache},
		RateLimit: middleware.NewTokenBucket(cfg.RateLimit, rdb, log),
		NewsCache: newsCache.Middleware(),
	}
	if st.db != nil {
		deps.DB = st.db
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, deps)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.App.Port
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.App.Env),
			zap.Bool("in_memory", serveInMemory), zap.Bool("booking_guard", cfg.Booking.GuardEnabled))
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
