package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentiva/slot-reservation/internal/clock"
	"github.com/rentiva/slot-reservation/internal/config"
	"github.com/rentiva/slot-reservation/internal/database"
	"github.com/rentiva/slot-reservation/internal/handler"
	"github.com/rentiva/slot-reservation/internal/logger"
	"github.com/rentiva/slot-reservation/internal/migrations"
	"github.com/rentiva/slot-reservation/internal/queue"
	"github.com/rentiva/slot-reservation/internal/repository"
	"github.com/rentiva/slot-reservation/internal/router"
	"github.com/rentiva/slot-reservation/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	lg := zl.Sugar()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		lg.Fatalw("connect to db", "err", err)
	}
	defer db.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrations.Apply(startupCtx, db); err != nil {
		cancelStartup()
		lg.Fatalw("apply migrations", "err", err)
	}
	cancelStartup()

	rdb := config.NewRedisClient()
	if rdb == nil {
		lg.Warnw("redis unreachable, rate limiting disabled")
	}

	clk := clock.NewSystem()
	snapshots := repository.NewSnapshotLoader(db)
	store := repository.NewReservationStore(db)
	publisher := queue.NewPublisher(lg)

	availabilitySvc := service.NewAvailabilityService(snapshots, clk, lg)
	holdSvc := service.NewHoldService(store, clk, lg, cfg.HoldTTL)
	sweeper := service.NewSweeper(store, publisher, clk, lg, cfg.SweepInterval, cfg.Abandonment)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := sweeper.Run(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
			lg.Errorw("sweeper stopped", "err", err)
		}
	}()
	go func() {
		// Consumer stands in for the external notification dispatcher.
		if err := queue.StartReleasedConsumer(rootCtx, lg); err != nil && !errors.Is(err, context.Canceled) {
			lg.Errorw("released consumer stopped", "err", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Sessions:      handler.NewSessionHandler(cfg.SessionSecret, 2*time.Hour),
		Availability:  handler.NewAvailabilityHandler(availabilitySvc),
		Holds:         handler.NewHoldHandler(holdSvc),
		Sweep:         handler.NewSweepHandler(sweeper),
		SessionSecret: cfg.SessionSecret,
		RateLimit:     config.LoadRateLimitConfig(),
		Redis:         rdb,
	})

	addr := ":" + cfg.Port
	lg.Infow("listening", "addr", addr, "env", cfg.Env)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- e.Start(addr)
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Errorw("server error", "err", err)
		}
	case <-rootCtx.Done():
		lg.Infow("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Errorw("server shutdown error", "err", err)
	}
	lg.Infow("server stopped")
}
