package main

import (
	"ShareIt/internal/config"
	"ShareIt/internal/handlers"
	"ShareIt/internal/middleware"
	"ShareIt/internal/repo"
	"ShareIt/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём регистратор zap; в production: JSON
	newLogger := zap.NewDevelopment
	if cfg.Production {
		newLogger = zap.NewProduction
	}
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	tx := repo.NewTransactor(gormDB)
	userRepo := repo.NewUserRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)
	bookingRepo := repo.NewBookingRepository(gormDB)
	commentRepo := repo.NewCommentRepository(gormDB)
	requestRepo := repo.NewRequestRepository(gormDB)

	opts := []service.Option{service.WithLogger(sugar)}
	svc := handlers.Services{
		Users: service.NewUserService(userRepo, tx, opts...),
		Items: service.NewItemService(service.ItemDeps{
			Tx:       tx,
			Items:    itemRepo,
			Users:    userRepo,
			Requests: requestRepo,
			Comments: commentRepo,
			Bookings: bookingRepo,
		}, opts...),
		Bookings: service.NewBookingService(service.BookingDeps{
			Tx:       tx,
			Bookings: bookingRepo,
			Items:    itemRepo,
			Users:    userRepo,
		}, opts...),
		Requests: service.NewRequestService(service.RequestDeps{
			Tx:       tx,
			Requests: requestRepo,
			Items:    itemRepo,
			Users:    userRepo,
		}, opts...),
	}

	h := handlers.NewHandler(svc, sugar, cfg)

	addr := cfg.BaseURL
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"Production", cfg.Production,
		"DefaultPageSize", cfg.DefaultPageSize,
		"Postgres", repo.IsPostgresDSN(cfg.DatabaseDSN),
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}
