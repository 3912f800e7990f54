package main

import (
	"InvKeeper/internal/badge"
	"InvKeeper/internal/config"
	"InvKeeper/internal/handlers"
	"InvKeeper/internal/middleware"
	"InvKeeper/internal/passcode"
	"InvKeeper/internal/repo"
	"InvKeeper/internal/seed"
	"InvKeeper/internal/service"
	"InvKeeper/internal/session"
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

	// создаём регистратор zap: JSON в проде, человекочитаемый в разработке
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.LogJSON {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

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

	userRepo := repo.NewUserRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)
	locationRepo := repo.NewLocationRepository(gormDB)

	codec, err := badge.NewCodec([]byte(cfg.TokenKey), cfg.TokenMaxAge)
	if err != nil {
		sugar.Fatalw("failed to initialize badge codec", "error", err)
	}
	sessions, err := session.NewManager(cfg.AuthSecret, cfg.SessionTTL)
	if err != nil {
		sugar.Fatalw("failed to initialize session manager", "error", err)
	}

	authService := service.NewAuthService(userRepo, codec, passcode.NewBcrypt(), sugar)
	itemService := service.NewItemService(itemRepo, locationRepo, userRepo, sugar)
	locationService := service.NewLocationService(locationRepo, itemRepo, sugar)

	if cfg.SeedFile != "" {
		fixture, err := seed.Load(cfg.SeedFile)
		if err != nil {
			sugar.Fatalw("failed to load seed file", "path", cfg.SeedFile, "error", err)
		}
		seeder := &seed.Seeder{
			Auth:         authService,
			Items:        itemService,
			Locations:    locationService,
			UserRepo:     userRepo,
			ItemRepo:     itemRepo,
			LocationRepo: locationRepo,
			Logger:       sugar,
		}
		if err := seeder.Apply(ctx, fixture); err != nil {
			sugar.Fatalw("failed to seed database", "error", err)
		}
	}

	h := handlers.NewHandler(authService, sessions, itemService, locationService, sugar, cfg)

	addr := cfg.BaseURL
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sugar.Infow("Starting server", "addr", addr)
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"SessionTTL", cfg.SessionTTL,
		"TokenMaxAge", cfg.TokenMaxAge,
		"Seed", cfg.SeedFile,
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
