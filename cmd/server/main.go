package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"clubsite/config"
	authAdapter "clubsite/internal/adapters/auth"
	storageAdapter "clubsite/internal/adapters/storage"
	web "clubsite/internal/delivery/http"
	"clubsite/internal/delivery/http/controllers"
	"clubsite/internal/delivery/http/middleware"
	"clubsite/internal/repository/postgres"
	"clubsite/internal/services"

	_ "clubsite/docs"
)

// @title Club Site API
// @version 1.0
// @description Backend for the club website: public event timeline and hero carousel, plus the admin content endpoints.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const (
	serviceTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("database unreachable", "err", err)
		os.Exit(1)
	}

	images := storageAdapter.NewS3ImageStore(storageAdapter.S3Config{
		Region:          cfg.Storage.Region,
		Endpoint:        cfg.Storage.Endpoint,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
		PathStyle:       cfg.Storage.PathStyle,
	})

	eventRepo := postgres.NewEventRepository(db)
	heroRepo := postgres.NewHeroSlideRepository(db)

	eventService := services.NewEventService(eventRepo, images, logger, serviceTimeout)
	heroService := services.NewHeroSlideService(heroRepo, images, logger, serviceTimeout)

	tokens := authAdapter.NewTokenManager(cfg.JWTSecret)
	passwords := authAdapter.NewBcryptVerifier()

	eventController := controllers.NewEventController(logger, eventService)
	heroController := controllers.NewHeroController(logger, heroService)
	authController := controllers.NewAuthController(logger, tokens, passwords, cfg.AdminUsername, cfg.AdminPasswordHash, cfg.TokenExpiry)
	uploadController := controllers.NewUploadController(logger, images)

	// Status sweep: keeps event statuses consistent with their dates without
	// an admin page having to be open.
	sweeperStop := make(chan struct{})
	services.StartStatusSweeper(eventService, logger, cfg.SweepInterval, sweeperStop)

	mux := web.NewRouter(eventController, heroController, authController, uploadController, tokens)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	addr := ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: handler}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", addr, "env", cfg.Environment, "sweep_interval", cfg.SweepInterval.String())
		serverErr <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		close(sweeperStop)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
		}
	}
}
