package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"building-portal/internal/config"
	"building-portal/internal/database"
	"building-portal/internal/event"
	"building-portal/internal/handler"
	"building-portal/internal/repository"
	"building-portal/internal/router"
	"building-portal/internal/security"
	"building-portal/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("opening database", "path", cfg.DatabasePath)
	db, err := database.New(context.Background(), cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	verifier := security.NewBcryptVerifier()
	if err := db.Seed(context.Background(), verifier); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	userRepo := repository.NewUserRepository(db.SQL)
	sessionRepo := repository.NewSessionRepository(db.SQL)
	occupantRepo := repository.NewOccupantRepository(db.SQL)
	maintenanceRepo := repository.NewMaintenanceRepository(db.SQL)
	auditRepo := repository.NewAuditRepository(db.SQL)
	slog.Info("database ready")

	authService := service.NewAuthService(userRepo, sessionRepo, verifier, cfg.SessionTTL)
	if purged, purgeErr := authService.PurgeExpired(context.Background()); purgeErr != nil {
		slog.Warn("failed to purge expired sessions", "error", purgeErr)
	} else if purged > 0 {
		slog.Info("purged expired sessions", "count", purged)
	}

	occupantService := service.NewOccupantService(db, occupantRepo)
	maintenanceService := service.NewMaintenanceService(db, maintenanceRepo)

	bus := event.NewBus()
	recorder := service.NewAuditRecorder(auditRepo)
	recorderCtx, recorderCancel := context.WithCancel(context.Background())
	go recorder.Run(recorderCtx, bus)

	sessionHandler := handler.NewSessionHandler(authService)
	occupantHandler := handler.NewOccupantHandler(occupantService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	appRouter := router.New(cfg, db, authService, bus,
		sessionHandler, occupantHandler, maintenanceHandler, auditHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			recorderCancel,
			db.Close,
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
