package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/candourhq/candour/internal/auth"
	"github.com/candourhq/candour/internal/config"
	"github.com/candourhq/candour/internal/domain/event"
	"github.com/candourhq/candour/internal/domain/project"
	"github.com/candourhq/candour/internal/domain/public"
	"github.com/candourhq/candour/internal/domain/relationship"
	"github.com/candourhq/candour/internal/domain/tenancy"
	"github.com/candourhq/candour/internal/metrics"
	"github.com/candourhq/candour/internal/sqlite"
	"github.com/candourhq/candour/internal/transport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	tenantRepo := sqlite.NewTenantRepository(db)
	relationshipRepo := sqlite.NewRelationshipRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	appRepo := sqlite.NewApplicationRepository(db)

	relationshipStore := relationship.NewStore(relationshipRepo, logger)
	tenancySvc := tenancy.NewService(tenantRepo, relationshipStore, projectRepo, logger)
	projectSvc := project.NewService(projectRepo, tenancySvc, tenancySvc, logger, m)
	eventSvc := event.NewService(eventRepo, projectRepo, logger, m)
	publicGateway := public.NewGateway(tenancySvc, projectRepo, eventRepo, logger)
	authSvc := auth.NewService(userRepo, appRepo, tenancySvc, []byte(cfg.Auth.SigningKey), cfg.Auth.TokenTTL, logger)

	router := transport.NewRouter(transport.Services{
		Projects:      projectSvc,
		Events:        eventSvc,
		Collaborators: tenancySvc,
		Public:        publicGateway,
		Auth:          authSvc,
	}, authSvc, logger, m, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
