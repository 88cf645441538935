package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"obras/internal/auth"
	"obras/internal/backend"
	"obras/internal/cache"
	"obras/internal/cli"
	apphttp "obras/internal/http"
	"obras/internal/log"
	"obras/internal/service"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := backend.New(ctx, cfg, logger.WithComponent(log.ComponentBackend))
	if err != nil {
		logger.Error("Failed to initialize backend",
			log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", log.FieldError, err)
			}
		}()
	}

	tracker := service.New(result.Store, cfg.ProjectsTab, cfg.ExpensesTab, cfg.SnapshotTTL,
		logger.WithComponent(log.ComponentTracker))
	users := auth.NewDirectory(result.Store, cfg.UsersTab, cfg.UsersTTL)
	sessions := auth.NewSessions(cfg.SessionTTL)

	caches := cache.NewManager()
	caches.Register(tracker)
	caches.Register(users)
	caches.Register(sessions)
	caches.StartCleanup(10 * time.Minute)
	defer caches.Stop()

	srv := apphttp.NewServer(":"+cfg.Port, tracker, users, sessions,
		cfg.SessionCookie, cfg.SessionTTL, logger)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting obras server",
		"port", cfg.Port, log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
