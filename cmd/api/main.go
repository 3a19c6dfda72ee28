// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/config"
	"github.com/your-org/storefront-state/internal/infrastructure/database"
	"github.com/your-org/storefront-state/internal/interfaces/http"
	"github.com/your-org/storefront-state/internal/interfaces/http/events"
	"github.com/your-org/storefront-state/internal/persistence"
	"github.com/your-org/storefront-state/internal/pkg/auth"
	"github.com/your-org/storefront-state/internal/pkg/logger"
	"github.com/your-org/storefront-state/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg.Logging)

	appLogger.WithFields(logrus.Fields{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Driver,
	}).Info("Starting service")

	// Connect to storage
	kv, err := database.Open(cfg)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to open storage")
	}
	defer kv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := kv.Health(ctx); err != nil {
		cancel()
		appLogger.WithError(err).Fatal("Storage health check failed")
	}
	cancel()

	// Build the store and restore saved state
	s := store.New(
		store.WithLimits(cfg.Store.RecentlyViewedLimit, cfg.Store.RecentSearchLimit),
		store.WithLogger(appLogger),
		store.WithProfileStorage(kv, cfg.Storage.UserKey),
	)

	adapter := persistence.NewAdapter(kv, cfg.Storage.CartKey, cfg.Store.PersistDebounce, appLogger)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	adapter.Hydrate(ctx, s)
	s.LoadProfileFromStorage(ctx)
	cancel()

	detach := adapter.Attach(s)

	// Fan changes out to connected screens
	hub := events.NewHub(appLogger)
	go hub.Run()
	unsubscribe := s.Subscribe(hub.Observe)

	if cfg.IsDevelopment() && cfg.Security.RequireAuth {
		token, err := auth.NewJWTManager(cfg).GenerateAccessToken("dev-device")
		if err != nil {
			appLogger.WithError(err).Warn("Failed to issue development token")
		} else {
			appLogger.WithField("token", token).Info("Development access token issued")
		}
	}

	appLogger.Info("All systems operational")

	// Create and start HTTP server
	server := http.NewServer(cfg, s, kv, hub, appLogger)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLogger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down gracefully")

	// Give server 30 seconds to shutdown gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	unsubscribe()
	hub.Stop()
	detach()

	if err := adapter.Flush(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Failed to save client state on shutdown")
	}

	appLogger.Info("Server shutdown completed")
}
