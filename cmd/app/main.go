package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/cache"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/clock"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/config"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/db"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/logger"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/server"
)

// @title Viking Hammer Gym API
// @version 1.0
// @description Class scheduling, enrollment and attendance for the Viking Hammer gym.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	logger.Info("Starting Viking Hammer application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatalf("Failed to load operating timezone %q: %v", cfg.Timezone, err)
	}
	clk := clock.System(loc)

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	statsCache := cache.New(cfg.RedisAddr, cfg.StatsCacheTTL)
	defer statsCache.Close()

	srv := server.New(database, cfg, clk, statsCache)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
