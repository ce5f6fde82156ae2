// Package main provides the entry point for the BetPilot HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Youngjiloo-101/Betpilot/internal/api"
	"github.com/Youngjiloo-101/Betpilot/internal/config"
	"github.com/Youngjiloo-101/Betpilot/internal/health"
	"github.com/Youngjiloo-101/Betpilot/internal/logger"
	"github.com/Youngjiloo-101/Betpilot/internal/metrics"
	"github.com/Youngjiloo-101/Betpilot/internal/odds"
	"github.com/Youngjiloo-101/Betpilot/internal/scenario"
	"github.com/Youngjiloo-101/Betpilot/internal/scheduler"
	"github.com/Youngjiloo-101/Betpilot/internal/simulation"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("BetPilot server starting")

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	simulations := simulation.NewService(
		simulation.Limits{
			DefaultTrials: cfg.Simulation.DefaultTrials,
			MaxTrials:     cfg.Simulation.MaxTrials,
			MaxBets:       cfg.Simulation.MaxBets,
		},
		cfg.Simulation.Seed,
		simulation.BinRule(cfg.Simulation.BinRule),
		appLog,
	)
	store := scenario.NewStore(cfg.Scenarios.TTL, cfg.Scenarios.MaxScenarios, appLog)

	sched := scheduler.NewScheduler(appLog)
	if err := sched.ScheduleScenarioSweep(cfg.Scenarios.SweepInterval, store); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule scenario sweep")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	healthHandler := health.NewHandler(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
		Checkers:    []health.Checker{store},
	})

	server := api.New(api.Config{
		Addr:           cfg.ListenAddress(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		Logger:         appLog,
		Simulations:    simulations,
		Catalog:        odds.DefaultCatalog(),
		Scenarios:      store,
		Health:         healthHandler,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	healthHandler.SetReady(true)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		appLog.WithField("signal", sig).Info("Shutdown signal received")
	case err := <-serverErr:
		appLog.WithError(err).Error("HTTP server failed")
	}

	healthHandler.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLog.WithError(err).Error("Error during HTTP server shutdown")
	}
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}

	appLog.Info("BetPilot server shut down")
}
