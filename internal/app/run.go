// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run(ctx context.Context) error {
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	if a.cfg.ContinuousEnabled {
		provider := a.contextProvider
		if provider == nil {
			provider = func() *rule.Context { return rule.NewContext("") }
		}
		interval := time.Duration(a.cfg.ContinuousIntervalMs) * time.Millisecond
		if err := a.engine.StartContinuousEvaluation(provider, interval); err != nil {
			return err
		}
	}

	logrus.Info("application started successfully")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("shutdown signal received")
	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down all application components in reverse
// dependency order. Errors are logged but never abort the sequence.
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	if a.configStore != nil {
		exported := a.engine.ExportRules()
		if err := a.configStore.Save(ctx, a.cfg.RuleSetKey, exported); err != nil {
			logrus.Errorf("failed to persist rule set on shutdown: %v", err)
		}
	}

	a.engine.Shutdown()

	if err := a.metricsServer.Shutdown(ctx); err != nil {
		logrus.Errorf("metrics server shutdown error: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
	}

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
