// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/roshni-games/rule-engine/internal/bootstrap"
	"github.com/roshni-games/rule-engine/internal/config"
	"github.com/roshni-games/rule-engine/internal/server"
	"github.com/roshni-games/rule-engine/pkg/engine"
	"github.com/roshni-games/rule-engine/pkg/rule"
	"github.com/roshni-games/rule-engine/pkg/store"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	engine            *engine.Engine
	deps              *rule.Dependencies
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	configStore       store.ConfigStore
	contextProvider   engine.ContextProvider
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance. Components are
// initialized in dependency order: Redis, rule set, engine, metrics server,
// telemetry.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	if cfg.RedisEnabled {
		client, err := store.ConnectRedis(ctx, cfg.RedisHost+":"+cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		app.redisClient = client
		app.configStore = store.NewRedisConfigStore(client)
	}

	ruleSet, err := bootstrap.LoadRuleSet(cfg.RuleSetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule set from %s: %w", cfg.RuleSetPath, err)
	}
	logrus.Infof("loaded rule set from %s", cfg.RuleSetPath)

	eng, deps, err := bootstrap.InitEngine(ruleSet)
	if err != nil {
		return nil, fmt.Errorf("failed to init engine: %w", err)
	}
	app.engine = eng
	app.deps = deps

	if err := app.restoreRules(ctx); err != nil {
		return nil, err
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.OtelServiceName, cfg.Environment, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// restoreRules replaces the YAML-loaded rules with the rule set persisted
// under RuleSetKey, when the config store holds one. A missing entry keeps
// the YAML rules; this is the counterpart of the export on shutdown.
func (a *App) restoreRules(ctx context.Context) error {
	if a.configStore == nil {
		return nil
	}

	stored, err := a.configStore.Load(ctx, a.cfg.RuleSetKey)
	switch {
	case err == nil:
		if err := a.engine.ImportRules(stored, a.deps); err != nil {
			return fmt.Errorf("failed to import stored rule set %q: %w", a.cfg.RuleSetKey, err)
		}
		logrus.Infof("restored rule set %q from config store (%d rules)", a.cfg.RuleSetKey, len(stored.Rules))
	case errors.Is(err, store.ErrNotFound):
		logrus.Debugf("no stored rule set under %q, keeping %s", a.cfg.RuleSetKey, a.cfg.RuleSetPath)
	default:
		return fmt.Errorf("failed to load stored rule set %q: %w", a.cfg.RuleSetKey, err)
	}
	return nil
}

// Engine returns the wired rule engine.
func (a *App) Engine() *engine.Engine { return a.engine }

// Dependencies returns the rule dependency container, for registering
// segment resolvers or custom gating functions before Run.
func (a *App) Dependencies() *rule.Dependencies { return a.deps }

// SetContextProvider sets the context provider used by the continuous
// evaluation loop. Must be called before Run when continuous evaluation is
// enabled.
func (a *App) SetContextProvider(provider engine.ContextProvider) {
	a.contextProvider = provider
}
