// Package bootstrap wires configuration into a running scoring service. The
// API server and the CLI share it.
package bootstrap

import (
	"context"
	"errors"

	"github.com/turtacn/MissionIntelligence/internal/application/scoring"
	"github.com/turtacn/MissionIntelligence/internal/config"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/cache/ristretto"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/cache"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/common"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/standardize"
	"github.com/turtacn/MissionIntelligence/internal/interfaces/http/handlers"
)

// Runtime holds every long-lived component built from a Config.
type Runtime struct {
	Config      *config.Config
	Logger      logging.Logger
	Client      common.ServingClient
	Coordinator *cache.Coordinator
	Service     *scoring.Service
	Collector   prometheus.MetricsCollector
	Metrics     *prometheus.AppMetrics
	Checkers    []handlers.HealthChecker

	closers []func() error
}

// New builds the runtime. Optional dependencies that cannot be reached
// (Redis) are logged and skipped; the service then runs without them.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	rt := &Runtime{Config: cfg, Logger: logger}

	if err := rt.initMetrics(); err != nil {
		return nil, err
	}

	breaker := common.NewBreaker(cfg.ML.BreakerFailures, cfg.ML.BreakerCooldown)
	rt.Client = common.NewHTTPServingClient(cfg.ML,
		common.WithBreaker(breaker),
		common.WithObserver(rt.Metrics),
		common.WithLogger(logger),
	)
	rt.Checkers = append(rt.Checkers, handlers.CheckFunc{Component: "ml", Fn: rt.checkML})

	coordOpts := []cache.Option{
		cache.WithSweepInterval(cfg.Cache.SweepInterval),
		cache.WithLogger(logger),
		cache.WithRecorder(rt.Metrics),
	}
	store, err := rt.initStore(ctx)
	if err != nil {
		return nil, err
	}
	if store != nil {
		coordOpts = append(coordOpts, cache.WithStore(store))
	}
	rt.Coordinator = cache.NewCoordinator(coordOpts...)
	rt.closers = append(rt.closers, rt.Coordinator.Close)

	engineOpts := []standardize.Option{standardize.WithLogger(logger)}
	if cfg.Insights.Enabled {
		engineOpts = append(engineOpts, standardize.WithInsights(standardize.NewMLInsights(rt.Client, cfg.Insights)))
	}

	svcOpts := []scoring.Option{
		scoring.WithEngine(standardize.NewEngine(engineOpts...)),
		scoring.WithMetrics(rt.Metrics),
		scoring.WithLogger(logger),
		scoring.WithBreaker(breaker),
	}
	if cfg.Kafka.Enabled {
		pub, err := kafka.NewPublisher(cfg.Kafka, logger)
		if err != nil {
			_ = rt.Close()
			return nil, err
		}
		svcOpts = append(svcOpts, scoring.WithPublisher(pub))
		rt.closers = append(rt.closers, pub.Close)
	}
	rt.Service = scoring.NewService(rt.Client, rt.Coordinator, svcOpts...)
	// Closed first so pending events drain before the publisher goes away.
	rt.closers = append(rt.closers, rt.Service.Close)

	logger.Info("runtime ready",
		logging.Bool("ml_offline", cfg.ML.Offline),
		logging.String("cache_store", cfg.Cache.Store),
		logging.Bool("kafka", cfg.Kafka.Enabled),
		logging.Bool("insights", cfg.Insights.Enabled),
	)
	return rt, nil
}

func (rt *Runtime) initMetrics() error {
	if !rt.Config.Metrics.Enabled {
		rt.Collector = prometheus.NewNoopCollector()
		rt.Metrics = prometheus.NewAppMetrics(rt.Collector)
		return nil
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            rt.Config.Metrics.Namespace,
		Subsystem:            rt.Config.Metrics.Subsystem,
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, rt.Logger)
	if err != nil {
		return err
	}
	rt.Collector = collector
	rt.Metrics = prometheus.NewAppMetrics(collector)
	return nil
}

func (rt *Runtime) initStore(ctx context.Context) (cache.Store, error) {
	switch rt.Config.Cache.Store {
	case config.StoreRedis:
		client, err := redis.NewClient(ctx, rt.Config.Redis, rt.Logger)
		if err != nil {
			rt.Logger.Warn("redis unavailable, running without shared cache", logging.Err(err))
			return nil, nil
		}
		rt.closers = append(rt.closers, client.Close)
		rt.Checkers = append(rt.Checkers, handlers.CheckFunc{Component: "redis", Fn: client.Ping})
		return redis.NewStore(client), nil
	case config.StoreRistretto:
		store, err := ristretto.NewStore(rt.Config.Cache.RistrettoMaxCost)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, func() error { store.Close(); return nil })
		return store, nil
	default:
		return nil, nil
	}
}

// checkML reports the ML service as healthy while offline mode is on.
func (rt *Runtime) checkML(ctx context.Context) error {
	if rt.Client.Offline() {
		return nil
	}
	var out map[string]interface{}
	return rt.Client.Get(ctx, "/health", &out)
}

// Start launches background work (the cache sweep).
func (rt *Runtime) Start(ctx context.Context) {
	rt.Coordinator.Start(ctx)
}

// Apply hot-reloads the settings that may change at runtime.
func (rt *Runtime) Apply(cfg *config.Config) {
	if cfg.ML.Offline != rt.Client.Offline() {
		rt.Service.SetOffline(cfg.ML.Offline)
		rt.Logger.Info("ml offline mode reloaded", logging.Bool("offline", cfg.ML.Offline))
	}
}

// Close releases components in reverse construction order.
func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

//Personal.AI order the ending
