package main

import (
	"github.com/turtacn/MissionIntelligence/internal/bootstrap"
	"github.com/turtacn/MissionIntelligence/internal/config"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/MissionIntelligence/internal/interfaces/http"
	"github.com/turtacn/MissionIntelligence/internal/interfaces/http/handlers"
)

// routerConfig adapts the runtime to the HTTP layer.
func routerConfig(rt *bootstrap.Runtime, version string) httpserver.RouterConfig {
	cfg := httpserver.RouterConfig{
		ScoringHandler: handlers.NewScoringHandler(rt.Service, rt.Logger, rt.Config.Server.MaxBodySize),
		HealthHandler:  handlers.NewHealthHandler(version, rt.Checkers...),
		Logger:         rt.Logger,
		AppMetrics:     rt.Metrics,
		CORSOrigins:    rt.Config.Server.CORSOrigins,
	}
	if rt.Config.Metrics.Enabled {
		cfg.MetricsCollector = rt.Collector
		cfg.MetricsPath = rt.Config.Metrics.Path
	}
	return cfg
}

// watchConfig applies live-reloadable settings when the file changes.
func watchConfig(path string, rt *bootstrap.Runtime, logger logging.Logger) {
	err := config.Watch(path, rt.Apply, func(err error) {
		logger.Warn("ignoring invalid configuration change", logging.Err(err))
	})
	if err != nil {
		logger.Warn("configuration watch disabled", logging.Err(err))
	}
}

//Personal.AI order the ending
