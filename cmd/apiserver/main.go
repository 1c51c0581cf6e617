// API server entry point for the mission intelligence service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/MissionIntelligence/internal/bootstrap"
	"github.com/turtacn/MissionIntelligence/internal/config"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/MissionIntelligence/internal/interfaces/http"
)

const defaultConfigPath = "configs/config.yaml"

// Build-time variables injected via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, fromFile, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	defer logger.Sync()

	logger.Info("starting mission intelligence API server",
		logging.String("version", version),
		logging.String("addr", cfg.Server.Addr()),
		logging.Bool("config_file", fromFile),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("runtime initialization failed", logging.Err(err))
	}
	rt.Start(ctx)

	if fromFile {
		watchConfig(*configPath, rt, logger)
	}

	srv := httpserver.NewServer(cfg.Server, httpserver.NewRouter(routerConfig(rt, version)), logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", logging.Err(err))
		}
	}

	logger.Info("shutting down")
	if err := srv.Stop(context.Background()); err != nil {
		logger.Error("HTTP server shutdown error", logging.Err(err))
	}
	if err := rt.Close(); err != nil {
		logger.Error("runtime close error", logging.Err(err))
	}
	logger.Info("server stopped")
}

// loadConfig reads path when it exists and falls back to MISSION_*
// environment variables otherwise.
func loadConfig(path string) (*config.Config, bool, error) {
	if _, err := os.Stat(path); err != nil {
		cfg, err := config.LoadFromEnv()
		return cfg, false, err
	}
	cfg, err := config.Load(path)
	return cfg, true, err
}

//Personal.AI order the ending
