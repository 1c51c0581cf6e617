// Package config defines the configuration of the mission intelligence service.
// No I/O lives in this file, only plain data types and validation.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// CORSOrigins lists the browser origins allowed to call the API; empty
	// disables CORS handling.
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MLConfig describes the external ML service.
type MLConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Offline routes every operation straight to the local heuristics.
	Offline bool          `mapstructure:"offline"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Retries is the number of extra attempts after a transport failure.
	Retries         int           `mapstructure:"retries"`
	RetryBackoff    time.Duration `mapstructure:"retry_backoff"`
	BreakerFailures int           `mapstructure:"breaker_failures"`
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"`
}

// Store kinds for CacheConfig.Store.
const (
	StoreNone      = "none"
	StoreRedis     = "redis"
	StoreRistretto = "ristretto"
)

// CacheConfig controls the cache coordinator and its optional shared tier.
type CacheConfig struct {
	SweepInterval    time.Duration `mapstructure:"sweep_interval"`
	Store            string        `mapstructure:"store"`
	RistrettoMaxCost int64         `mapstructure:"ristretto_max_cost"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Mode         string        `mapstructure:"mode"` // standalone | sentinel | cluster
	Addr         string        `mapstructure:"addr"`
	Addrs        []string      `mapstructure:"addrs"`
	MasterName   string        `mapstructure:"master_name"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds the event publisher settings.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchSize    int           `mapstructure:"batch_size"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	RequiredAcks int           `mapstructure:"required_acks"`
	Async        bool          `mapstructure:"async"`
}

// InsightsConfig enables the advisory insight provider used during brief
// standardization.
type InsightsConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MetricsConfig controls the prometheus registry.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
	Path      string `mapstructure:"path"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object.
type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Log      logging.LogConfig `mapstructure:"log"`
	ML       MLConfig          `mapstructure:"ml"`
	Cache    CacheConfig       `mapstructure:"cache"`
	Redis    RedisConfig       `mapstructure:"redis"`
	Kafka    KafkaConfig       `mapstructure:"kafka"`
	Insights InsightsConfig    `mapstructure:"insights"`
	Metrics  MetricsConfig     `mapstructure:"metrics"`
}

// Validate checks cross-field constraints. It expects ApplyDefaults to have run.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config: nil config")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if !c.ML.Offline {
		u, err := url.Parse(c.ML.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: ml.base_url %q is not an absolute URL", c.ML.BaseURL)
		}
	}
	if c.ML.Timeout <= 0 {
		return fmt.Errorf("config: ml.timeout must be positive")
	}
	if c.ML.Retries < 0 {
		return fmt.Errorf("config: ml.retries must not be negative")
	}
	switch c.Cache.Store {
	case StoreNone, StoreRistretto:
	case StoreRedis:
		if c.Redis.Addr == "" && len(c.Redis.Addrs) == 0 {
			return fmt.Errorf("config: cache.store=redis requires redis.addr or redis.addrs")
		}
	default:
		return fmt.Errorf("config: unknown cache.store %q", c.Cache.Store)
	}
	if c.Cache.SweepInterval <= 0 {
		return fmt.Errorf("config: cache.sweep_interval must be positive")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.enabled requires kafka.brokers")
		}
		if strings.TrimSpace(c.Kafka.Topic) == "" {
			return fmt.Errorf("config: kafka.topic must not be empty")
		}
	}
	if c.Insights.Enabled && !strings.HasPrefix(c.Insights.Path, "/") {
		return fmt.Errorf("config: insights.path must start with '/'")
	}
	return nil
}

//Personal.AI order the ending
