package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 30 * time.Second
	DefaultServerMaxBodySize     = 1 << 20
	DefaultServerShutdownTimeout = 30 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMLBaseURL         = "http://localhost:8000"
	DefaultMLTimeout         = 10 * time.Second
	DefaultMLRetryBackoff    = 200 * time.Millisecond
	DefaultMLBreakerFailures = 5
	DefaultMLBreakerCooldown = 30 * time.Second

	DefaultCacheSweepInterval    = time.Hour
	DefaultCacheStore            = StoreNone
	DefaultCacheRistrettoMaxCost = 64 << 20

	DefaultRedisMode      = "standalone"
	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisPoolSize  = 10
	DefaultRedisTimeout   = 3 * time.Second
	DefaultRedisKeyPrefix = "mission:"

	DefaultKafkaBroker       = "localhost:9092"
	DefaultKafkaTopic        = "mission.intelligence.events"
	DefaultKafkaBatchSize    = 100
	DefaultKafkaBatchTimeout = time.Second
	DefaultKafkaRequiredAcks = 1

	DefaultInsightsPath    = "/brief/insights"
	DefaultInsightsTimeout = 3 * time.Second

	DefaultMetricsNamespace = "mission"
	DefaultMetricsSubsystem = "intelligence"
	DefaultMetricsPath      = "/metrics"
)

// ApplyDefaults fills zero-value fields in cfg. Explicit values always win.
// Boolean switches (ml.offline, kafka.enabled, ...) are left as given.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultServerMaxBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── ML ────────────────────────────────────────────────────────────────────
	if cfg.ML.BaseURL == "" {
		cfg.ML.BaseURL = DefaultMLBaseURL
	}
	if cfg.ML.Timeout == 0 {
		cfg.ML.Timeout = DefaultMLTimeout
	}
	if cfg.ML.RetryBackoff == 0 {
		cfg.ML.RetryBackoff = DefaultMLRetryBackoff
	}
	if cfg.ML.BreakerFailures == 0 {
		cfg.ML.BreakerFailures = DefaultMLBreakerFailures
	}
	if cfg.ML.BreakerCooldown == 0 {
		cfg.ML.BreakerCooldown = DefaultMLBreakerCooldown
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.SweepInterval == 0 {
		cfg.Cache.SweepInterval = DefaultCacheSweepInterval
	}
	if cfg.Cache.Store == "" {
		cfg.Cache.Store = DefaultCacheStore
	}
	if cfg.Cache.RistrettoMaxCost == 0 {
		cfg.Cache.RistrettoMaxCost = DefaultCacheRistrettoMaxCost
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Mode == "" {
		cfg.Redis.Mode = DefaultRedisMode
	}
	if cfg.Redis.Addr == "" && len(cfg.Redis.Addrs) == 0 {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.BatchSize == 0 {
		cfg.Kafka.BatchSize = DefaultKafkaBatchSize
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = DefaultKafkaBatchTimeout
	}
	if cfg.Kafka.RequiredAcks == 0 {
		cfg.Kafka.RequiredAcks = DefaultKafkaRequiredAcks
	}

	// ── Insights ──────────────────────────────────────────────────────────────
	if cfg.Insights.Path == "" {
		cfg.Insights.Path = DefaultInsightsPath
	}
	if cfg.Insights.Timeout == 0 {
		cfg.Insights.Timeout = DefaultInsightsTimeout
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

// Default returns a fully defaulted, offline configuration. The CLI uses it
// when no configuration file is supplied.
func Default() *Config {
	cfg := &Config{ML: MLConfig{Offline: true}}
	ApplyDefaults(cfg)
	return cfg
}

//Personal.AI order the ending
