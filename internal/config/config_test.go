package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
server:
  port: 9090
log:
  level: debug
ml:
  base_url: "http://ml.internal:8000"
  timeout: 2s
  breaker_failures: 3
cache:
  store: ristretto
  sweep_interval: 10m
kafka:
  enabled: true
  brokers: ["kafka-1:9092", "kafka-2:9092"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "http://ml.internal:8000", cfg.ML.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.ML.Timeout)
	assert.Equal(t, 3, cfg.ML.BreakerFailures)
	assert.Equal(t, StoreRistretto, cfg.Cache.Store)
	assert.Equal(t, 10*time.Minute, cfg.Cache.SweepInterval)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, DefaultKafkaTopic, cfg.Kafka.Topic)
	assert.Equal(t, DefaultMLBreakerCooldown, cfg.ML.BreakerCooldown)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("MISSION_ML_OFFLINE", "true")
	t.Setenv("MISSION_SERVER_PORT", "7070")

	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)
	assert.True(t, cfg.ML.Offline)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MISSION_ML_BASE_URL", "http://scoring:9000")
	t.Setenv("MISSION_ML_TIMEOUT", "750ms")
	t.Setenv("MISSION_CACHE_STORE", "redis")
	t.Setenv("MISSION_REDIS_ADDR", "redis:6379")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://scoring:9000", cfg.ML.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.ML.Timeout)
	assert.False(t, cfg.ML.Offline)
	assert.Equal(t, StoreRedis, cfg.Cache.Store)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, DefaultCacheSweepInterval, cfg.Cache.SweepInterval)
}

func TestLoadOrEnv_EmptyPathUsesEnv(t *testing.T) {
	t.Setenv("MISSION_ML_OFFLINE", "1")
	cfg, err := LoadOrEnv("")
	require.NoError(t, err)
	assert.True(t, cfg.ML.Offline)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, false},
		{"relative base url", func(c *Config) { c.ML.BaseURL = "ml:8000" }, false},
		{"offline ignores base url", func(c *Config) { c.ML.BaseURL = "::"; c.ML.Offline = true }, true},
		{"unknown store", func(c *Config) { c.Cache.Store = "memcached" }, false},
		{"redis store without addr", func(c *Config) {
			c.Cache.Store = StoreRedis
			c.Redis.Addr = ""
		}, false},
		{"kafka without brokers", func(c *Config) {
			c.Kafka.Enabled = true
			c.Kafka.Brokers = nil
		}, false},
		{"insights path", func(c *Config) {
			c.Insights.Enabled = true
			c.Insights.Path = "brief/insights"
		}, false},
		{"negative retries", func(c *Config) { c.ML.Retries = -1 }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: 1234}, Cache: CacheConfig{Store: StoreRedis}}
	ApplyDefaults(cfg)
	assert.Equal(t, 1234, cfg.Server.Port)
	assert.Equal(t, StoreRedis, cfg.Cache.Store)
	assert.Equal(t, DefaultServerHost, cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:1234", cfg.Server.Addr())

	ApplyDefaults(nil)
}

func TestDefault_IsOfflineAndValid(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.ML.Offline)
	assert.NoError(t, cfg.Validate())
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "absent.yaml"), func(*Config) {}, nil)
	assert.Error(t, err)
}

//Personal.AI order the ending
