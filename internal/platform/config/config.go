package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"advocatehub/internal/search"
)

// Config holds the advocatehub configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HTTPConfig captures HTTP server level configuration.
type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL settings. An empty URL selects the
// in-memory store.
type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	Seed            bool          `yaml:"seed"`
}

// RedisConfig holds Redis settings. An empty URL disables Redis.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	HistoryKey   string        `yaml:"history_key"`
	HistoryTTL   time.Duration `yaml:"history_ttl"`
}

// KafkaConfig holds search event settings. No brokers means events are only
// logged.
type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	Topic      string   `yaml:"topic"`
	Partitions int32    `yaml:"partitions"`
	Replicas   int16    `yaml:"replicas"`
	SampleRate float64  `yaml:"sample_rate"`
	// MaxBufferedRecords caps events waiting for the broker. Past it new
	// events are dropped.
	MaxBufferedRecords int           `yaml:"max_buffered_records"`
	DeliveryTimeout    time.Duration `yaml:"delivery_timeout"`
}

// SearchConfig holds client paging defaults.
type SearchConfig struct {
	PageSize int `yaml:"page_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Environment variables read by Load.
const (
	EnvConfigFile = "ADVOCATEHUB_CONFIG"
	EnvAddr       = "ADVOCATEHUB_ADDR"
	EnvDatabase   = "DATABASE_URL"
	EnvSeed       = "SEED_DATABASE"
	EnvRedis      = "REDIS_URL"
	EnvKafka      = "KAFKA_BROKERS"
	EnvKafkaTopic = "KAFKA_TOPIC"
	EnvLogLevel   = "LOG_LEVEL"
	EnvLogFormat  = "LOG_FORMAT"
)

// Load reads the optional YAML file named by ADVOCATEHUB_CONFIG, applies
// environment overrides and defaults, then validates.
func Load() (Config, error) {
	return LoadWith(os.Getenv)
}

// LoadWith is Load with an injectable environment lookup.
func LoadWith(getenv func(string) string) (Config, error) {
	var cfg Config
	if path := getenv(EnvConfigFile); path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		data = expandEnvVars(data, getenv)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvAddr); v != "" {
		c.HTTP.Addr = v
	}
	if v := getenv(EnvDatabase); v != "" {
		c.Database.URL = v
	}
	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be a boolean, got %q", EnvSeed, v)
		}
		c.Database.Seed = seed
	}
	if v := getenv(EnvRedis); v != "" {
		c.Redis.URL = v
	}
	if v := getenv(EnvKafka); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	if v := getenv(EnvKafkaTopic); v != "" {
		c.Kafka.Topic = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadHeaderTimeout <= 0 {
		c.HTTP.ReadHeaderTimeout = 5 * time.Second
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 10 * time.Second
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime <= 0 {
		c.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if c.Redis.PoolSize <= 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.DialTimeout <= 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Redis.ReadTimeout <= 0 {
		c.Redis.ReadTimeout = 3 * time.Second
	}
	if c.Redis.WriteTimeout <= 0 {
		c.Redis.WriteTimeout = 3 * time.Second
	}
	if c.Redis.HistoryKey == "" {
		c.Redis.HistoryKey = "advocatehub:search-history"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "advocatehub.search-events"
	}
	if c.Kafka.Partitions <= 0 {
		c.Kafka.Partitions = 3
	}
	if c.Kafka.Replicas <= 0 {
		c.Kafka.Replicas = 1
	}
	if c.Kafka.SampleRate == 0 {
		c.Kafka.SampleRate = 1
	}
	if c.Kafka.MaxBufferedRecords <= 0 {
		c.Kafka.MaxBufferedRecords = 1000
	}
	if c.Kafka.DeliveryTimeout <= 0 {
		c.Kafka.DeliveryTimeout = 10 * time.Second
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = search.DefaultLimit
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	var errs []error
	if c.Search.PageSize > search.MaxLimit {
		errs = append(errs, fmt.Errorf("search.page_size (%d) exceeds the maximum of %d", c.Search.PageSize, search.MaxLimit))
	}
	if c.Kafka.SampleRate < 0 || c.Kafka.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("kafka.sample_rate must be between 0 and 1, got %g", c.Kafka.SampleRate))
	}
	if c.Kafka.DeliveryTimeout < time.Second {
		errs = append(errs, fmt.Errorf("kafka.delivery_timeout must be at least 1s, got %s", c.Kafka.DeliveryTimeout))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
func expandEnvVars(data []byte, getenv func(string) string) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		name, fallback, hasDefault := strings.Cut(expr, ":-")
		val := getenv(name)
		if val == "" && hasDefault {
			val = fallback
		}
		return []byte(val)
	})
}
