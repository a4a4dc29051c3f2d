package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the jason service configuration
type Config struct {
	ServiceName string          `mapstructure:"service_name"`
	Server      ServerConfig    `mapstructure:"server"`
	Log         LogConfig       `mapstructure:"log"`
	Render      RenderConfig    `mapstructure:"render"`
	Registry    RegistryConfig  `mapstructure:"registry"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Metrics     MetricsConfig   `mapstructure:"metrics"`
	Schemas     SchemasConfig   `mapstructure:"schemas"`
	Profiling   ProfilingConfig `mapstructure:"profiling"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns host:port
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// RenderConfig represents document rendering configuration
type RenderConfig struct {
	Pretty bool `mapstructure:"pretty"`
}

// RegistryConfig represents schema registry configuration
type RegistryConfig struct {
	AllowOverwrite bool `mapstructure:"allow_overwrite"`
}

// CacheConfig represents response cache configuration
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	Prefix  string        `mapstructure:"prefix"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RedisConfig represents the Redis cache backend configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MetricsConfig represents Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// SchemasConfig points at an optional schema definitions file
type SchemasConfig struct {
	File string `mapstructure:"file"`
}

// ProfilingConfig controls the pprof endpoints
type ProfilingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Load loads the configuration from path, or from jason.yml / jason.yaml in
// the working directory when path is empty. Environment variables prefixed
// with JASON_ override file values (server.port -> JASON_SERVER_PORT).
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("service_name", "jason")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("render.pretty", false)
	v.SetDefault("registry.allow_overwrite", false)
	v.SetDefault("cache.backend", CacheNone)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.prefix", "jason:")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("schemas.file", "")
	v.SetDefault("profiling.enabled", false)
	v.SetDefault("profiling.path", "/debug/pprof")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("jason")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix("JASON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got: %d", cfg.Server.Port)
	}

	switch cfg.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("cache.backend must be one of none, memory, redis, got: %s", cfg.Cache.Backend)
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got: %s", cfg.Metrics.Path)
	}

	if cfg.Profiling.Enabled && !strings.HasPrefix(cfg.Profiling.Path, "/") {
		return fmt.Errorf("profiling.path must start with '/', got: %s", cfg.Profiling.Path)
	}

	return nil
}
