// Package config loads scorecard settings from config.yaml and SCORECARD_*
// environment variables.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Validation modes.
const (
	ModeServe = "serve"
	ModeCLI   = "cli"
	ModeMCP   = "mcp"
)

// Registry sources.
const (
	RegistryEmbedded = "embedded"
	RegistryFile     = "file"
	RegistryNotion   = "notion"
)

var (
	storeDrivers   = []string{"sqlite", "postgres", "mongo"}
	renderFormats  = []string{"html", "xlsx"}
	registrySource = []string{RegistryEmbedded, RegistryFile, RegistryNotion}
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Redis    RedisConfig    `yaml:"redis" mapstructure:"redis"`
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
	Notion   NotionConfig   `yaml:"notion" mapstructure:"notion"`
	Render   RenderConfig   `yaml:"render" mapstructure:"render"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the history backend.
type StoreConfig struct {
	Driver        string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL   string `yaml:"database_url" mapstructure:"database_url"`
	MongoDatabase string `yaml:"mongo_database" mapstructure:"mongo_database"`
}

// RedisConfig configures the report cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// TTL returns the cache lifetime.
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLHours) * time.Hour
}

// RegistryConfig selects where subcomponent content comes from.
type RegistryConfig struct {
	Source string `yaml:"source" mapstructure:"source"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// NotionConfig holds Notion API credentials and database IDs.
type NotionConfig struct {
	Token       string  `yaml:"token" mapstructure:"token"`
	DimensionDB string  `yaml:"dimension_db" mapstructure:"dimension_db"`
	UseCaseDB   string  `yaml:"use_case_db" mapstructure:"use_case_db"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RenderConfig configures report rendering.
type RenderConfig struct {
	TimeoutSecs   int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	DefaultFormat string `yaml:"default_format" mapstructure:"default_format"`
}

// Timeout returns the render deadline.
func (r RenderConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSecs) * time.Second
}

// BatchConfig configures batch analysis from the CLI.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	RateLimit   float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	Burst       int      `yaml:"burst" mapstructure:"burst"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCORECARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "scorecard.db")
	v.SetDefault("store.mongo_database", "scorecard")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl_hours", 24)
	v.SetDefault("registry.source", RegistryEmbedded)
	v.SetDefault("registry.path", "")
	v.SetDefault("notion.token", "")
	v.SetDefault("notion.dimension_db", "")
	v.SetDefault("notion.use_case_db", "")
	v.SetDefault("notion.rate_limit", 3)
	v.SetDefault("render.timeout_secs", 15)
	v.SetDefault("render.default_format", "html")
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.burst", 40)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings needed by mode.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case ModeServe:
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Server.RateLimit <= 0 {
			errs = append(errs, "server.rate_limit must be > 0")
		}
		if c.Server.Burst <= 0 {
			errs = append(errs, "server.burst must be > 0")
		}
	case ModeCLI:
		if c.Batch.Concurrency < 1 || c.Batch.Concurrency > 64 {
			errs = append(errs, "batch.concurrency must be between 1 and 64")
		}
	case ModeMCP:
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if !slices.Contains(storeDrivers, c.Store.Driver) {
		errs = append(errs, fmt.Sprintf("store.driver %q is not one of %s", c.Store.Driver, strings.Join(storeDrivers, ", ")))
	}
	if c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required")
	}
	if c.Store.Driver == "mongo" && c.Store.MongoDatabase == "" {
		errs = append(errs, "store.mongo_database is required for the mongo driver")
	}

	switch c.Registry.Source {
	case RegistryEmbedded:
	case RegistryFile:
		if c.Registry.Path == "" {
			errs = append(errs, "registry.path is required for the file source")
		}
	case RegistryNotion:
		if c.Notion.Token == "" {
			errs = append(errs, "notion.token is required for the notion source")
		}
		if c.Notion.DimensionDB == "" {
			errs = append(errs, "notion.dimension_db is required for the notion source")
		}
	default:
		errs = append(errs, fmt.Sprintf("registry.source %q is not one of %s", c.Registry.Source, strings.Join(registrySource, ", ")))
	}

	if !slices.Contains(renderFormats, strings.ToLower(c.Render.DefaultFormat)) {
		errs = append(errs, fmt.Sprintf("render.default_format %q is not one of %s", c.Render.DefaultFormat, strings.Join(renderFormats, ", ")))
	}
	if c.Render.TimeoutSecs <= 0 {
		errs = append(errs, "render.timeout_secs must be > 0")
	}

	if len(errs) > 0 {
		return eris.New("config: " + strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
