package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	API          APIConfig          `mapstructure:"api"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Autocomplete AutocompleteConfig `mapstructure:"autocomplete"`
	Log          LogConfig          `mapstructure:"log"`
}

// APIConfig holds the price API configuration
type APIConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	MaxWorkers           int    `mapstructure:"max_workers"`
	UserAgent            string `mapstructure:"user_agent"`
}

// StorageConfig selects where the shopping list is persisted
type StorageConfig struct {
	Backend  string         `mapstructure:"backend"` // file, memory, redis or postgres
	Key      string         `mapstructure:"key"`
	Dir      string         `mapstructure:"dir"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type AutocompleteConfig struct {
	Policy string `mapstructure:"policy"` // prefix or substring
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Load loads configuration from a YAML file with environment variable overrides.
// An empty path searches for config.yaml in the working directory and falls
// back to defaults when there is none.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("comparador")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://comparador-api.onrender.com/api")
	v.SetDefault("api.timeout", 30)
	v.SetDefault("api.max_retries", 0)
	v.SetDefault("api.max_requests_per_second", 10)
	v.SetDefault("api.max_workers", 4)
	v.SetDefault("api.user_agent", "comparador-cli/1.0")

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.key", "minhaListaDeCompras")
	v.SetDefault("storage.dir", ".comparador")

	v.SetDefault("storage.redis.host", "localhost")
	v.SetDefault("storage.redis.port", 6379)
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.database", 0)

	v.SetDefault("storage.database.host", "localhost")
	v.SetDefault("storage.database.port", 5432)
	v.SetDefault("storage.database.name", "comparador")
	v.SetDefault("storage.database.user", "comparador")
	v.SetDefault("storage.database.password", "")

	v.SetDefault("autocomplete.policy", "prefix")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base URL cannot be empty")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api base URL: %w", err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api base URL must include a host")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("api max retries cannot be negative")
	}
	if c.API.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("api max requests per second cannot be negative")
	}
	if c.API.MaxWorkers <= 0 {
		return fmt.Errorf("api max workers must be positive")
	}

	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("storage backend must be file, memory, redis or postgres, got %q", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage key cannot be empty")
	}
	if c.Storage.Backend == BackendFile && c.Storage.Dir == "" {
		return fmt.Errorf("storage dir cannot be empty for the file backend")
	}

	if c.Autocomplete.Policy != "prefix" && c.Autocomplete.Policy != "substring" {
		return fmt.Errorf("autocomplete policy must be prefix or substring, got %q", c.Autocomplete.Policy)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log format must be text or json")
	}

	return nil
}
