package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	Server ServerConfig
	NBP    NBPConfig
	Cache  CacheConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"120s"`
}

type NBPConfig struct {
	BaseURL string        `env:"NBP_BASE_URL" env-default:"http://api.nbp.pl/api/exchangerates/tables"`
	Timeout time.Duration `env:"NBP_TIMEOUT" env-default:"10s"`
}

type CacheConfig struct {
	Backend         string        `env:"CACHE_BACKEND" env-default:"memory"`
	TTL             time.Duration `env:"CACHE_TTL" env-default:"5m"`
	CleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" env-default:"1m"`
	RedisURL        string        `env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// LoadConfig reads the environment, after loading ENV_FILE (default .env) if it exists.
func LoadConfig() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %d", c.Server.Port)
	}
	if c.NBP.Timeout <= 0 {
		return fmt.Errorf("NBP_TIMEOUT must be positive, got %s", c.NBP.Timeout)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be positive, got %s", c.Cache.CleanupInterval)
	}
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND: %q", c.Cache.Backend)
	}
	return nil
}

// Help describes the environment variables understood by LoadConfig.
func Help() (string, error) {
	var config Config
	return cleanenv.GetDescription(&config, nil)
}
