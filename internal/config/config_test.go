package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected port 8080, got: %d", cfg.Server.Port)
	}
	if cfg.NBP.BaseURL != "http://api.nbp.pl/api/exchangerates/tables" {
		t.Errorf("Unexpected base URL: %s", cfg.NBP.BaseURL)
	}
	if cfg.NBP.Timeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got: %s", cfg.NBP.Timeout)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Expected 5m TTL, got: %s", cfg.Cache.TTL)
	}
	if cfg.Cache.Backend != CacheBackendMemory {
		t.Errorf("Expected memory backend, got: %s", cfg.Cache.Backend)
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("NBP_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got: %d", cfg.Server.Port)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Errorf("Expected 30s TTL, got: %s", cfg.Cache.TTL)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("Expected redis backend, got: %s", cfg.Cache.Backend)
	}
	if cfg.NBP.Timeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got: %s", cfg.NBP.Timeout)
	}
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("LOG_LEVEL=debug\nCACHE_CLEANUP_INTERVAL=2m\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENV_FILE", path)
	// godotenv does not override variables that are already set, so register
	// them for cleanup and clear them first.
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CACHE_CLEANUP_INTERVAL", "")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("CACHE_CLEANUP_INTERVAL")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Expected debug level, got: %s", cfg.Log.Level)
	}
	if cfg.Cache.CleanupInterval != 2*time.Minute {
		t.Errorf("Expected 2m cleanup interval, got: %s", cfg.Cache.CleanupInterval)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "CACHE_TTL", "five minutes"},
		{"zero ttl", "CACHE_TTL", "0s"},
		{"negative timeout", "NBP_TIMEOUT", "-1s"},
		{"bad port", "SERVER_PORT", "70000"},
		{"unknown backend", "CACHE_BACKEND", "memcached"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
			t.Setenv(tc.key, tc.value)

			if _, err := LoadConfig(); err == nil {
				t.Errorf("Expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	help, err := Help()
	if err != nil {
		t.Fatalf("Help error: %v", err)
	}
	for _, key := range []string{"SERVER_PORT", "NBP_BASE_URL", "CACHE_TTL", "REDIS_URL"} {
		if !strings.Contains(help, key) {
			t.Errorf("Expected %s in help output", key)
		}
	}
}
