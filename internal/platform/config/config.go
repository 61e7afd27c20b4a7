package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers understood by the bootstrap layer.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName   string `yaml:"service_name"`
	StorageDriver string `yaml:"storage_driver"`
	SQLitePath    string `yaml:"sqlite_path"`
	PostgresDSN   string `yaml:"postgres_dsn"`

	AllocatorMaxAttempts int           `yaml:"allocator_max_attempts"`
	QueueSize            int           `yaml:"queue_size"`
	DemoDelay            time.Duration `yaml:"demo_delay"`

	TracingEnabled bool   `yaml:"tracing_enabled"`
	TraceFile      string `yaml:"trace_file"`
	Verbose        bool   `yaml:"verbose"`
}

// Load resolves configuration in three layers: defaults, then an optional
// YAML file named by NOTEKIT_CONFIG, then environment variables. Env wins.
// A .env file in the working directory is folded into the environment first.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ServiceName:          "notekit",
		StorageDriver:        DriverMemory,
		SQLitePath:           "notekit.db",
		AllocatorMaxAttempts: 100,
		QueueSize:            128,
		DemoDelay:            2 * time.Second,
	}

	if path := strings.TrimSpace(os.Getenv("NOTEKIT_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.ServiceName = envString("SERVICE_NAME", cfg.ServiceName)
	cfg.StorageDriver = strings.ToLower(envString("STORAGE_DRIVER", cfg.StorageDriver))
	cfg.SQLitePath = envString("SQLITE_PATH", cfg.SQLitePath)
	cfg.PostgresDSN = envString("POSTGRES_DSN", cfg.PostgresDSN)
	cfg.AllocatorMaxAttempts = envInt("ALLOCATOR_MAX_ATTEMPTS", cfg.AllocatorMaxAttempts)
	cfg.QueueSize = envInt("QUEUE_SIZE", cfg.QueueSize)
	cfg.DemoDelay = envDuration("DEMO_DELAY", cfg.DemoDelay)
	cfg.TracingEnabled = envBool("TRACING_ENABLED", cfg.TracingEnabled)
	cfg.TraceFile = envString("TRACE_FILE", cfg.TraceFile)
	cfg.Verbose = envBool("VERBOSE", cfg.Verbose)

	switch cfg.StorageDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if cfg.StorageDriver == DriverPostgres && cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("storage driver %q requires POSTGRES_DSN", DriverPostgres)
	}
	if cfg.StorageDriver == DriverSQLite && cfg.SQLitePath == "" {
		return Config{}, fmt.Errorf("storage driver %q requires SQLITE_PATH", DriverSQLite)
	}

	return cfg, nil
}

func envString(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
