package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
}

type AppConfig struct {
	Name        string
	Environment string
}

type ServerConfig struct {
	Port string
	// RateLimit is the number of requests per minute allowed for a single client.
	RateLimit int
}

type DatabaseConfig struct {
	Backend string
	URI     string
	Name    string
	Timeout time.Duration
}

type LogConfig struct {
	Level string
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Load builds a fresh Config from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "pocketbook"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:      getEnv("SERVER_PORT", "8080"),
			RateLimit: getEnvInt("SERVER_RATE_LIMIT", 100),
		},
		Database: DatabaseConfig{
			Backend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendMongo)),
			URI:     getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Name:    getEnv("MONGODB_DB", "pocketbook"),
			Timeout: getEnvDuration("MONGODB_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var problems []string

	switch c.Database.Backend {
	case BackendMongo:
		if c.Database.Name == "" {
			problems = append(problems, "MONGODB_DB cannot be empty")
		}
		parsed, err := url.Parse(c.Database.URI)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid MONGODB_URI: %v", err))
		} else if parsed.Scheme != "mongodb" && parsed.Scheme != "mongodb+srv" {
			problems = append(problems, fmt.Sprintf("invalid MONGODB_URI scheme '%s': must be 'mongodb' or 'mongodb+srv'", parsed.Scheme))
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid STORAGE_BACKEND '%s': must be one of [%s %s]", c.Database.Backend, BackendMongo, BackendMemory))
	}

	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid SERVER_PORT '%s'", c.Server.Port))
	}

	if c.Database.Timeout <= 0 {
		problems = append(problems, "MONGODB_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

var (
	current *Config
	mu      sync.Mutex
)

// Get returns the process-wide Config, loading it on first use.
// Call Reset to force the next Get to read the environment again.
func Get() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return current, nil
	}

	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	current = cfg
	return current, nil
}

func Reset() {
	mu.Lock()
	current = nil
	mu.Unlock()
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
