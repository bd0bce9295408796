package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Generator   GeneratorConfig `toml:"generator"`
	Community   CommunityConfig `toml:"community"`
	Pages       PagesConfig     `toml:"pages"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level       string   `toml:"level"`        // "debug", "info", "warn", "error"
	Format      string   `toml:"format"`       // "json" or "text"
	Output      []string `toml:"output"`       // "stdout", "file"
	ClientDebug bool     `toml:"client_debug"` // Enable client-side debug logging
}

// GeneratorConfig contains the external image generation API configuration.
// The API key is the only secret the application needs; it is resolved once
// at startup and immutable thereafter.
type GeneratorConfig struct {
	BaseURL   string `toml:"base_url"`   // Generation endpoint URL
	APIKey    string `toml:"api_key"`    // Bearer token for the generation endpoint
	Model     string `toml:"model"`      // Model identifier sent with every request
	Timeout   string `toml:"timeout"`    // HTTP timeout as duration string (default: "60s")
	RateLimit string `toml:"rate_limit"` // Minimum interval between requests (default: "2s")
}

// CommunityConfig controls the placeholder community gallery feed.
type CommunityConfig struct {
	Size int `toml:"size"` // Number of placeholder entries served (default: 20)
}

// PagesConfig contains configuration for HTML page templates
type PagesConfig struct {
	Dir string `toml:"dir"` // Directory containing page templates (default: auto-discover ./pages)
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in imaginai.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
		Generator: GeneratorConfig{
			BaseURL:   "",                       // User must provide the endpoint URL
			APIKey:    "",                       // User must provide API key (no fallback)
			Model:     "stable-diffusion-xl-v1", // Default model identifier
			Timeout:   "60s",
			RateLimit: "2s",
		},
		Community: CommunityConfig{
			Size: 20,
		},
		Pages: PagesConfig{
			Dir: "", // Empty = auto-discover ./pages
		},
	}
}

// GetTimeout parses the generator timeout, falling back to 60s on bad input.
func (g *GeneratorConfig) GetTimeout() time.Duration {
	if d, err := time.ParseDuration(g.Timeout); err == nil && d > 0 {
		return d
	}
	return 60 * time.Second
}

// GetRateLimit parses the generator rate limit interval, falling back to 2s.
func (g *GeneratorConfig) GetRateLimit() time.Duration {
	if d, err := time.ParseDuration(g.RateLimit); err == nil && d > 0 {
		return d
	}
	return 2 * time.Second
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env -> CLI. Later files override
// earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	// Start with defaults
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier files)
	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// Apply environment variables (overrides all file configs)
	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: IMAGINAI_ENV, fallback: GO_ENV)
	if env := os.Getenv("IMAGINAI_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("IMAGINAI_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("IMAGINAI_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("IMAGINAI_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("IMAGINAI_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("IMAGINAI_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("IMAGINAI_LOG_OUTPUT"); output != "" {
		// Split comma-separated output types
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			trimmed := strings.TrimSpace(o)
			if trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Generator configuration
	if baseURL := os.Getenv("IMAGINAI_GENERATOR_BASE_URL"); baseURL != "" {
		config.Generator.BaseURL = baseURL
	}
	if apiKey := os.Getenv("IMAGINAI_GENERATOR_API_KEY"); apiKey != "" {
		config.Generator.APIKey = apiKey
	}
	if model := os.Getenv("IMAGINAI_GENERATOR_MODEL"); model != "" {
		config.Generator.Model = model
	}
	if timeout := os.Getenv("IMAGINAI_GENERATOR_TIMEOUT"); timeout != "" {
		if _, err := time.ParseDuration(timeout); err == nil {
			config.Generator.Timeout = timeout
		}
	}
	if rateLimit := os.Getenv("IMAGINAI_GENERATOR_RATE_LIMIT"); rateLimit != "" {
		if _, err := time.ParseDuration(rateLimit); err == nil {
			config.Generator.RateLimit = rateLimit
		}
	}

	// Community configuration
	if size := os.Getenv("IMAGINAI_COMMUNITY_SIZE"); size != "" {
		if s, err := strconv.Atoi(size); err == nil && s > 0 {
			config.Community.Size = s
		}
	}

	// Pages configuration
	if dir := os.Getenv("IMAGINAI_PAGES_DIR"); dir != "" {
		config.Pages.Dir = dir
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
