package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when CONFIG_FILE is not set. A missing file is not an error.
const DefaultConfigFile = "config.yaml"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Upstream ticket sheet
	Source SourceConfig `yaml:"source"`

	// Snapshot cache
	Cache CacheConfig `yaml:"cache"`

	// Background refresh schedule
	Refresh RefreshConfig `yaml:"refresh"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Cross-origin access for the front-end
	CORS CORSConfig `yaml:"cors"`

	// Notification feed
	Notifications NotificationsConfig `yaml:"notifications"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging"`

	// Application metadata
	App AppConfig `yaml:"app"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SourceConfig describes where the ticket CSV is published
type SourceConfig struct {
	URL       string        `yaml:"url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// CacheConfig holds snapshot cache configuration
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// RefreshConfig holds the background refresh schedule
type RefreshConfig struct {
	Interval  time.Duration `yaml:"interval"`
	OnStartup bool          `yaml:"on_startup"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
	RefreshRPS        float64 `yaml:"refresh_rps"` // Stricter limit for manual refresh
	RefreshBurst      int     `yaml:"refresh_burst"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// NotificationsConfig holds notification feed configuration
type NotificationsConfig struct {
	Capacity int `yaml:"capacity"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	PublicURL   string `yaml:"public_url"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Source: SourceConfig{
			Timeout:   30 * time.Second,
			UserAgent: "support-dashboard",
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
		Refresh: RefreshConfig{
			Interval:  time.Hour,
			OnStartup: true,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 10,
			BurstSize:         20,
			RefreshRPS:        0.2,
			RefreshBurst:      3,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{},
		},
		Notifications: NotificationsConfig{
			Capacity: 50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		App: AppConfig{
			Name:        "support-dashboard",
			Version:     "dev",
			Environment: "development",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file and
// environment variables, in that order of precedence (lowest first).
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Default()

	if err := cfg.loadFile(getEnvOrDefault("CONFIG_FILE", DefaultConfigFile)); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server = ServerConfig{
		Port:            getEnvOrDefault("SERVER_PORT", c.Server.Port),
		ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", c.Server.ReadTimeout),
		WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout),
		IdleTimeout:     getDurationOrDefault("SERVER_IDLE_TIMEOUT", c.Server.IdleTimeout),
		ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout),
	}
	c.Source = SourceConfig{
		URL:       getEnvOrDefault("SOURCE_URL", c.Source.URL),
		Timeout:   getDurationOrDefault("SOURCE_TIMEOUT", c.Source.Timeout),
		UserAgent: getEnvOrDefault("SOURCE_USER_AGENT", c.Source.UserAgent),
	}
	c.Cache.TTL = getDurationOrDefault("CACHE_TTL", c.Cache.TTL)
	c.Refresh = RefreshConfig{
		Interval:  getDurationOrDefault("REFRESH_INTERVAL", c.Refresh.Interval),
		OnStartup: getBoolOrDefault("REFRESH_ON_STARTUP", c.Refresh.OnStartup),
	}
	c.RateLimit = RateLimitConfig{
		Enabled:           getBoolOrDefault("RATE_LIMIT_ENABLED", c.RateLimit.Enabled),
		RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", c.RateLimit.RequestsPerSecond),
		BurstSize:         getIntOrDefault("RATE_LIMIT_BURST", c.RateLimit.BurstSize),
		RefreshRPS:        getFloatOrDefault("RATE_LIMIT_REFRESH_RPS", c.RateLimit.RefreshRPS),
		RefreshBurst:      getIntOrDefault("RATE_LIMIT_REFRESH_BURST", c.RateLimit.RefreshBurst),
	}
	c.CORS.AllowedOrigins = getStringSliceOrDefault("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.Notifications.Capacity = getIntOrDefault("NOTIFICATIONS_CAPACITY", c.Notifications.Capacity)
	c.Logging = LoggingConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", c.Logging.Level),
		Format: getEnvOrDefault("LOG_FORMAT", c.Logging.Format),
	}
	c.App = AppConfig{
		Name:        getEnvOrDefault("APP_NAME", c.App.Name),
		Version:     getEnvOrDefault("APP_VERSION", c.App.Version),
		Environment: getEnvOrDefault("APP_ENV", c.App.Environment),
		PublicURL:   getEnvOrDefault("APP_PUBLIC_URL", c.App.PublicURL),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	// Required fields
	if c.Source.URL == "" {
		errs = append(errs, "SOURCE_URL is required")
	} else if !isAbsoluteHTTPURL(c.Source.URL) {
		errs = append(errs, "SOURCE_URL must be an absolute http(s) URL")
	}

	if c.App.PublicURL != "" && !isAbsoluteHTTPURL(c.App.PublicURL) {
		errs = append(errs, "APP_PUBLIC_URL must be an absolute http(s) URL")
	}

	// Logical validations
	if c.Cache.TTL <= 0 {
		errs = append(errs, "CACHE_TTL must be positive")
	}

	if c.Refresh.Interval <= 0 {
		errs = append(errs, "REFRESH_INTERVAL must be positive")
	}

	if c.Source.Timeout < 0 {
		errs = append(errs, "SOURCE_TIMEOUT cannot be negative")
	}

	if c.Notifications.Capacity <= 0 {
		errs = append(errs, "NOTIFICATIONS_CAPACITY must be positive")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.RefreshRPS <= 0) {
		errs = append(errs, "rate limits must be positive when RATE_LIMIT_ENABLED is set")
	}

	// Security validations
	if c.IsProduction() && len(c.CORS.AllowedOrigins) == 0 {
		errs = append(errs, "CORS_ALLOWED_ORIGINS must be set in production")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// String returns a redacted string representation of the config (safe for logging)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Server: %s, Source: %s, CacheTTL: %s, RefreshInterval: %s, RateLimit: %v, Environment: %s}",
		c.Server.Port,
		redactURL(c.Source.URL),
		c.Cache.TTL,
		c.Refresh.Interval,
		c.RateLimit.Enabled,
		c.App.Environment,
	)
}

// redactURL keeps the scheme and host of a URL. Published sheet paths and
// query strings act as capabilities, so they are never logged.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "[REDACTED]"
	}
	return u.Scheme + "://" + u.Host + "/[REDACTED]"
}
