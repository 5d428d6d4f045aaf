package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Remote API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Local session storage
	SessionDBPath string

	// Expense creation
	DefaultSubcategoryID int64
	// SubcategorySelect re-enables the subcategory picker. The original
	// client shipped with it scaffolded but disabled, so it stays off by
	// default and every new expense gets DefaultSubcategoryID.
	SubcategorySelect bool

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		APIBaseURL:  getEnv("KHARCHA_API_URL", "http://localhost:8000/api"),
		HTTPTimeout: getEnvDuration("KHARCHA_HTTP_TIMEOUT", 15*time.Second),

		SessionDBPath: getEnv("KHARCHA_SESSION_DB", defaultSessionDBPath()),

		DefaultSubcategoryID: int64(getEnvInt("KHARCHA_DEFAULT_SUBCATEGORY", 1)),
		SubcategorySelect:    getEnvBool("KHARCHA_SUBCATEGORY_SELECT", false),

		LogLevel: getEnv("KHARCHA_LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if parsedURL, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
	} else if parsedURL.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': missing host", c.APIBaseURL))
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if c.SessionDBPath == "" {
		errors = append(errors, "session database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SessionDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create session database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.DefaultSubcategoryID < 1 {
		errors = append(errors, fmt.Sprintf("invalid default subcategory id %d: must be at least 1", c.DefaultSubcategoryID))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func defaultSessionDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data/session.db"
	}
	return filepath.Join(home, ".kharcha", "session.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
