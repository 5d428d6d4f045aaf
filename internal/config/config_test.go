package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				APIBaseURL:           "http://localhost:8000/api",
				HTTPTimeout:          15 * time.Second,
				SessionDBPath:        "./session.db",
				DefaultSubcategoryID: 1,
				LogLevel:             "info",
			},
			wantErr: false,
		},
		{
			name: "invalid URL scheme",
			config: Config{
				APIBaseURL:           "ftp://localhost/api",
				HTTPTimeout:          15 * time.Second,
				SessionDBPath:        "./session.db",
				DefaultSubcategoryID: 1,
				LogLevel:             "info",
			},
			wantErr:     true,
			errorString: "invalid API base URL scheme",
		},
		{
			name: "timeout too small",
			config: Config{
				APIBaseURL:           "http://localhost:8000/api",
				HTTPTimeout:          100 * time.Millisecond,
				SessionDBPath:        "./session.db",
				DefaultSubcategoryID: 1,
				LogLevel:             "info",
			},
			wantErr:     true,
			errorString: "invalid HTTP timeout",
		},
		{
			name: "empty session path",
			config: Config{
				APIBaseURL:           "http://localhost:8000/api",
				HTTPTimeout:          15 * time.Second,
				DefaultSubcategoryID: 1,
				LogLevel:             "info",
			},
			wantErr:     true,
			errorString: "session database path",
		},
		{
			name: "subcategory id below 1",
			config: Config{
				APIBaseURL:           "http://localhost:8000/api",
				HTTPTimeout:          15 * time.Second,
				SessionDBPath:        "./session.db",
				DefaultSubcategoryID: 0,
				LogLevel:             "info",
			},
			wantErr:     true,
			errorString: "invalid default subcategory id",
		},
		{
			name: "bad log level",
			config: Config{
				APIBaseURL:           "http://localhost:8000/api",
				HTTPTimeout:          15 * time.Second,
				SessionDBPath:        "./session.db",
				DefaultSubcategoryID: 1,
				LogLevel:             "loud",
			},
			wantErr:     true,
			errorString: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:8000/api" {
		t.Fatalf("default API URL: %s", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("default timeout: %v", cfg.HTTPTimeout)
	}
	if cfg.DefaultSubcategoryID != 1 {
		t.Fatalf("default subcategory: %d", cfg.DefaultSubcategoryID)
	}
	if cfg.SubcategorySelect {
		t.Fatalf("subcategory picker must default to disabled")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KHARCHA_API_URL", "https://expenses.example.com/api")
	t.Setenv("KHARCHA_HTTP_TIMEOUT", "30s")
	t.Setenv("KHARCHA_DEFAULT_SUBCATEGORY", "4")
	t.Setenv("KHARCHA_SUBCATEGORY_SELECT", "true")

	cfg := Load()
	if cfg.APIBaseURL != "https://expenses.example.com/api" {
		t.Fatalf("API URL override: %s", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("timeout override: %v", cfg.HTTPTimeout)
	}
	if cfg.DefaultSubcategoryID != 4 {
		t.Fatalf("subcategory override: %d", cfg.DefaultSubcategoryID)
	}
	if !cfg.SubcategorySelect {
		t.Fatalf("subcategory toggle override")
	}
}
