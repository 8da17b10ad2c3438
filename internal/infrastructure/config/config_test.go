package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)

	// Desktop config
	assert.Equal(t, 768, cfg.Desktop.Breakpoint)
	assert.Equal(t, 100, cfg.Desktop.InitialZ)
	assert.Equal(t, "dashboard", cfg.Desktop.HomeWindow)
	assert.Equal(t, 56, cfg.Desktop.TaskbarHeight)
	assert.Equal(t, 320, cfg.Desktop.MinWidth)
	assert.Equal(t, 120, cfg.Desktop.MobileMinHeight)

	// Content config
	assert.Equal(t, 5*time.Second, cfg.Content.Timeout)

	require.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                     "9000",
		"HOST":                     "127.0.0.1",
		"CORS_ORIGINS":             "http://localhost:3000,http://localhost:5173",
		"LOG_LEVEL":                "debug",
		"LOG_DEV":                  "true",
		"RATE_LIMIT_ENABLED":       "false",
		"DESKTOP_INITIAL_Z":        "500",
		"DESKTOP_HOME":             "profile",
		"DESKTOP_BREAKPOINT":       "1024",
		"CATALOG_DIR":              "/etc/desktop/apps",
		"CATALOG_INSTALLED":        "calc,armory",
		"CONTENT_TIMEOUT":          "250ms",
		"SESSION_DSN":              "file::memory:",
		"STREAM_EVENTS_PER_SECOND": "60",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 500, cfg.Desktop.InitialZ)
	assert.Equal(t, "profile", cfg.Desktop.HomeWindow)
	assert.Equal(t, 1024, cfg.Desktop.Breakpoint)
	assert.Equal(t, "/etc/desktop/apps", cfg.Catalog.Dir)
	assert.Equal(t, []string{"calc", "armory"}, cfg.Catalog.Installed)
	assert.Equal(t, 250*time.Millisecond, cfg.Content.Timeout)
	assert.Equal(t, "file::memory:", cfg.Session.DSN)
	assert.Equal(t, 60, cfg.Stream.EventsPerSecond)

	// Untouched values keep their defaults
	assert.Equal(t, 56, cfg.Desktop.TaskbarHeight)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero breakpoint", "DESKTOP_BREAKPOINT", "0"},
		{"zero cascade steps", "DESKTOP_CASCADE_STEPS", "0"},
		{"window below minimum", "DESKTOP_WINDOW_WIDTH", "100"},
		{"not a number", "DESKTOP_INITIAL_Z", "abc"},
		{"bad duration", "CONTENT_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)

			cfg := LoadOrDefault()
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		dev       string
		wantLevel string
		wantDev   bool
	}{
		{"default values", "", "", "info", false},
		{"debug level", "debug", "", "debug", false},
		{"development mode", "", "true", "info", true},
		{"error level production", "error", "false", "error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.level != "" {
				t.Setenv("LOG_LEVEL", tt.level)
			}
			if tt.dev != "" {
				t.Setenv("LOG_DEV", tt.dev)
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantLevel, cfg.Logging.Level)
			assert.Equal(t, tt.wantDev, cfg.Logging.Development)
		})
	}
}
