package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Desktop   DesktopConfig
	Catalog   CatalogConfig
	Content   ContentConfig
	Session   SessionConfig
	Stream    StreamConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string   `envconfig:"PORT" default:"8000"`
	Host         string   `envconfig:"HOST" default:"0.0.0.0"`
	AllowOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds HTTP rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// DesktopConfig holds windowing engine configuration.
type DesktopConfig struct {
	Breakpoint      int    `envconfig:"DESKTOP_BREAKPOINT" default:"768"`
	InitialZ        int    `envconfig:"DESKTOP_INITIAL_Z" default:"100"`
	HomeWindow      string `envconfig:"DESKTOP_HOME" default:"dashboard"`
	TaskbarHeight   int    `envconfig:"DESKTOP_TASKBAR_HEIGHT" default:"56"`
	CascadeX        int    `envconfig:"DESKTOP_CASCADE_X" default:"100"`
	CascadeY        int    `envconfig:"DESKTOP_CASCADE_Y" default:"60"`
	CascadeStep     int    `envconfig:"DESKTOP_CASCADE_STEP" default:"15"`
	CascadeSteps    int    `envconfig:"DESKTOP_CASCADE_STEPS" default:"15"`
	WindowWidth     int    `envconfig:"DESKTOP_WINDOW_WIDTH" default:"800"`
	WindowHeight    int    `envconfig:"DESKTOP_WINDOW_HEIGHT" default:"550"`
	MinWidth        int    `envconfig:"DESKTOP_MIN_WIDTH" default:"320"`
	MinHeight       int    `envconfig:"DESKTOP_MIN_HEIGHT" default:"180"`
	MobileMinWidth  int    `envconfig:"DESKTOP_MOBILE_MIN_WIDTH" default:"260"`
	MobileMinHeight int    `envconfig:"DESKTOP_MOBILE_MIN_HEIGHT" default:"120"`
	ViewportWidth   int    `envconfig:"DESKTOP_VIEWPORT_WIDTH" default:"1440"`
	ViewportHeight  int    `envconfig:"DESKTOP_VIEWPORT_HEIGHT" default:"900"`
	QueueSize       int    `envconfig:"DESKTOP_QUEUE_SIZE" default:"256"`
}

// CatalogConfig holds application catalog configuration.
type CatalogConfig struct {
	Dir       string   `envconfig:"CATALOG_DIR" default:""`
	Installed []string `envconfig:"CATALOG_INSTALLED" default:"calc,timer,mindmap,journal"`
}

// ContentConfig holds panel content loading configuration.
type ContentConfig struct {
	Dir             string        `envconfig:"CONTENT_DIR" default:""`
	Timeout         time.Duration `envconfig:"CONTENT_TIMEOUT" default:"5s"`
	BreakerFailures uint32        `envconfig:"CONTENT_BREAKER_FAILURES" default:"5"`
	BreakerTimeout  time.Duration `envconfig:"CONTENT_BREAKER_TIMEOUT" default:"30s"`
}

// SessionConfig holds session snapshot storage configuration.
type SessionConfig struct {
	DSN string `envconfig:"SESSION_DSN" default:"file:desktop.db?_pragma=busy_timeout(5000)"`
}

// StreamConfig holds WebSocket stream configuration.
type StreamConfig struct {
	EventsPerSecond int           `envconfig:"STREAM_EVENTS_PER_SECOND" default:"240"`
	Burst           int           `envconfig:"STREAM_BURST" default:"60"`
	WriteTimeout    time.Duration `envconfig:"STREAM_WRITE_TIMEOUT" default:"10s"`
	PingInterval    time.Duration `envconfig:"STREAM_PING_INTERVAL" default:"30s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	d := c.Desktop
	switch {
	case d.Breakpoint <= 0:
		return fmt.Errorf("invalid config: breakpoint must be positive")
	case d.CascadeSteps <= 0:
		return fmt.Errorf("invalid config: cascade steps must be positive")
	case d.MinWidth <= 0 || d.MinHeight <= 0 || d.MobileMinWidth <= 0 || d.MobileMinHeight <= 0:
		return fmt.Errorf("invalid config: minimum window sizes must be positive")
	case d.WindowWidth < d.MinWidth || d.WindowHeight < d.MinHeight:
		return fmt.Errorf("invalid config: default window smaller than minimum")
	case d.QueueSize <= 0:
		return fmt.Errorf("invalid config: queue size must be positive")
	case c.Stream.EventsPerSecond <= 0 || c.Stream.Burst <= 0:
		return fmt.Errorf("invalid config: stream rate must be positive")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8000",
			Host:         "0.0.0.0",
			AllowOrigins: []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Desktop: DesktopConfig{
			Breakpoint:      768,
			InitialZ:        100,
			HomeWindow:      "dashboard",
			TaskbarHeight:   56,
			CascadeX:        100,
			CascadeY:        60,
			CascadeStep:     15,
			CascadeSteps:    15,
			WindowWidth:     800,
			WindowHeight:    550,
			MinWidth:        320,
			MinHeight:       180,
			MobileMinWidth:  260,
			MobileMinHeight: 120,
			ViewportWidth:   1440,
			ViewportHeight:  900,
			QueueSize:       256,
		},
		Catalog: CatalogConfig{
			Installed: []string{"calc", "timer", "mindmap", "journal"},
		},
		Content: ContentConfig{
			Timeout:         5 * time.Second,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Session: SessionConfig{
			DSN: "file:desktop.db?_pragma=busy_timeout(5000)",
		},
		Stream: StreamConfig{
			EventsPerSecond: 240,
			Burst:           60,
			WriteTimeout:    10 * time.Second,
			PingInterval:    30 * time.Second,
		},
	}
}
