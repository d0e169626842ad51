// Package config loads the TOML service configuration.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration, loaded once at startup.
type Config struct {
	Server         ServerConfig   `toml:"server"`
	Database       DatabaseConfig `toml:"database"`
	CatalogService ClientConfig   `toml:"catalog_service"`
	Engine         EngineConfig   `toml:"engine"`
	Logs           LogsConfig     `toml:"logs"`
	Metrics        MetricsConfig  `toml:"metrics"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig configures the Postgres connection.
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrationsDir   string `toml:"migrations_dir"`
	RunMigrations   bool   `toml:"run_migrations"`
}

// DSN builds the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ClientConfig configures an outbound HTTP integration client.
type ClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// EngineConfig holds the availability engine tunables. They are passed into
// the enumerator and commit guard at construction time; nothing in the
// engine reads configuration ambiently.
type EngineConfig struct {
	// SlotGranularityMinutes is the step between offered slot start times.
	SlotGranularityMinutes int `toml:"slot_granularity_minutes"`
	// MinBookingNoticeMinutes is the minimum lead time before a slot start.
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes"`
	// SearchDaysAhead is the default availability search horizon.
	SearchDaysAhead int `toml:"search_days_ahead"`
	// MaxSearchDaysAhead caps a caller-provided horizon.
	MaxSearchDaysAhead int `toml:"max_search_days_ahead"`
	// MaxDateResults caps the number of dates one enumeration returns.
	MaxDateResults int `toml:"max_date_results"`
	// Timezone is the IANA zone used to resolve "today" for requests that
	// do not carry a consultant-specific zone.
	Timezone string `toml:"timezone"`
}

// LogsConfig configures the logger.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig configures the Prometheus subsystem.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Database.MigrationsDir == "" {
		cfg.Database.MigrationsDir = "migrations"
	}
	if cfg.CatalogService.Timeout == 0 {
		cfg.CatalogService.Timeout = 5
	}
	if cfg.Engine.SlotGranularityMinutes == 0 {
		cfg.Engine.SlotGranularityMinutes = 15
	}
	if cfg.Engine.MinBookingNoticeMinutes == 0 {
		cfg.Engine.MinBookingNoticeMinutes = 60
	}
	if cfg.Engine.SearchDaysAhead == 0 {
		cfg.Engine.SearchDaysAhead = 30
	}
	if cfg.Engine.MaxSearchDaysAhead == 0 {
		cfg.Engine.MaxSearchDaysAhead = 90
	}
	if cfg.Engine.MaxDateResults == 0 {
		cfg.Engine.MaxDateResults = 10
	}
	if cfg.Engine.Timezone == "" {
		cfg.Engine.Timezone = "UTC"
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "booking-engine"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if cfg.CatalogService.URL == "" {
		return fmt.Errorf("config: catalog_service.url is required")
	}
	if cfg.Engine.SlotGranularityMinutes < 0 || cfg.Engine.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("config: engine intervals must be non-negative")
	}
	return nil
}
