// Package config holds the settings shared by every starters command.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/starters/features"
	"github.com/rustyeddy/starters/schedule"
)

// Config is the complete tool configuration.
type Config struct {
	SchedulePath      string           `koanf:"schedule_path" yaml:"schedule_path"`
	StartersDir       string           `koanf:"starters_dir" yaml:"starters_dir"`
	OutputPath        string           `koanf:"output_path" yaml:"output_path"`
	XLSXPath          string           `koanf:"xlsx_path" yaml:"xlsx_path,omitempty"`
	Season            int              `koanf:"season" yaml:"season"`
	CompletedStatuses []string         `koanf:"completed_statuses" yaml:"completed_statuses"`
	FillPolicy        string           `koanf:"fill_policy" yaml:"fill_policy"`
	Workers           int              `koanf:"workers" yaml:"workers"`
	LogLevel          string           `koanf:"log_level" yaml:"log_level"`
	Columns           schedule.Columns `koanf:"columns" yaml:"columns"`
	Store             StoreConfig      `koanf:"store" yaml:"store"`
	Collector         CollectorConfig  `koanf:"collector" yaml:"collector"`
	Metrics           MetricsConfig    `koanf:"metrics" yaml:"metrics"`
}

// StoreConfig selects where run history is kept. Empty paths disable a sink.
type StoreConfig struct {
	SQLitePath string `koanf:"sqlite_path" yaml:"sqlite_path"`
	MySQLDSN   string `koanf:"mysql_dsn" yaml:"mysql_dsn,omitempty"`
}

// CollectorConfig controls game-log downloads.
type CollectorConfig struct {
	BaseURL     string        `koanf:"base_url" yaml:"base_url"`
	LookupURL   string        `koanf:"lookup_url" yaml:"lookup_url"`
	Renderer    string        `koanf:"renderer" yaml:"renderer"`
	ChromePath  string        `koanf:"chrome_path" yaml:"chrome_path,omitempty"`
	SettleDelay time.Duration `koanf:"settle_delay" yaml:"settle_delay"`
	RPS         float64       `koanf:"rps" yaml:"rps"`
	Burst       int           `koanf:"burst" yaml:"burst"`
	Timeout     time.Duration `koanf:"timeout" yaml:"timeout"`
	UserAgent   string        `koanf:"user_agent" yaml:"user_agent"`
	Force       bool          `koanf:"force" yaml:"force"`
}

// MetricsConfig enables pushing run metrics.
type MetricsConfig struct {
	Pushgateway string `koanf:"pushgateway" yaml:"pushgateway,omitempty"`
	Job         string `koanf:"job" yaml:"job"`
}

const (
	RendererHTTP   = "http"
	RendererChrome = "chrome"
)

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	return &Config{
		SchedulePath:      "./eda/mlb-2025.csv",
		StartersDir:       "./data/starters",
		OutputPath:        "mlb-2025-with-starter-stats.csv",
		Season:            2025,
		CompletedStatuses: []string{"Final"},
		FillPolicy:        string(features.FillFirst),
		Workers:           1,
		LogLevel:          "info",
		Columns:           schedule.DefaultColumns(),
		Store: StoreConfig{
			SQLitePath: "starters.db",
		},
		Collector: CollectorConfig{
			BaseURL:     "https://baseballsavant.mlb.com",
			LookupURL:   "https://statsapi.mlb.com/api/v1/people/search",
			Renderer:    RendererChrome,
			SettleDelay: 2 * time.Second,
			RPS:         0.5,
			Burst:       1,
			Timeout:     30 * time.Second,
			UserAgent:   "starters/1.0",
		},
		Metrics: MetricsConfig{
			Job: "starters",
		},
	}
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SchedulePath == "" {
		return fmt.Errorf("%w: schedule_path is required", ErrInvalidConfig)
	}
	if c.StartersDir == "" {
		return fmt.Errorf("%w: starters_dir is required", ErrInvalidConfig)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output_path is required", ErrInvalidConfig)
	}
	if _, err := features.ParseFillPolicy(c.FillPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	}
	if len(c.CompletedStatuses) == 0 {
		return fmt.Errorf("%w: completed_statuses must not be empty", ErrInvalidConfig)
	}
	if c.Columns.Date == "" {
		return fmt.Errorf("%w: columns.date is required", ErrInvalidConfig)
	}
	switch c.Collector.Renderer {
	case RendererHTTP, RendererChrome:
	default:
		return fmt.Errorf("%w: collector.renderer must be %q or %q", ErrInvalidConfig, RendererHTTP, RendererChrome)
	}
	if c.Collector.RPS <= 0 {
		return fmt.Errorf("%w: collector.rps must be positive", ErrInvalidConfig)
	}
	if c.Collector.Burst <= 0 {
		return fmt.Errorf("%w: collector.burst must be positive", ErrInvalidConfig)
	}
	return nil
}
