package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/let-the-dreamers-rise/aurorasync-os/infra/bookinglog"
	"github.com/let-the-dreamers-rise/aurorasync-os/infra/metrics"
	"github.com/let-the-dreamers-rise/aurorasync-os/infra/mqtt"
)

// Config is the full service configuration.
type Config struct {
	API        APIConfig         `json:"api"`
	Workshops  WorkshopsConfig   `json:"workshops"`
	Forecast   ForecastConfig    `json:"forecast"`
	Metrics    MetricsConfig     `json:"metrics"`
	BookingLog bookinglog.Config `json:"booking_log"`
	Notifier   mqtt.Config       `json:"notifier"`
}

// APIConfig configures the scheduling HTTP API.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// ForecastConfig configures the demand forecaster seeding.
type ForecastConfig struct {
	// Seed drives the synthetic demand history; a fixed seed makes
	// forecasts reproducible across restarts.
	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *ForecastConfig) SetDefaults() {
	if c.Seed == 0 {
		c.Seed = 42
	}
}

// MetricsConfig configures the observability sinks.
type MetricsConfig struct {
	PrometheusEnabled bool                 `json:"prometheus_enabled"`
	PrometheusPort    string               `json:"prometheus_port"`
	InfluxEnabled     bool                 `json:"influx_enabled"`
	Influx            metrics.InfluxConfig `json:"influx"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":9090"
	}
}

// Load reads the configuration file (YAML or JSON by extension), applies
// AS_-prefixed environment overrides and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. AS_API__ADDR=:9000.
	if err := k.Load(env.Provider("AS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "as_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills every section's defaults.
func (c *Config) ApplyDefaults() {
	c.API.SetDefaults()
	c.Workshops.SetDefaults()
	c.Forecast.SetDefaults()
	c.Metrics.SetDefaults()
	c.BookingLog.SetDefaults()
	c.Notifier.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Workshops.Validate(); err != nil {
		return err
	}
	if err := c.BookingLog.Validate(); err != nil {
		return err
	}
	return nil
}

// Default returns a ready-to-use configuration without reading a file.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}
