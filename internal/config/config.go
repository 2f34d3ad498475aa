// Package config loads fruitgraph settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// History drivers.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the fruitgraph configuration file.
type Config struct {
	// Graph selects the workflow: "basic" or "review".
	Graph string `yaml:"graph"`

	// MaxSteps bounds node executions per invocation. 0 disables the limit.
	MaxSteps int `yaml:"max_steps"`

	// NodeTimeout bounds each node execution, e.g. "2s". Empty or 0 disables it.
	NodeTimeout Duration `yaml:"node_timeout"`

	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig controls the event log written to stderr.
type LogConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// HistoryConfig selects where step history is recorded.
type HistoryConfig struct {
	Driver string `yaml:"driver"`
	// DSN is a file path for sqlite and a go-sql-driver DSN for mysql.
	DSN string `yaml:"dsn"`
}

// TracingConfig enables OpenTelemetry spans exported to stderr.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MetricsConfig enables a Prometheus text dump after the run.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

// UnmarshalYAML parses values such as "500ms" or "2s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Graph:    "basic",
		MaxSteps: 25,
		Log: LogConfig{
			Format: FormatText,
			Level:  "info",
		},
		History: HistoryConfig{Driver: DriverNone},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	if c.Graph != "basic" && c.Graph != "review" {
		errs = append(errs, fmt.Errorf("graph must be basic or review, got %q", c.Graph))
	}
	if c.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("max_steps cannot be negative, got %d", c.MaxSteps))
	}
	if c.NodeTimeout < 0 {
		errs = append(errs, errors.New("node_timeout cannot be negative"))
	}

	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	switch c.History.Driver {
	case DriverNone, DriverMemory:
	case DriverSQLite, DriverMySQL:
		if c.History.DSN == "" {
			errs = append(errs, fmt.Errorf("history.dsn is required for driver %s", c.History.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown history.driver %q", c.History.Driver))
	}

	return errors.Join(errs...)
}
