// Package config loads service configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/hsereport/extract"
)

// Config is the full service configuration.
type Config struct {
	// Fields lists the tracked facility names.
	Fields []string `yaml:"fields"`

	// Markers configures the table marker literals.
	Markers MarkersConfig `yaml:"markers"`

	// Server configures the HTTP service.
	Server ServerConfig `yaml:"server"`

	// Database is the SQLite database path.
	Database string `yaml:"database"`

	// Concurrency bounds parallel document extraction in a batch.
	Concurrency int `yaml:"concurrency"`
}

// MarkersConfig holds the marker literals; report layouts can change, so
// they are configuration rather than compiled constants.
type MarkersConfig struct {
	Section    string `yaml:"section"`
	Terminator string `yaml:"terminator"`
	Nil        string `yaml:"nil"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// Password gates all API routes. Empty disables the gate (local use).
	Password string `yaml:"password"`

	// MaxUploadBytes caps one multipart upload request.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Fields: append([]string(nil), extract.DefaultFields...),
		Markers: MarkersConfig{
			Section:    extract.DefaultSectionMarker,
			Terminator: extract.DefaultTerminatorMarker,
			Nil:        extract.DefaultNilSentinel,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 50 * 1024 * 1024,
		},
		Database:    "hsereport.db",
		Concurrency: 4,
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment variables override either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies HSEREPORT_* environment variables on top of the
// file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HSEREPORT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("HSEREPORT_PASSWORD"); v != "" {
		c.Server.Password = v
	}
	if v := os.Getenv("HSEREPORT_DB"); v != "" {
		c.Database = v
	}
	if v := os.Getenv("HSEREPORT_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Concurrency = n
		}
	}
}

// FieldSet builds the extraction configuration from the loaded values.
func (c *Config) FieldSet() extract.FieldSet {
	return extract.FieldSet{
		Fields:           append([]string(nil), c.Fields...),
		SectionMarker:    c.Markers.Section,
		TerminatorMarker: c.Markers.Terminator,
		NilSentinel:      c.Markers.Nil,
	}
}

// Validate checks the configuration at load time. Field and marker rules
// are delegated to the extraction core.
func (c *Config) Validate() error {
	if err := c.FieldSet().Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("config: empty server address")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: max_upload_bytes must be positive")
	}
	if c.Database == "" {
		return fmt.Errorf("config: empty database path")
	}
	return nil
}
