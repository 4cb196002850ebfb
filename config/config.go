// Package config handles loading the core's configuration record from
// YAML, independent of how a hosting CLI or daemon assembles it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the configuration record the core accepts, per the
// external-interfaces contract: ingestion source, state location,
// to-do defaults, and CalDAV backend settings.
type Config struct {
	CalendarPath             string       `yaml:"calendar_path"`
	StateDir                 string       `yaml:"state_dir"`
	DefaultDue               string       `yaml:"default_due"`
	DefaultPriority          int          `yaml:"default_priority"`
	DefaultPriorityNoneFirst bool         `yaml:"default_priority_none_first"`
	CalDAV                   CalDAVConfig `yaml:"caldav"`
}

// CalDAVConfig holds the connection settings for the CalDAV backend.
type CalDAVConfig struct {
	BaseURL      string     `yaml:"base_url"`
	CalendarHome string     `yaml:"calendar_home"`
	Auth         AuthConfig `yaml:"auth"`
	TimeoutSecs  int        `yaml:"timeout_secs"`
	UserAgent    string     `yaml:"user_agent"`
}

// AuthConfig selects and parameterizes the CalDAV auth variant.
// The password or token is not part of this file; the caller resolves
// it via the credentials package.
type AuthConfig struct {
	Kind     string `yaml:"kind"` // "none", "basic", "bearer"
	Username string `yaml:"username"`
}

// DefaultConfig returns a config with sensible defaults for ephemeral
// or first-run use.
func DefaultConfig() *Config {
	return &Config{
		StateDir:        GetDataDir(),
		DefaultPriority: 0,
		CalDAV: CalDAVConfig{
			TimeoutSecs: 30,
			UserAgent:   "aim/1.0",
			Auth:        AuthConfig{Kind: "none"},
		},
	}
}

// Load reads configuration from configPath, or the default XDG path if
// empty. If the file doesn't exist, it creates one populated with
// defaults and returns that.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = filepath.Join(GetConfigDir(), "config.yaml")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.save(configPath); err != nil {
			return nil, fmt.Errorf("config: write default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configPath, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", configPath, err)
	}

	if cfg.StateDir == "" {
		cfg.StateDir = GetDataDir()
	}
	cfg.StateDir = ExpandPath(cfg.StateDir)
	if cfg.CalendarPath != "" {
		cfg.CalendarPath = ExpandPath(cfg.CalendarPath)
	}
	if cfg.CalDAV.TimeoutSecs == 0 {
		cfg.CalDAV.TimeoutSecs = 30
	}
	if cfg.CalDAV.Auth.Kind == "" {
		cfg.CalDAV.Auth.Kind = "none"
	}

	return cfg, nil
}

func (c *Config) save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	content := "# aim configuration\n" + string(data)
	return os.WriteFile(path, []byte(content), 0644)
}

// Validate checks invariants Load doesn't already enforce by
// defaulting.
func (c *Config) Validate() error {
	switch c.CalDAV.Auth.Kind {
	case "none", "basic", "bearer":
	default:
		return fmt.Errorf("config: unknown caldav auth kind %q", c.CalDAV.Auth.Kind)
	}
	if c.CalDAV.BaseURL != "" {
		if c.CalDAV.Auth.Kind == "basic" && c.CalDAV.Auth.Username == "" {
			return fmt.Errorf("config: caldav auth kind 'basic' requires a username")
		}
	}
	return nil
}

// DatabasePath returns the path to the local SQLite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.StateDir, "aim.db")
}

// Timeout returns the configured CalDAV request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.CalDAV.TimeoutSecs) * time.Second
}

// getXDGDir returns a directory path following the XDG base directory
// spec, namespaced under "aim".
func getXDGDir(envVar, fallbackPath string) string {
	if xdgDir := os.Getenv(envVar); xdgDir != "" {
		return filepath.Join(xdgDir, "aim")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", fallbackPath, "aim")
	}
	return filepath.Join(home, fallbackPath, "aim")
}

// GetConfigDir returns the configuration directory following XDG spec.
func GetConfigDir() string {
	return getXDGDir("XDG_CONFIG_HOME", ".config")
}

// GetDataDir returns the data directory following XDG spec.
func GetDataDir() string {
	return getXDGDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// ExpandPath expands a leading ~ and environment variables in path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
