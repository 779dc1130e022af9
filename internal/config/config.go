// Package config loads application settings from an optional YAML file
// and STUDYDESK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DataModeLocal  = "local"
	DataModeSample = "sample"

	defaultSyncSchedule = "*/30 * * * *"
)

// Feed is a subscribed iCalendar feed.
type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Config holds settings shared by every command.
type Config struct {
	DBPath                 string `yaml:"db_path"`
	Timezone               string `yaml:"timezone"`
	DataMode               string `yaml:"data_mode"`
	DefaultDurationMinutes int    `yaml:"default_duration_minutes"`
	LogLevel               string `yaml:"log_level"`
	LogFormat              string `yaml:"log_format"`
	MetricsAddr            string `yaml:"metrics_addr"`
	Feeds                  []Feed `yaml:"feeds"`
	SyncSchedule           string `yaml:"sync_schedule"`
}

// DefaultConfig returns settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		DataMode:               DataModeLocal,
		DefaultDurationMinutes: domain.DefaultDurationMinutes,
		LogLevel:               "warn",
		LogFormat:              "console",
		SyncSchedule:           defaultSyncSchedule,
	}
}

// Dir returns the per-user data directory, ~/.studydesk.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".studydesk"), nil
}

// DefaultPath returns $STUDYDESK_CONFIG or ~/.studydesk/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("STUDYDESK_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the default config file, then applies environment overrides.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadFile reads YAML settings from path on top of DefaultConfig. A missing
// file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("STUDYDESK_DB"); v != "" {
		c.DBPath = v
	}
	if v := getenv("STUDYDESK_TZ"); v != "" {
		c.Timezone = v
	}
	if v := getenv("STUDYDESK_DATA_MODE"); v != "" {
		c.DataMode = v
	}
	if v := getenv("STUDYDESK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("STUDYDESK_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := getenv("STUDYDESK_METRICS_ADDR"); v != "" {
		c.MetricsAddr = v
	}
	if v := getenv("STUDYDESK_SYNC_SCHEDULE"); v != "" {
		c.SyncSchedule = v
	}
	if v := getenv("STUDYDESK_DEFAULT_DURATION_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STUDYDESK_DEFAULT_DURATION_MINUTES: %w", err)
		}
		c.DefaultDurationMinutes = n
	}
	return nil
}

func (c *Config) normalize() error {
	c.DataMode = strings.ToLower(strings.TrimSpace(c.DataMode))
	if c.DataMode == "" {
		c.DataMode = DataModeLocal
	}
	if c.DefaultDurationMinutes <= 0 {
		c.DefaultDurationMinutes = domain.DefaultDurationMinutes
	}
	if c.SyncSchedule == "" {
		c.SyncSchedule = defaultSyncSchedule
	}
	if c.DBPath == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		c.DBPath = filepath.Join(dir, "studydesk.db")
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.DataMode {
	case DataModeLocal, DataModeSample:
	default:
		return fmt.Errorf("data_mode must be %q or %q, got %q", DataModeLocal, DataModeSample, c.DataMode)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := cron.ParseStandard(c.SyncSchedule); err != nil {
		return fmt.Errorf("sync_schedule %q: %w", c.SyncSchedule, err)
	}
	seen := make(map[string]bool, len(c.Feeds))
	for i, f := range c.Feeds {
		if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.URL) == "" {
			return fmt.Errorf("feeds[%d]: name and url are required", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("feeds[%d]: duplicate name %q", i, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// Location resolves Timezone. Empty means the system local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Sample reports whether the in-memory sample calendar is selected.
func (c *Config) Sample() bool {
	return c.DataMode == DataModeSample
}

// Feed finds a configured feed by name.
func (c *Config) Feed(name string) (Feed, bool) {
	for _, f := range c.Feeds {
		if f.Name == name {
			return f, true
		}
	}
	return Feed{}, false
}
