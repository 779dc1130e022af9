package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile_ReadsYAML(t *testing.T) {
	path := writeConfig(t, `
timezone: Europe/Berlin
data_mode: sample
default_duration_minutes: 45
log_level: debug
metrics_addr: 127.0.0.1:9464
sync_schedule: "0 * * * *"
feeds:
  - name: uni
    url: https://example.edu/timetable.ics
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, DataModeSample, cfg.DataMode)
	assert.Equal(t, 45, cfg.DefaultDurationMinutes)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:9464", cfg.MetricsAddr)
	assert.Equal(t, "0 * * * *", cfg.SyncSchedule)
	require.Len(t, cfg.Feeds, 1)
	assert.Equal(t, Feed{Name: "uni", URL: "https://example.edu/timetable.ics"}, cfg.Feeds[0])
	assert.True(t, cfg.Sample())
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "feeds: [oops"))
	assert.Error(t, err)
}

func TestApplyEnv_Overrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataMode = DataModeSample

	err := cfg.applyEnv(envMap(map[string]string{
		"STUDYDESK_DB":                       "/tmp/s.db",
		"STUDYDESK_TZ":                       "UTC",
		"STUDYDESK_DATA_MODE":                "local",
		"STUDYDESK_LOG_LEVEL":                "info",
		"STUDYDESK_METRICS_ADDR":             ":9464",
		"STUDYDESK_DEFAULT_DURATION_MINUTES": "30",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/s.db", cfg.DBPath)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, DataModeLocal, cfg.DataMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":9464", cfg.MetricsAddr)
	assert.Equal(t, 30, cfg.DefaultDurationMinutes)
}

func TestApplyEnv_BadDuration(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.applyEnv(envMap(map[string]string{"STUDYDESK_DEFAULT_DURATION_MINUTES": "an hour"}))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	cfg := &Config{DBPath: "/tmp/x.db", DataMode: " SAMPLE "}
	require.NoError(t, cfg.normalize())
	assert.Equal(t, DataModeSample, cfg.DataMode)
	assert.Equal(t, 60, cfg.DefaultDurationMinutes)
	assert.Equal(t, defaultSyncSchedule, cfg.SyncSchedule)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad data mode", func(c *Config) { c.DataMode = "cloud" }, true},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
		{"bad schedule", func(c *Config) { c.SyncSchedule = "every hour" }, true},
		{"feed without url", func(c *Config) { c.Feeds = []Feed{{Name: "uni"}} }, true},
		{"duplicate feed", func(c *Config) {
			c.Feeds = []Feed{{Name: "uni", URL: "a"}, {Name: "uni", URL: "b"}}
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFeedLookup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Feeds = []Feed{{Name: "uni", URL: "https://example.edu/a.ics"}}

	f, ok := cfg.Feed("uni")
	assert.True(t, ok)
	assert.Equal(t, "https://example.edu/a.ics", f.URL)

	_, ok = cfg.Feed("gym")
	assert.False(t, ok)
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.NotNil(t, loc)

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
