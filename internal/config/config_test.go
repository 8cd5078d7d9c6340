package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"EXAMIZ_DURATION", "EXAMIZ_INACTIVITY_THRESHOLD", "EXAMIZ_INACTIVITY_POLL",
	"EXAMIZ_NUDGE_DURATION_MS", "EXAMIZ_AUTHENTICATED", "EXAMIZ_DB",
	"LOG_LEVEL", "LOG_FORMAT", "EXAMIZ_LOG_FILE",
}

// isolate clears examiz variables and runs from an empty directory so a
// developer's .env cannot leak in.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg := Load()

	assert.Equal(t, 3600, cfg.DurationSeconds)
	assert.Equal(t, 5*time.Minute, cfg.InactivityThreshold())
	assert.Equal(t, time.Minute, cfg.InactivityPoll())
	assert.Equal(t, 10*time.Second, cfg.NudgeDuration())
	assert.True(t, cfg.Authenticated)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Empty(t, cfg.DBPath)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("EXAMIZ_DURATION", "900")
	t.Setenv("EXAMIZ_INACTIVITY_THRESHOLD", "120")
	t.Setenv("EXAMIZ_INACTIVITY_POLL", "30")
	t.Setenv("EXAMIZ_NUDGE_DURATION_MS", "2500")
	t.Setenv("EXAMIZ_AUTHENTICATED", "false")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()
	assert.Equal(t, 900, cfg.DurationSeconds)
	assert.Equal(t, 2*time.Minute, cfg.InactivityThreshold())
	assert.Equal(t, 30*time.Second, cfg.InactivityPoll())
	assert.Equal(t, 2500*time.Millisecond, cfg.NudgeDuration())
	assert.False(t, cfg.Authenticated)
	assert.Equal(t, "json", cfg.LogFormat)
	require.NoError(t, cfg.Validate())
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	isolate(t)
	t.Setenv("EXAMIZ_DURATION", "soon")
	t.Setenv("EXAMIZ_AUTHENTICATED", "maybe")

	cfg := Load()
	assert.Equal(t, 3600, cfg.DurationSeconds)
	assert.True(t, cfg.Authenticated)
}

func TestLoadReadsDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte("EXAMIZ_DURATION=42\n"), 0o644))
	// godotenv does not override variables already set, even to "".
	require.NoError(t, os.Unsetenv("EXAMIZ_DURATION"))

	cfg := Load()
	assert.Equal(t, 42, cfg.DurationSeconds)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"zero duration", func(c *Config) { c.DurationSeconds = 0 }, "EXAMIZ_DURATION"},
		{"poll above threshold", func(c *Config) { c.InactivityPollSeconds = 600 }, "EXAMIZ_INACTIVITY_POLL"},
		{"negative nudge", func(c *Config) { c.NudgeDurationMs = -1 }, "EXAMIZ_NUDGE_DURATION_MS"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DurationSeconds:            60,
				InactivityThresholdSeconds: 300,
				InactivityPollSeconds:      60,
				NudgeDurationMs:            10000,
				LogLevel:                   "info",
				LogFormat:                  "pretty",
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
