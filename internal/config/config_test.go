package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mastopress.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Mastodon.BaseURL = "https://mastodon.example"
	cfg.Mastodon.Hashtag = "golang"
	cfg.WordPress.BaseURL = "https://wp.example"
	cfg.WordPress.Username = "editor"
	cfg.applyDerivedDefaults()
	return cfg
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, BackendJSON, cfg.State.Backend)
	assert.Equal(t, "tracked_posts.json", cfg.State.Path)
	assert.Equal(t, "append", cfg.WordPress.UpdateMode)
	assert.Equal(t, "Mastodon Post ", cfg.WordPress.TitlePrefix)
	assert.Equal(t, 40, cfg.Mastodon.Limit)
	assert.Equal(t, uint64(3), cfg.Sync.CheckpointRetries)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
mastodon:
  base_url: https://mastodon.example
  hashtag: golang
  limit: 20
wordpress:
  base_url: https://wp.example
  username: editor
  password: secret
  update_mode: replace
state:
  backend: sqlite
  reset_on_corrupt: true
sync:
  interval: 90s
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://mastodon.example", cfg.Mastodon.BaseURL)
	assert.Equal(t, 20, cfg.Mastodon.Limit)
	assert.Equal(t, "replace", cfg.WordPress.UpdateMode)
	assert.Equal(t, "secret", cfg.WordPress.Password)
	assert.Equal(t, BackendSQLite, cfg.State.Backend)
	assert.Equal(t, "tracked_posts.sqlite", cfg.State.Path)
	assert.True(t, cfg.State.ResetOnCorrupt)
	assert.Equal(t, 90*time.Second, cfg.Sync.Interval)
	// Незаданные поля сохраняют значения по умолчанию
	assert.Equal(t, "Mastodon Post ", cfg.WordPress.TitlePrefix)
	assert.Equal(t, time.Second, cfg.Sync.CheckpointRetryDelay)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Sync, cfg.Sync)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "mastodon:\n  hashtg: typo\n"))
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "mastodon:\n  hashtag: fromfile\n")
	t.Setenv("MASTOPRESS_HASHTAG", "fromenv")
	t.Setenv("MASTOPRESS_WORDPRESS_PASSWORD", "envsecret")
	t.Setenv("MASTOPRESS_STATE_BACKEND", BackendBolt)
	t.Setenv("MASTOPRESS_INTERVAL", "10s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.Mastodon.Hashtag)
	assert.Equal(t, "envsecret", cfg.WordPress.Password)
	assert.Equal(t, BackendBolt, cfg.State.Backend)
	assert.Equal(t, "tracked_posts.db", cfg.State.Path)
	assert.Equal(t, 10*time.Second, cfg.Sync.Interval)
}

func TestLoad_InvalidEnvInterval(t *testing.T) {
	t.Setenv("MASTOPRESS_INTERVAL", "soon")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MASTOPRESS_INTERVAL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name: "missing endpoints",
			mutate: func(c *Config) {
				c.Mastodon.BaseURL = ""
				c.WordPress.BaseURL = "wp.example"
			},
			wantErr: []string{"mastodon.base_url is required", "wordpress.base_url must be an absolute"},
		},
		{
			name: "bad enums",
			mutate: func(c *Config) {
				c.WordPress.UpdateMode = "merge"
				c.State.Backend = "redis"
				c.Log.Format = "xml"
			},
			wantErr: []string{"wordpress.update_mode", "state.backend", "log.format"},
		},
		{
			name: "bad numbers",
			mutate: func(c *Config) {
				c.Mastodon.Limit = 41
				c.Sync.Interval = 0
				c.HTTP.Timeout = -1
			},
			wantErr: []string{"mastodon.limit", "sync.interval", "http.timeout"},
		},
		{
			name: "missing identity",
			mutate: func(c *Config) {
				c.Mastodon.Hashtag = ""
				c.WordPress.Username = ""
				c.Log.Level = "trace"
			},
			wantErr: []string{"mastodon.hashtag", "wordpress.username", "log.level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "debug", Format: "json"}, os.Stderr)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))

	logger, err = NewLogger(LogConfig{Level: "warn", Format: "text"}, os.Stderr)
	require.NoError(t, err)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))

	_, err = NewLogger(LogConfig{Level: "loud"}, os.Stderr)
	require.Error(t, err)
}
