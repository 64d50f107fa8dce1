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
	"MATHCAT_CONFIG", "MATHCAT_HOST", "MATHCAT_PORT", "MATHCAT_READ_TIMEOUT",
	"MATHCAT_WRITE_TIMEOUT", "MATHCAT_REQUEST_TIMEOUT", "MATHCAT_ALLOWED_ORIGINS",
	"MATHCAT_DB_DRIVER", "MATHCAT_DB", "MATHCAT_REDIS_ENABLED", "MATHCAT_REDIS_ADDRESS",
	"MATHCAT_REDIS_PASSWORD", "MATHCAT_REDIS_DB", "MATHCAT_LOG_MODE", "MATHCAT_LOG_FILE",
	"MATHCAT_HOMEWORK_DAILY_LIMIT", "MATHCAT_HOMEWORK_MAX_TOKENS", "MATHCAT_HOMEWORK_HISTORY",
	"MATHCAT_USER",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATHCAT_PORT", "9090")
	t.Setenv("MATHCAT_REQUEST_TIMEOUT", "10s")
	t.Setenv("MATHCAT_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MATHCAT_DB_DRIVER", "postgres")
	t.Setenv("MATHCAT_DB", "postgres://cat@localhost/mathcat")
	t.Setenv("MATHCAT_REDIS_ENABLED", "true")
	t.Setenv("MATHCAT_HOMEWORK_DAILY_LIMIT", "5")
	t.Setenv("MATHCAT_USER", "ana")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://cat@localhost/mathcat", cfg.Database.DSN)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 5, cfg.Homework.DailyLimit)
	assert.Equal(t, "ana", cfg.Player.DefaultUserID)
}

func TestLoad_BadValuesKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATHCAT_PORT", "eighty")
	t.Setenv("MATHCAT_REDIS_ENABLED", "maybe")
	t.Setenv("MATHCAT_READ_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "mathcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7000
  write_timeout: 2m
log:
  mode: dev
homework:
  daily_limit: 12
redis:
  enabled: true
  address: redis:6379
`), 0o644))
	t.Setenv("MATHCAT_CONFIG", path)
	t.Setenv("MATHCAT_HOMEWORK_DAILY_LIMIT", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host, "unset keys keep defaults")
	assert.Equal(t, "dev", cfg.Log.Mode)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, 3, cfg.Homework.DailyLimit, "env wins over file")
	assert.Equal(t, 1500, cfg.Homework.MaxTokens)
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATHCAT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))
	t.Setenv("MATHCAT_CONFIG", path)
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too big", func(c *Config) { c.Server.Port = 70000 }, true},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = "postgres" }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"redis without address", func(c *Config) { c.Redis = RedisConfig{Enabled: true} }, true},
		{"bad log mode", func(c *Config) { c.Log.Mode = "loud" }, true},
		{"empty user", func(c *Config) { c.Player.DefaultUserID = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
		})
	}
}
