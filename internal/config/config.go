// Package config loads runtime settings from the environment, optionally
// layered over a YAML file named by MATHCAT_CONFIG.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for mathcat.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	Homework HomeworkConfig `yaml:"homework"`
	Player   PlayerConfig   `yaml:"player"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the store backend. An empty sqlite DSN means the
// default per-user database file.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// RedisConfig holds Redis configuration. Redis is only used for the
// homework quota.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Mode string `yaml:"mode"` // dev or prod
	File string `yaml:"file"`
}

// HomeworkConfig tunes the homework helper.
type HomeworkConfig struct {
	DailyLimit    int `yaml:"daily_limit"`
	MaxTokens     int `yaml:"max_tokens"`
	HistoryWindow int `yaml:"history_window"`
}

// PlayerConfig holds player defaults.
type PlayerConfig struct {
	DefaultUserID string `yaml:"default_user_id"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   60 * time.Second,
			RequestTimeout: 45 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{Driver: "sqlite"},
		Redis:    RedisConfig{Address: "localhost:6379"},
		Log:      LogConfig{Mode: "prod"},
		Homework: HomeworkConfig{
			DailyLimit:    30,
			MaxTokens:     1500,
			HistoryWindow: 10,
		},
		Player: PlayerConfig{DefaultUserID: "local"},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// MATHCAT_CONFIG if set, then individual environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("MATHCAT_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Host = getEnv("MATHCAT_HOST", c.Server.Host)
	c.Server.Port = getEnvAsInt("MATHCAT_PORT", c.Server.Port)
	c.Server.ReadTimeout = getEnvAsDuration("MATHCAT_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsDuration("MATHCAT_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.RequestTimeout = getEnvAsDuration("MATHCAT_REQUEST_TIMEOUT", c.Server.RequestTimeout)
	c.Server.AllowedOrigins = getEnvAsList("MATHCAT_ALLOWED_ORIGINS", c.Server.AllowedOrigins)

	c.Database.Driver = getEnv("MATHCAT_DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("MATHCAT_DB", c.Database.DSN)

	c.Redis.Enabled = getEnvAsBool("MATHCAT_REDIS_ENABLED", c.Redis.Enabled)
	c.Redis.Address = getEnv("MATHCAT_REDIS_ADDRESS", c.Redis.Address)
	c.Redis.Password = getEnv("MATHCAT_REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvAsInt("MATHCAT_REDIS_DB", c.Redis.DB)

	c.Log.Mode = getEnv("MATHCAT_LOG_MODE", c.Log.Mode)
	c.Log.File = getEnv("MATHCAT_LOG_FILE", c.Log.File)

	c.Homework.DailyLimit = getEnvAsInt("MATHCAT_HOMEWORK_DAILY_LIMIT", c.Homework.DailyLimit)
	c.Homework.MaxTokens = getEnvAsInt("MATHCAT_HOMEWORK_MAX_TOKENS", c.Homework.MaxTokens)
	c.Homework.HistoryWindow = getEnvAsInt("MATHCAT_HOMEWORK_HISTORY", c.Homework.HistoryWindow)

	c.Player.DefaultUserID = getEnv("MATHCAT_USER", c.Player.DefaultUserID)
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case "sqlite":
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database DSN is required for postgres")
		}
	default:
		return fmt.Errorf("unknown database driver %q (want sqlite or postgres)", c.Database.Driver)
	}

	if c.Redis.Enabled && c.Redis.Address == "" {
		return fmt.Errorf("redis address is required when redis is enabled")
	}

	switch c.Log.Mode {
	case "dev", "prod":
	default:
		return fmt.Errorf("invalid log mode %q (want dev or prod)", c.Log.Mode)
	}

	if c.Player.DefaultUserID == "" {
		return fmt.Errorf("default user id must not be empty")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
