package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/lancera-lab/lancera-reputation/internal/core/clock"
)

// Config is the top-level application config.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Reputation ReputationConfig `koanf:"reputation"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	Type         string `koanf:"type"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

// ReputationConfig controls the counting pipeline: the business timezone the
// day boundaries live in, the backfill page size, and the in-process daily
// scheduler.
type ReputationConfig struct {
	Timezone         string `koanf:"timezone"`
	BackfillPageSize int    `koanf:"backfill_page_size"`
	SchedulerEnabled bool   `koanf:"scheduler_enabled"`
	SchedulerDelay   string `koanf:"scheduler_delay"` // parsed and validated on startup
}

// EffectiveSchedulerDelay returns the parsed boundary delay.
func (c ReputationConfig) EffectiveSchedulerDelay() (time.Duration, error) {
	if c.SchedulerDelay == "" {
		return 15 * time.Minute, nil
	}
	return time.ParseDuration(c.SchedulerDelay)
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}
	if c.Database.Type != "" && c.Database.Type != "postgres" {
		return fmt.Errorf("unsupported database.type %q", c.Database.Type)
	}

	if _, err := time.LoadLocation(c.Reputation.Timezone); err != nil {
		return fmt.Errorf("invalid reputation.timezone %q: %w", c.Reputation.Timezone, err)
	}
	if c.Reputation.BackfillPageSize <= 0 {
		return fmt.Errorf("reputation.backfill_page_size must be > 0")
	}
	delay, err := c.Reputation.EffectiveSchedulerDelay()
	if err != nil {
		return fmt.Errorf("invalid reputation.scheduler_delay %q: %w", c.Reputation.SchedulerDelay, err)
	}
	if delay < 0 {
		return fmt.Errorf("reputation.scheduler_delay must be >= 0")
	}

	return nil
}

// Load parses config from defaults, then an optional YAML file, then
// LANCERA_-prefixed env vars (double underscore maps to a dot), and
// validates the result.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                   8080,
		"server.host":                   "0.0.0.0",
		"server.max_body_size_mb":       1,
		"server.mode":                   "release",
		"database.type":                 "postgres",
		"database.dsn":                  "",
		"database.max_open_conns":       25,
		"database.max_idle_conns":       25,
		"database.auto_migrate":         true,
		"reputation.timezone":           clock.DefaultBusinessTimezone,
		"reputation.backfill_page_size": 5000,
		"reputation.scheduler_enabled":  false,
		"reputation.scheduler_delay":    "15m",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("LANCERA_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "LANCERA_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
