package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are the process settings read from the environment at start-up.
// Game balance lives in the config file named by ConfigPath.
type Settings struct {
	ConfigPath          string        `env:"TELECARDS_CONFIG"`
	DBPath              string        `env:"TELECARDS_DB"            envDefault:"telecards.db"`
	ServerAddress       string        `env:"TELECARDS_ADDR"`
	Seed                int64         `env:"TELECARDS_SEED"`
	LogLevel            string        `env:"LOG_LEVEL"               envDefault:"info"`
	SessionSecret       string        `env:"SESSION_SECRET"`
	SessionTTL          time.Duration `env:"SESSION_TTL"             envDefault:"720h"`
	SessionSecureCookie bool          `env:"SESSION_SECURE_COOKIE"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse settings env: %w", err)
	}
	return s, nil
}

// Addr prefers the environment address over the config file's.
func (s Settings) Addr(cfg *LoadedConfig) string {
	if s.ServerAddress != "" {
		return s.ServerAddress
	}
	if cfg != nil && cfg.ServerAddress != "" {
		return cfg.ServerAddress
	}
	return DefaultServerAddress
}
