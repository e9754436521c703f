package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls the simulator. Every field is read from a COINCLASH_
// environment variable.
type Config struct {
	// Seed drives the first combat; 0 picks a random seed.
	Seed int64 `env:"COINCLASH_SEED"`
	// Combats is how many combats the simulator runs back to back.
	Combats     int    `env:"COINCLASH_COMBATS"      envDefault:"1"`
	CoinCount   int    `env:"COINCLASH_COIN_COUNT"   envDefault:"5"`
	ContentPath string `env:"COINCLASH_CONTENT_PATH"`
	// Enemy picks a roster entry by id; empty means the first one.
	Enemy              string `env:"COINCLASH_ENEMY"`
	Personality        string `env:"COINCLASH_PERSONALITY"`
	PlayerPersonality  string `env:"COINCLASH_PLAYER_PERSONALITY" envDefault:"balanced"`
	PlayerHealth       int    `env:"COINCLASH_PLAYER_HEALTH"        envDefault:"40"`
	SkillRechargeTurns int    `env:"COINCLASH_SKILL_RECHARGE_TURNS" envDefault:"2"`
	MaxTurns           int    `env:"COINCLASH_MAX_TURNS"            envDefault:"200"`
	LogLevel           string `env:"COINCLASH_LOG_LEVEL"            envDefault:"info"`
	LogFormat          string `env:"COINCLASH_LOG_FORMAT"           envDefault:"console"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no combat can run with.
func (c Config) Validate() error {
	switch {
	case c.CoinCount < 1:
		return fmt.Errorf("coin count %d: must be at least 1", c.CoinCount)
	case c.Combats < 1:
		return fmt.Errorf("combats %d: must be at least 1", c.Combats)
	case c.PlayerHealth < 1:
		return fmt.Errorf("player health %d: must be at least 1", c.PlayerHealth)
	case c.SkillRechargeTurns < 0:
		return fmt.Errorf("skill recharge turns %d: must not be negative", c.SkillRechargeTurns)
	case c.MaxTurns < 1:
		return fmt.Errorf("max turns %d: must be at least 1", c.MaxTurns)
	}
	return nil
}
