// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/Deimvis/MafiaGame/internal/room"
)

// Config holds the coordinator settings: where to listen and the game
// rules of the single hosted room.
type Config struct {
	Host string `env:"MAFIA_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"MAFIA_PORT" envDefault:"9000"`

	ActivePlayersNumber int `env:"MAFIA_PLAYERS" envDefault:"4"`
	MafiaNumber         int `env:"MAFIA_MAFIA" envDefault:"1"`
	SheriffNumber       int `env:"MAFIA_SHERIFF" envDefault:"1"`

	PhaseDuration time.Duration `env:"MAFIA_PHASE_DURATION" envDefault:"60s"`
}

// ProfileConfig holds the standalone profile service settings.
type ProfileConfig struct {
	Addr   string `env:"PROFILE_ADDR" envDefault:":8090"`
	DBPath string `env:"PROFILE_DB_PATH" envDefault:"profile.db"`
}

// Load parses and validates the coordinator config from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadProfile parses the profile service config from the environment.
func LoadProfile() (*ProfileConfig, error) {
	var cfg ProfileConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse profile config: %w", err)
	}
	return &cfg, nil
}

// Validate enforces the game-rule constraints: N > 2M, S >= 0, M + S < N,
// and N within the room's color palette.
func (c *Config) Validate() error {
	if c.ActivePlayersNumber > room.MaxPlayers {
		return fmt.Errorf("invalid rules: at most %d players are supported, got %d",
			room.MaxPlayers, c.ActivePlayersNumber)
	}
	if c.ActivePlayersNumber <= 2*c.MafiaNumber {
		return fmt.Errorf("invalid rules: players (%d) must exceed twice the mafia count (%d)",
			c.ActivePlayersNumber, c.MafiaNumber)
	}
	if c.SheriffNumber < 0 {
		return fmt.Errorf("invalid rules: sheriff count must not be negative, got %d", c.SheriffNumber)
	}
	if c.MafiaNumber+c.SheriffNumber >= c.ActivePlayersNumber {
		return fmt.Errorf("invalid rules: mafia (%d) plus sheriffs (%d) must be fewer than players (%d)",
			c.MafiaNumber, c.SheriffNumber, c.ActivePlayersNumber)
	}
	if c.PhaseDuration <= 0 {
		return fmt.Errorf("invalid phase duration: %v", c.PhaseDuration)
	}
	return nil
}

// ListenAddr returns the host:port pair the coordinator binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
