// Package config loads daemon configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything cmd/campusd needs to start.
type Config struct {
	DBPath      string `env:"CAMPUSD_DB" envDefault:"data/campus.db"`
	Port        int    `env:"CAMPUSD_PORT" envDefault:"8080"`
	Seed        int64  `env:"CAMPUSD_SEED" envDefault:"42"`
	RulesPath   string `env:"CAMPUSD_RULES"`
	AdminKey    string `env:"CAMPUSD_ADMIN_KEY"`
	Player      string `env:"CAMPUSD_PLAYER" envDefault:"Aki"`
	Personality string `env:"CAMPUSD_PARENTS" envDefault:"ordinary"`
	Wallet      int    `env:"CAMPUSD_WALLET" envDefault:"10000"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
