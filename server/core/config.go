package core

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the server process configuration, read from the environment.
// Flags in main may override individual fields.
type Config struct {
	Port        uint   `env:"BRAWL_PORT" envDefault:"7373"`
	TickRate    int    `env:"BRAWL_TICK_RATE" envDefault:"20"`
	PhysicsRate int    `env:"BRAWL_PHYSICS_RATE" envDefault:"60"`
	Name        string `env:"BRAWL_SERVER_NAME" envDefault:"Brawlcore Server"`
	Version     string `env:"BRAWL_VERSION" envDefault:""` // empty accepts any client
	MaxPlayers  int    `env:"BRAWL_MAX_PLAYERS" envDefault:"16"`
	MetricsAddr string `env:"BRAWL_METRICS_ADDR" envDefault:"127.0.0.1:9091"`
}

// LoadConfig parses configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
