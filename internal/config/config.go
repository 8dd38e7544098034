package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the dashboard's environment-derived settings.
type Config struct {
	APIBaseURL        string `env:"API_BASE_URL" envDefault:"http://localhost:5001/api"`
	SocketURL         string `env:"SOCKET_URL" envDefault:"ws://localhost:5001/ws"`
	PageSize          int    `env:"PAGE_SIZE" envDefault:"10"`
	ReconnectAttempts int    `env:"RECONNECT_ATTEMPTS" envDefault:"5"`
}

// Load reads a .env file if present, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
