package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	AppEnv         string        `env:"APP_ENV" envDefault:"development"`
	DatabaseURL    string        `env:"DATABASE_URL" envDefault:"host=localhost user=postgres password=postgres dbname=stackit port=5432 sslmode=disable"`
	SessionSecret  string        `env:"SESSION_SECRET" envDefault:"secret_key_change_me"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"0.11"` // ~100 requests per 15 minutes
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"100"`
	LeaderboardTTL time.Duration `env:"LEADERBOARD_TTL" envDefault:"5m"`
}

func (c Config) Production() bool {
	return c.AppEnv == "production"
}

// Load reads an optional .env file, then parses the environment.
// A missing .env is not an error.
func Load(files ...string) (Config, bool, error) {
	loaded := godotenv.Load(files...) == nil

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, loaded, fmt.Errorf("parse env: %w", err)
	}
	return cfg, loaded, nil
}
