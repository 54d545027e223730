// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port              int           `env:"PORT,default=8080"`
	DBPath            string        `env:"DB_PATH,default=./data/oneroom.db"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	TokenDuration     time.Duration `env:"TOKEN_DURATION,default=24h"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	CORSAllowedOrigin string        `env:"CORS_ALLOWED_ORIGIN,default=*"`
}

// Load reads a .env file when one exists, then the process environment.
func Load() (Config, error) {
	// A missing .env file is fine; real deployments set the variables directly.
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnvSet builds a Config from an explicit set of variables.
func FromEnvSet(es env.EnvSet) (Config, error) {
	var cfg Config
	if err := env.Unmarshal(es, &cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT out of range: %d", c.Port)
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("config error: JWT_SECRET must be at least 16 characters")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("config error: TOKEN_DURATION must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
