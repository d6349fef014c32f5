// Package config loads environment-driven configuration. Development gets
// localhost defaults; production must set every external endpoint
// explicitly.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"8080"`
	CORSOrigin  string `env:"CORS_ORIGIN"`
	DatabaseURL string `env:"DATABASE_URL"`
	APIBaseURL  string `env:"API_BASE_URL"`
	SiteURL     string `env:"SITE_URL"`
}

// Load parses the environment and applies development defaults. In
// production the CORS origin, database URL, API base URL, and site URL are
// all required.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Env == EnvProduction {
		for name, value := range map[string]string{
			"CORS_ORIGIN":  cfg.CORSOrigin,
			"DATABASE_URL": cfg.DatabaseURL,
			"API_BASE_URL": cfg.APIBaseURL,
			"SITE_URL":     cfg.SiteURL,
		} {
			if value == "" {
				return Config{}, fmt.Errorf("%s is not set for this environment", name)
			}
		}
		return cfg, nil
	}

	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:3000"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = fmt.Sprintf("http://localhost:%d/api", cfg.Port)
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = "http://localhost:3000"
	}
	return cfg, nil
}
