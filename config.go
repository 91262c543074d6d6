package userservice

import (
	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// devSigningKey is the well known development secret. It keeps local
// setups zero-config but must never survive into production; Validate
// rejects it when ENV=production.
const devSigningKey = "404E635266556A586E3272357538782F413F4428472B4B6250645367566B5970"

// Config holds every runtime knob, sourced from environment variables.
type Config struct {
	Env             string `env:"ENV" envDefault:"development"`
	Port            int    `env:"PORT" envDefault:"8080"`
	DBDSN           string `env:"DB_DSN" envDefault:"file::memory:?cache=shared"`
	JWTSecret       string `env:"JWT_SECRET" envDefault:"404E635266556A586E3272357538782F413F4428472B4B6250645367566B5970"`
	JWTExpirationMs int    `env:"JWT_EXPIRATION_MS" envDefault:"3600000"`
	JWTIssuer       string `env:"JWT_ISSUER" envDefault:"UserService"`
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "unable to parse environment configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the invariants the rest of the service assumes.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty", errors.CategoryOperation)
	}

	if c.JWTExpirationMs <= 0 {
		return errors.New("JWT_EXPIRATION_MS must be positive", errors.CategoryOperation)
	}

	if c.IsProduction() && c.JWTSecret == devSigningKey {
		return errors.New("JWT_SECRET still holds the development default in production", errors.CategoryOperation)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
