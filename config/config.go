package config

import (
	"os"
	"strings"
)

// Config is the main SDK configuration struct that composes domain-specific
// configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config files for
// details on available environment variables:
//   - backend.go: Backend host configuration
//   - auth.go: Auth store, verifier, identity, and OAuth configuration
type Config struct {
	// IsDev controls development mode behavior (local backend trust
	// handshake, relaxed TLS on loopback). Set DEV=true or
	// NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Game identification on the backend.
	Game GameConfig `envPrefix:"GAME_"`

	// Backend connection configuration.
	Backend BackendConfig `envPrefix:"BACKEND_"`

	// Authentication configuration.
	Auth AuthConfig
}

// GameConfig identifies this game on the backend. Name and Description are
// only used when the game self-registers on first contact.
type GameConfig struct {
	ID          string `env:"ID,required"`
	Name        string `env:"NAME"        envDefault:""`
	Description string `env:"DESCRIPTION" envDefault:""`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment
// variables.
func (c *Config) Sanitize() {
	c.Backend.Sanitize()
	c.Auth.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *Config) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
