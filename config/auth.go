package config

import (
	"fmt"
	"strings"
	"time"
)

// StoreKind selects where the auth record is persisted.
type StoreKind string

const (
	// StoreFile persists the record to a file in the identity directory.
	StoreFile StoreKind = "file"
	// StoreRedis persists the record in Redis, for server-side embedders
	// managing sessions for many players.
	StoreRedis StoreKind = "redis"
	// StoreMemory holds the record in process memory only.
	StoreMemory StoreKind = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StoreKind.
func (s *StoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis", "memory":
		*s = StoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid StoreKind: %q (valid options: file, redis, memory)", v)
	}
}

// RedisConfig contains Redis connection configuration for the auth store.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// StoreConfig contains auth record persistence configuration.
type StoreConfig struct {
	Kind StoreKind `env:"KIND" envDefault:"file"`

	// Dir is the directory for the file store. Defaults to the identity
	// directory when empty.
	Dir string `env:"DIR" envDefault:""`

	// TTL bounds how long a persisted record survives in the Redis store.
	// Zero means no expiry.
	TTL time.Duration `env:"TTL" envDefault:"720h"`

	Redis RedisConfig `envPrefix:"REDIS_"`
}

// VerifierConfig contains the external credential verifier configuration.
type VerifierConfig struct {
	URL string `env:"URL" envDefault:"https://verifier.cheddaboards.com/verify"`
}

// IdentityConfig contains the decentralized identity keyring configuration.
type IdentityConfig struct {
	// Dir holds the key file. Defaults to ~/.cheddaboards when empty.
	Dir string `env:"DIR" envDefault:""`

	// AuthorizeURL is the identity service approval page for Connect.
	AuthorizeURL string `env:"AUTHORIZE_URL" envDefault:"https://id.cheddaboards.com/authorize"`

	// Lifetime bounds how long a connected identity stays live.
	Lifetime time.Duration `env:"LIFETIME" envDefault:"8h"`
}

// OAuthConfig contains social provider OAuth/OIDC configuration, used when
// the embedder wants the SDK to run the code flow itself.
type OAuthConfig struct {
	Provider     string `env:"PROVIDER"      envDefault:"google"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	IssuerURL    string `env:"ISSUER_URL"`
	Scope        string `env:"SCOPE"         envDefault:"openid email"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	Store    StoreConfig    `envPrefix:"AUTH_STORE_"`
	Verifier VerifierConfig `envPrefix:"VERIFIER_"`
	Identity IdentityConfig `envPrefix:"IDENTITY_"`
	OAuth    OAuthConfig    `envPrefix:"OAUTH_"`
}

// Sanitize applies guardrails to auth configuration.
func (c *AuthConfig) Sanitize() {
	if c.Store.Kind == "" {
		c.Store.Kind = StoreFile
	}
	if c.Store.Dir == "" {
		c.Store.Dir = c.Identity.Dir
	}
	if c.Identity.Lifetime <= 0 {
		c.Identity.Lifetime = 8 * time.Hour
	}
}
