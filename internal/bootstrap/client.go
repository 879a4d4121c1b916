package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/cheddaboards/cheddaboards-go/config"
	"github.com/cheddaboards/cheddaboards-go/internal/adapters/agent"
	"github.com/cheddaboards/cheddaboards-go/internal/adapters/keyring"
	"github.com/cheddaboards/cheddaboards-go/internal/adapters/store"
	"github.com/cheddaboards/cheddaboards-go/internal/adapters/verifier"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
	"github.com/cheddaboards/cheddaboards-go/internal/service"
)

// ClientOptions groups construction-time collaborators that cannot come from
// the environment.
type ClientOptions struct {
	Config config.Config
	Logger *slog.Logger

	// Events and Prompter are optional host callbacks.
	Events   ports.Events
	Prompter ports.NicknamePrompter

	// OpenURL overrides how the decentralized login presents its approval
	// URL. Optional.
	OpenURL func(url string) error
}

// BuildOrchestrator wires adapters from configuration into an orchestrator.
func BuildOrchestrator(opts ClientOptions) (*service.Orchestrator, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{Timeout: cfg.Backend.Timeout}

	factory, err := agent.NewFactory(agent.Config{
		Host:       cfg.Backend.Host,
		HTTPClient: httpClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build backend client factory: %w", err)
	}

	identityDir, err := resolveIdentityDir(cfg.Auth.Identity.Dir)
	if err != nil {
		return nil, err
	}

	authStore, err := buildStore(cfg.Auth.Store, identityDir)
	if err != nil {
		return nil, err
	}

	verifierClient, err := verifier.NewClient(verifier.Config{
		URL:        cfg.Auth.Verifier.URL,
		HTTPClient: httpClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build verifier client: %w", err)
	}

	identity, err := keyring.NewProvider(keyring.Config{
		Dir:          identityDir,
		AuthorizeURL: cfg.Auth.Identity.AuthorizeURL,
		Lifetime:     cfg.Auth.Identity.Lifetime,
		OpenURL:      opts.OpenURL,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build keyring: %w", err)
	}

	return service.New(service.Options{
		GameID:          cfg.Game.ID,
		GameName:        cfg.Game.Name,
		GameDescription: cfg.Game.Description,
		Agent:           factory,
		Store:           authStore,
		Verifier:        verifierClient,
		Identity:        identity,
		Events:          opts.Events,
		Prompter:        opts.Prompter,
		Logger:          logger,
	})
}

func buildStore(cfg config.StoreConfig, identityDir string) (ports.AuthStore, error) {
	switch cfg.Kind {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return store.NewRedisStore(client, "default", cfg.TTL), nil
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	default:
		dir := cfg.Dir
		if dir == "" {
			dir = identityDir
		}
		return store.NewFileStore(filepath.Join(dir, "auth.json")), nil
	}
}

// resolveIdentityDir defaults the key/auth directory to ~/.cheddaboards.
func resolveIdentityDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".cheddaboards"), nil
}
