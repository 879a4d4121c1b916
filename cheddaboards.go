// Package cheddaboards is the Go client SDK for the Cheddaboards scoring
// backend: session orchestration across anonymous, decentralized key-pair,
// and social provider logins, with a cached player profile and leaderboards.
//
// Typical use:
//
//	client, err := cheddaboards.NewFromEnv()
//	if err != nil { ... }
//	if err := client.Init(ctx); err != nil { ... }
//	if err := client.LoginAnonymous(ctx); err != nil { ... }
//	res := client.SubmitScore(ctx, 500, 3)
package cheddaboards

import (
	"context"
	"log/slog"

	"github.com/cheddaboards/cheddaboards-go/config"
	"github.com/cheddaboards/cheddaboards-go/internal/adapters/oidc"
	"github.com/cheddaboards/cheddaboards-go/internal/bootstrap"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
	"github.com/cheddaboards/cheddaboards-go/internal/service"
)

// Re-exported domain types. The internal packages stay unimportable; the
// facade is the supported surface.
type (
	Profile          = profile.Profile
	GameProfile      = profile.GameProfile
	Achievement      = profile.Achievement
	LeaderboardEntry = profile.LeaderboardEntry

	SessionState          = auth.SessionState
	Anonymous             = auth.Anonymous
	DecentralizedIdentity = auth.DecentralizedIdentity
	ProviderSession       = auth.ProviderSession
	AuthType              = auth.AuthType
	Provider              = auth.Provider

	ValidationError  = auth.ValidationError
	VerifierError    = auth.VerifierError
	BackendRejection = auth.BackendRejection
	TransportError   = auth.TransportError

	ProviderCredential = ports.VerifyInput
	// ProviderAcquirer runs the OAuth/OIDC code flow against a social
	// provider to obtain a ProviderCredential for LoginWithProvider.
	ProviderAcquirer   = oidc.Acquirer

	GameInfo         = ports.GameInfo
	SortOrder        = ports.SortOrder
	Events           = ports.Events
	NicknamePrompter = ports.NicknamePrompter

	Result = service.Result
)

// Re-exported constants and sentinel errors.
const (
	ProviderGoogle = auth.ProviderGoogle
	ProviderApple  = auth.ProviderApple

	SortByScore  = ports.SortByScore
	SortByStreak = ports.SortByStreak
)

var (
	ErrNotAuthenticated = auth.ErrNotAuthenticated
	ErrLoginInProgress  = auth.ErrLoginInProgress
	ErrSessionExpired   = auth.ErrSessionExpired
	ErrNotInitialized   = auth.ErrNotInitialized
)

// Options groups construction-time collaborators.
type Options struct {
	Config config.Config
	Logger *slog.Logger

	// Events receives host notifications; Prompter negotiates placeholder
	// nicknames after login. Both optional.
	Events   Events
	Prompter NicknamePrompter

	// OpenURL overrides how the decentralized login presents its approval
	// URL, e.g. to open an embedded webview instead of a browser. Optional.
	OpenURL func(url string) error
}

// Client is the SDK entry point. All methods are safe for concurrent use.
type Client struct {
	orch *service.Orchestrator
}

// New builds a client from explicit configuration.
func New(opts Options) (*Client, error) {
	orch, err := bootstrap.BuildOrchestrator(bootstrap.ClientOptions{
		Config:   opts.Config,
		Logger:   opts.Logger,
		Events:   opts.Events,
		Prompter: opts.Prompter,
		OpenURL:  opts.OpenURL,
	})
	if err != nil {
		return nil, err
	}
	return &Client{orch: orch}, nil
}

// NewFromEnv builds a client from environment variables (and a .env file in
// development). See the config package for the variable reference.
func NewFromEnv() (*Client, error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(Options{Config: cfg})
}

// NewProviderAcquirer builds an OAuth code-flow helper from the OAUTH_*
// configuration. Call Begin to get the authorization URL,
// redirect the player, then Exchange the returned code for a
// ProviderCredential to pass to LoginWithProvider.
func NewProviderAcquirer(ctx context.Context, cfg config.Config) (*ProviderAcquirer, error) {
	return bootstrap.BuildAcquirer(ctx, cfg.Auth.OAuth)
}

// Init connects to the backend, self-registers the game on first contact,
// and restores any persisted session. It must complete successfully before
// any other call; repeat calls are cheap.
func (c *Client) Init(ctx context.Context) error { return c.orch.Init(ctx) }

// State returns the current session state variant.
func (c *Client) State() SessionState { return c.orch.State() }

// IsAuthenticated reports whether an account is active.
func (c *Client) IsAuthenticated() bool { return c.orch.IsAuthenticated() }

// Game returns the backend's registration info for this game.
func (c *Client) Game() (GameInfo, bool) { return c.orch.Game() }

// LoginAnonymous creates or resumes the device-local anonymous account.
func (c *Client) LoginAnonymous(ctx context.Context) error {
	return c.orch.LoginAnonymous(ctx)
}

// LoginWithIdentity runs the interactive decentralized key-pair login.
func (c *Client) LoginWithIdentity(ctx context.Context) error {
	return c.orch.LoginWithIdentity(ctx)
}

// LoginWithProvider exchanges a social provider credential for a session.
func (c *Client) LoginWithProvider(ctx context.Context, cred ProviderCredential) error {
	return c.orch.LoginWithProvider(ctx, cred)
}

// Logout tears down the current session and returns to Anonymous.
func (c *Client) Logout(ctx context.Context) error { return c.orch.Logout(ctx) }

// Profile returns the cached merged profile for the current game.
func (c *Client) Profile() (Profile, bool) { return c.orch.Profile() }

// RefreshProfile re-reads the profile from the backend synchronously.
func (c *Client) RefreshProfile(ctx context.Context) { c.orch.Refresh(ctx) }

// SubmitScore submits a finished round's score and streak.
func (c *Client) SubmitScore(ctx context.Context, score, streak float64) Result {
	return c.orch.SubmitScore(ctx, score, streak)
}

// ChangeNickname updates the account nickname.
func (c *Client) ChangeNickname(ctx context.Context, nickname string) Result {
	return c.orch.ChangeNickname(ctx, nickname)
}

// UnlockAchievement records an achievement unlock.
func (c *Client) UnlockAchievement(ctx context.Context, achievement Achievement) Result {
	return c.orch.UnlockAchievement(ctx, achievement)
}

// TrackEvent records an analytics event; works logged out.
func (c *Client) TrackEvent(ctx context.Context, eventType string, metadata map[string]string) Result {
	return c.orch.TrackEvent(ctx, eventType, metadata)
}

// Leaderboard returns the top entries for the current game.
func (c *Client) Leaderboard(ctx context.Context, sortBy SortOrder, limit int) ([]LeaderboardEntry, error) {
	return c.orch.Leaderboard(ctx, sortBy, limit)
}

// LeaderboardByAuth filters the leaderboard to one authentication class.
func (c *Client) LeaderboardByAuth(ctx context.Context, sortBy SortOrder, authType AuthType, limit int) ([]LeaderboardEntry, error) {
	return c.orch.LeaderboardByAuth(ctx, sortBy, authType, limit)
}

// AllGameProfiles returns the account's per-game records across all games.
func (c *Client) AllGameProfiles(ctx context.Context) (map[string]GameProfile, error) {
	return c.orch.AllGameProfiles(ctx)
}
