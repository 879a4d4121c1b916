// Package service orchestrates identity, session persistence, and profile
// caching on top of the ports. It owns the session state machine; adapters
// only move bytes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// Options groups dependencies for the Orchestrator.
type Options struct {
	// GameID identifies this game on the backend. Required.
	GameID string
	// GameName and GameDescription are used when Init self-registers an
	// unknown game.
	GameName        string
	GameDescription string

	Agent    ports.ClientFactory
	Store    ports.AuthStore
	Verifier ports.CredentialVerifier
	Identity ports.IdentityProvider

	// Events and Prompter are optional host collaborators.
	Events   ports.Events
	Prompter ports.NicknamePrompter

	Logger *slog.Logger
}

// Orchestrator is the session state machine. All public methods are safe for
// concurrent use; exactly one session state is authoritative at a time.
type Orchestrator struct {
	gameID   string
	gameName string
	gameDesc string

	agent    ports.ClientFactory
	store    ports.AuthStore
	verifier ports.CredentialVerifier
	identity ports.IdentityProvider
	events   notifier
	prompter ports.NicknamePrompter
	logger   *slog.Logger

	initGroup singleflight.Group

	mu            sync.Mutex
	initialized   bool
	loginInFlight bool
	state         auth.SessionState
	record        *auth.AuthRecord
	backend       ports.Backend
	cache         *profile.Profile
	game          *ports.GameInfo
}

// New constructs an Orchestrator. Call Init before anything else.
func New(opts Options) (*Orchestrator, error) {
	if opts.GameID == "" {
		return nil, fmt.Errorf("game ID is required")
	}
	if opts.Agent == nil {
		return nil, fmt.Errorf("client factory is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("auth store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		gameID:   opts.GameID,
		gameName: opts.GameName,
		gameDesc: opts.GameDescription,
		agent:    opts.Agent,
		store:    opts.Store,
		verifier: opts.Verifier,
		identity: opts.Identity,
		events:   notifier{sink: opts.Events},
		prompter: opts.Prompter,
		logger:   logger,
		state:    auth.Anonymous{},
	}, nil
}

// Init binds an anonymous backend handle, self-registers the game when the
// backend does not know it yet, and restores any persisted session. Init is
// memoized: concurrent calls share one flight and a successful Init makes
// later calls return immediately. A failed Init may be retried.
func (o *Orchestrator) Init(ctx context.Context) error {
	o.mu.Lock()
	done := o.initialized
	o.mu.Unlock()
	if done {
		return nil
	}

	_, err, _ := o.initGroup.Do("init", func() (any, error) {
		return nil, o.initOnce(ctx)
	})
	return err
}

func (o *Orchestrator) initOnce(ctx context.Context) error {
	backend, err := o.agent.Bind(ctx, auth.AnonymousIdentity{})
	if err != nil {
		return fmt.Errorf("bind anonymous client: %w", err)
	}

	game, err := o.ensureGame(ctx, backend)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.backend = backend
	o.game = game
	o.mu.Unlock()

	if err := o.restoreSession(ctx); err != nil {
		return err
	}

	o.mu.Lock()
	o.initialized = true
	state := o.state
	o.mu.Unlock()

	o.logger.Info("client initialized", "gameId", o.gameID, "state", state.Kind())

	if _, ok := state.(auth.Anonymous); !ok || o.IsAuthenticated() {
		o.refreshAsync(ctx)
	}
	return nil
}

// ensureGame fetches the game registration, creating it on first contact.
func (o *Orchestrator) ensureGame(ctx context.Context, backend ports.Backend) (*ports.GameInfo, error) {
	game, err := backend.GetGame(ctx, o.gameID)
	if err != nil {
		return nil, fmt.Errorf("look up game: %w", err)
	}
	if game != nil {
		return game, nil
	}

	o.logger.Info("registering game", "gameId", o.gameID)
	if err := backend.RegisterGame(ctx, o.gameID, o.gameName, o.gameDesc); err != nil {
		return nil, fmt.Errorf("register game: %w", err)
	}
	return &ports.GameInfo{
		GameID:      o.gameID,
		Name:        o.gameName,
		Description: o.gameDesc,
		Active:      true,
	}, nil
}

// State returns the current session state.
func (o *Orchestrator) State() auth.SessionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// IsAuthenticated reports whether an account is active. Note that this is
// determined by the presence of an auth record, not by the state variant:
// a logged-out user and an anonymous account are both in the Anonymous state.
func (o *Orchestrator) IsAuthenticated() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.record != nil
}

// CurrentRecord returns a copy of the persisted auth record, if any.
func (o *Orchestrator) CurrentRecord() (auth.AuthRecord, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.record == nil {
		return auth.AuthRecord{}, false
	}
	return *o.record, true
}

// Game returns the backend's registration info for this game, as of Init.
func (o *Orchestrator) Game() (ports.GameInfo, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.game == nil {
		return ports.GameInfo{}, false
	}
	return *o.game, true
}

// requireInit returns the current backend handle or ErrNotInitialized.
func (o *Orchestrator) requireInit() (ports.Backend, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.initialized || o.backend == nil {
		return nil, auth.ErrNotInitialized
	}
	return o.backend, nil
}

// caller resolves the (userType, userID) pair a backend call should use for
// the current account. ProviderSession accounts address themselves by ticket.
func callerFor(rec auth.AuthRecord) (auth.UserType, string) {
	if rec.UserType == auth.UserEmail {
		return auth.UserSession, rec.SessionID
	}
	return rec.UserType, rec.UserID
}

// commitLogin installs a freshly authenticated session under the lock:
// state, record, bound backend, and primed cache. Persistence is
// best-effort: a failed save loses restore-on-restart, not the login.
func (o *Orchestrator) commitLogin(ctx context.Context, rec auth.AuthRecord, backend ports.Backend, cached *profile.Profile) error {
	rec.Version = auth.RecordVersion
	if err := o.store.Save(ctx, rec); err != nil {
		o.logger.WarnContext(ctx, "persist auth record failed", "error", err)
	}

	o.mu.Lock()
	o.record = &rec
	o.state = rec.State()
	if backend != nil {
		o.backend = backend
	}
	o.cache = cached
	o.mu.Unlock()

	return nil
}
