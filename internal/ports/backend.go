package ports

// Package ports defines interfaces (hexagonal ports) for the client SDK.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
)

// SortOrder selects the leaderboard ranking dimension.
type SortOrder string

const (
	SortByScore  SortOrder = "score"
	SortByStreak SortOrder = "streak"
)

// SessionValidation is the positive result of a ticket revalidation.
type SessionValidation struct {
	Email    string
	Nickname string
}

// LoginProfile is the combined "login + fetch profile" result.
type LoginProfile struct {
	User profile.UserProfile
	Game *profile.GameProfile
}

// NicknameChange is the result of a successful nickname change. Game is
// populated when the backend refreshed the game record in the same call.
type NicknameChange struct {
	Nickname string
	Game     *profile.GameProfile
}

// GameInfo describes a registered game.
type GameInfo struct {
	GameID       string
	Name         string
	Description  string
	Active       bool
	TotalPlayers int
	TotalPlays   int
}

// EventAttr is one key/value pair of analytics event metadata.
type EventAttr struct {
	Key   string
	Value string
}

// Backend is the scoring backend's call contract. Its business logic is
// opaque; implementations only move values across the wire.
//
// Error discipline: an explicit err result surfaces as *auth.BackendRejection,
// a network or call-layer failure as *auth.TransportError. Profile reads
// return (nil, nil) when no record exists.
type Backend interface {
	// Session lifecycle.
	ValidateSession(ctx context.Context, ticket string) (SessionValidation, error)
	DestroySession(ctx context.Context, ticket string) error

	// Account login/registration.
	RegisterAnonymous(ctx context.Context, nickname string) error
	RegisterPrincipalIdentity(ctx context.Context, nickname string) error
	RegisterPrincipalIdentityAndFetch(ctx context.Context, nickname, gameID string) (LoginProfile, error)
	EstablishSocialSession(ctx context.Context, email, nickname string, provider auth.Provider) error
	EstablishSocialSessionAndFetch(ctx context.Context, email, nickname string, provider auth.Provider, gameID string) (LoginProfile, error)

	// Mutating game calls.
	SubmitScore(ctx context.Context, userType auth.UserType, userID, gameID string, score, streak int64) error
	ChangeNickname(ctx context.Context, userType auth.UserType, userID, newNickname, gameID string) (NicknameChange, error)
	UnlockAchievement(ctx context.Context, userType auth.UserType, userID, gameID string, achievement profile.Achievement) error
	TrackEvent(ctx context.Context, userType auth.UserType, userID, eventType, gameID string, metadata []EventAttr) error

	// Profile reads.
	GetUserProfile(ctx context.Context, userType auth.UserType, userID string) (*profile.UserProfile, error)
	GetGameProfile(ctx context.Context, userType auth.UserType, userID, gameID string) (*profile.GameProfile, error)
	GetUserProfileBySession(ctx context.Context, ticket string) (*profile.UserProfile, error)
	GetGameProfileBySession(ctx context.Context, ticket, gameID string) (*profile.GameProfile, error)

	// Game registry and leaderboards.
	GetGame(ctx context.Context, gameID string) (*GameInfo, error)
	RegisterGame(ctx context.Context, gameID, name, description string) error
	Leaderboard(ctx context.Context, gameID string, sortBy SortOrder, limit int) ([]profile.LeaderboardEntry, error)
}

// ClientFactory builds a Backend handle bound to a given identity. Handles
// are cheap to discard and recreate; the orchestrator rebuilds one whenever
// the bound identity changes rather than mutating it.
type ClientFactory interface {
	Bind(ctx context.Context, identity auth.Identity) (Backend, error)
}
