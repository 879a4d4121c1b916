package service

import (
	"context"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// DefaultLeaderboardLimit bounds a leaderboard read when the caller passes
// limit <= 0.
const DefaultLeaderboardLimit = 10

// Leaderboard returns the top entries for the current game. Works logged out.
func (o *Orchestrator) Leaderboard(ctx context.Context, sortBy ports.SortOrder, limit int) ([]profile.LeaderboardEntry, error) {
	backend, err := o.requireInit()
	if err != nil {
		return nil, err
	}
	if sortBy != ports.SortByScore && sortBy != ports.SortByStreak {
		return nil, &auth.ValidationError{Field: "sortBy", Reason: "must be score or streak"}
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	return backend.Leaderboard(ctx, o.gameID, sortBy, limit)
}

// LeaderboardByAuth filters the leaderboard to one authentication class,
// e.g. only anonymous players. The filter runs client-side, so the backend
// is over-fetched to keep the filtered result near the requested size.
func (o *Orchestrator) LeaderboardByAuth(ctx context.Context, sortBy ports.SortOrder, authType auth.AuthType, limit int) ([]profile.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	entries, err := o.Leaderboard(ctx, sortBy, limit*4)
	if err != nil {
		return nil, err
	}

	filtered := make([]profile.LeaderboardEntry, 0, limit)
	for _, e := range entries {
		if e.AuthType != authType {
			continue
		}
		filtered = append(filtered, e)
		if len(filtered) == limit {
			break
		}
	}
	return filtered, nil
}

// AllGameProfiles returns the current account's per-game records across every
// game it has played, keyed by game ID.
func (o *Orchestrator) AllGameProfiles(ctx context.Context) (map[string]profile.GameProfile, error) {
	rec, backend, err := o.session(ctx)
	if err != nil {
		return nil, err
	}

	var user *profile.UserProfile
	if rec.UserType == auth.UserEmail {
		user, err = backend.GetUserProfileBySession(ctx, rec.SessionID)
	} else {
		user, err = backend.GetUserProfile(ctx, rec.UserType, rec.UserID)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return map[string]profile.GameProfile{}, nil
	}
	if user.GameProfiles == nil {
		return map[string]profile.GameProfile{}, nil
	}
	return user.GameProfiles, nil
}
