package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
)

// Profile returns the cached merged profile. ok is false before the first
// successful refresh or when logged out.
func (o *Orchestrator) Profile() (profile.Profile, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cache == nil {
		return profile.Profile{}, false
	}
	return *o.cache, true
}

// Refresh re-reads the user and game records and rebuilds the cached
// profile. Failures keep the previous cache: a stale profile beats a missing
// one, and the next mutation triggers another attempt anyway.
func (o *Orchestrator) Refresh(ctx context.Context) {
	o.mu.Lock()
	if !o.initialized || o.record == nil {
		o.mu.Unlock()
		return
	}
	rec := *o.record
	backend := o.backend
	o.mu.Unlock()

	var (
		user *profile.UserProfile
		game *profile.GameProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	if rec.UserType == auth.UserEmail {
		g.Go(func() (err error) {
			user, err = backend.GetUserProfileBySession(gctx, rec.SessionID)
			return err
		})
		g.Go(func() (err error) {
			game, err = backend.GetGameProfileBySession(gctx, rec.SessionID, o.gameID)
			return err
		})
	} else {
		g.Go(func() (err error) {
			user, err = backend.GetUserProfile(gctx, rec.UserType, rec.UserID)
			return err
		})
		g.Go(func() (err error) {
			game, err = backend.GetGameProfile(gctx, rec.UserType, rec.UserID, o.gameID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		o.logger.Warn("profile refresh failed", "error", err)
		return
	}

	merged := profile.Merge(o.gameID, rec.AuthType, rec.Nickname, user, game)

	o.mu.Lock()
	// The session may have changed while the reads were in flight; a refresh
	// for an old session must not clobber the new one.
	if o.record == nil || *o.record != rec {
		o.mu.Unlock()
		return
	}
	// Install a private copy so the cached pointee is never aliased by
	// this goroutine after the lock drops.
	cached := merged
	o.cache = &cached
	o.mu.Unlock()

	o.events.ProfileUpdated(merged)
}

// refreshAsync runs Refresh in the background, detached from the caller's
// cancellation. Mutating calls return as soon as the backend accepts them;
// the cache catches up on its own.
func (o *Orchestrator) refreshAsync(ctx context.Context) {
	go o.Refresh(context.WithoutCancel(ctx))
}
