package service

import (
	"context"
	"fmt"
	"math"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// Result is the outcome of a submission call. Either Message or Err is set.
type Result struct {
	OK      bool
	Message string
	Err     error
}

func okResult(message string) Result { return Result{OK: true, Message: message} }
func errResult(err error) Result     { return Result{Err: err} }

// session resolves the current account's routing for a mutating call. For
// decentralized accounts the keyring identity is re-resolved first so a key
// that expired since login fails here, not at the backend.
func (o *Orchestrator) session(ctx context.Context) (auth.AuthRecord, ports.Backend, error) {
	backend, err := o.requireInit()
	if err != nil {
		return auth.AuthRecord{}, nil, err
	}

	o.mu.Lock()
	if o.record == nil {
		o.mu.Unlock()
		return auth.AuthRecord{}, nil, auth.ErrNotAuthenticated
	}
	rec := *o.record
	o.mu.Unlock()

	if rec.UserType == auth.UserPrincipal && o.identity != nil {
		id, live, restoreErr := o.identity.Restore(ctx)
		if restoreErr != nil {
			return auth.AuthRecord{}, nil, fmt.Errorf("restore identity: %w", restoreErr)
		}
		if !live || id.Principal() != rec.UserID {
			o.expire(ctx)
			return auth.AuthRecord{}, nil, auth.ErrSessionExpired
		}
		// Equal principals mean the same key pair, so the handle bound at
		// login still signs with the live key and needs no rebind.
	}

	return rec, backend, nil
}

// expire drops the current session after its credentials went stale: record
// deleted, state back to Anonymous, cache cleared.
func (o *Orchestrator) expire(ctx context.Context) {
	if err := o.store.Clear(ctx); err != nil {
		o.logger.Warn("clear expired auth record", "error", err)
	}
	o.mu.Lock()
	o.record = nil
	o.state = auth.Anonymous{}
	o.cache = nil
	o.mu.Unlock()
	o.logger.Info("session expired")
}

// SubmitScore submits a finished round. Score and streak must be
// non-negative and finite; fractional values are floored. On success the
// cached profile refreshes in the background.
func (o *Orchestrator) SubmitScore(ctx context.Context, score, streak float64) Result {
	if err := validateMetric("score", score); err != nil {
		return errResult(err)
	}
	if err := validateMetric("streak", streak); err != nil {
		return errResult(err)
	}

	rec, backend, err := o.session(ctx)
	if err != nil {
		return errResult(err)
	}

	userType, userID := callerFor(rec)
	if err := backend.SubmitScore(ctx, userType, userID, o.gameID, int64(math.Floor(score)), int64(math.Floor(streak))); err != nil {
		return errResult(err)
	}

	o.refreshAsync(ctx)
	return okResult("score submitted")
}

// ChangeNickname updates the account nickname everywhere: backend, persisted
// record, and cached profile.
func (o *Orchestrator) ChangeNickname(ctx context.Context, nickname string) Result {
	if err := profile.ValidateNickname(nickname); err != nil {
		return errResult(err)
	}

	rec, backend, err := o.session(ctx)
	if err != nil {
		return errResult(err)
	}

	userType, userID := callerFor(rec)
	change, err := backend.ChangeNickname(ctx, userType, userID, nickname, o.gameID)
	if err != nil {
		return errResult(err)
	}

	rec.Nickname = change.Nickname
	if saveErr := o.store.Save(ctx, rec); saveErr != nil {
		o.logger.Warn("persist nickname", "error", saveErr)
	}

	// Copy-on-write: concurrent readers hold the old pointees, so never
	// mutate them in place.
	o.mu.Lock()
	if o.record != nil && o.record.UserID == rec.UserID {
		updated := *o.record
		updated.Nickname = change.Nickname
		o.record = &updated
		if o.cache != nil {
			cached := *o.cache
			cached.Nickname = change.Nickname
			o.cache = &cached
		}
	}
	o.mu.Unlock()

	o.events.NicknameChanged(change.Nickname)
	o.refreshAsync(ctx)
	return okResult(change.Nickname)
}

// UnlockAchievement records an achievement unlock for the current game.
func (o *Orchestrator) UnlockAchievement(ctx context.Context, achievement profile.Achievement) Result {
	if achievement.ID == "" {
		return errResult(&auth.ValidationError{Field: "achievement", Reason: "id is required"})
	}
	achievement.GameID = o.gameID

	rec, backend, err := o.session(ctx)
	if err != nil {
		return errResult(err)
	}

	userType, userID := callerFor(rec)
	if err := backend.UnlockAchievement(ctx, userType, userID, o.gameID, achievement); err != nil {
		return errResult(err)
	}

	o.refreshAsync(ctx)
	return okResult("achievement unlocked")
}

// TrackEvent records an analytics event. Unlike the scoring calls it works
// without an account; unauthenticated events are attributed to the
// well-known anonymous identifier.
func (o *Orchestrator) TrackEvent(ctx context.Context, eventType string, metadata map[string]string) Result {
	if eventType == "" {
		return errResult(&auth.ValidationError{Field: "eventType", Reason: "event type is required"})
	}

	backend, err := o.requireInit()
	if err != nil {
		return errResult(err)
	}

	userType, userID := auth.UserAnonymous, auth.AnonymousPrincipal
	if rec, ok := o.CurrentRecord(); ok {
		userType, userID = callerFor(rec)
	}

	attrs := make([]ports.EventAttr, 0, len(metadata)+1)
	attrs = append(attrs, ports.EventAttr{Key: "authType", Value: string(o.currentAuthType())})
	for k, v := range metadata {
		attrs = append(attrs, ports.EventAttr{Key: k, Value: v})
	}

	if err := backend.TrackEvent(ctx, userType, userID, eventType, o.gameID, attrs); err != nil {
		return errResult(err)
	}
	return okResult("event tracked")
}

func (o *Orchestrator) currentAuthType() auth.AuthType {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.record != nil {
		return o.record.AuthType
	}
	return auth.AuthAnonymous
}

// validateMetric rejects NaN, infinities, and negatives before any network
// call is made.
func validateMetric(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &auth.ValidationError{Field: field, Reason: "must be a finite number"}
	}
	if v < 0 {
		return &auth.ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}
