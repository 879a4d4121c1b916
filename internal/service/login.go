package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// beginLogin acquires the interactive-login guard. A second login started
// while one is in flight fails immediately; it is never queued.
func (o *Orchestrator) beginLogin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.initialized {
		return auth.ErrNotInitialized
	}
	if o.loginInFlight {
		return auth.ErrLoginInProgress
	}
	o.loginInFlight = true
	return nil
}

func (o *Orchestrator) endLogin() {
	o.mu.Lock()
	o.loginInFlight = false
	o.mu.Unlock()
}

// LoginWithIdentity runs the decentralized key-pair login: the interactive
// keyring handshake, a client bound to the new identity, and account
// registration. Session state is committed only after every step succeeds.
func (o *Orchestrator) LoginWithIdentity(ctx context.Context) error {
	if o.identity == nil {
		return errors.New("identity provider not configured")
	}
	if err := o.beginLogin(); err != nil {
		return err
	}
	defer o.endLogin()

	id, err := o.identity.Connect(ctx)
	if err != nil {
		return fmt.Errorf("connect identity: %w", err)
	}

	backend, err := o.agent.Bind(ctx, id)
	if err != nil {
		return fmt.Errorf("bind identity client: %w", err)
	}

	nickname := o.loginNickname()
	lp, err := backend.RegisterPrincipalIdentityAndFetch(ctx, nickname, o.gameID)
	if err != nil {
		return err
	}
	if lp.User.Nickname != "" {
		nickname = lp.User.Nickname
	}

	rec := auth.AuthRecord{
		UserType: auth.UserPrincipal,
		UserID:   id.Principal(),
		AuthType: auth.AuthPrincipal,
		Nickname: nickname,
	}
	nickname, game := o.negotiateNickname(ctx, backend, rec, nickname, lp.Game)
	rec.Nickname = nickname

	merged := profile.Merge(o.gameID, rec.AuthType, nickname, &lp.User, game)
	if err := o.commitLogin(ctx, rec, backend, &merged); err != nil {
		return err
	}

	o.logger.Info("logged in", "authType", rec.AuthType, "principal", rec.UserID)
	o.events.LoginSucceeded(rec.AuthType, merged)
	return nil
}

// LoginAnonymous creates or resumes the device-local anonymous account. No
// interactive handshake is involved; the well-known anonymous identity is
// registered under a generated nickname.
func (o *Orchestrator) LoginAnonymous(ctx context.Context) error {
	if err := o.beginLogin(); err != nil {
		return err
	}
	defer o.endLogin()

	o.mu.Lock()
	backend := o.backend
	o.mu.Unlock()

	nickname := o.loginNickname()
	if err := backend.RegisterAnonymous(ctx, nickname); err != nil {
		return err
	}

	user, err := backend.GetUserProfile(ctx, auth.UserAnonymous, auth.AnonymousPrincipal)
	if err != nil {
		return err
	}
	if user != nil && user.Nickname != "" {
		nickname = user.Nickname
	}
	game, err := backend.GetGameProfile(ctx, auth.UserAnonymous, auth.AnonymousPrincipal, o.gameID)
	if err != nil {
		return err
	}

	rec := auth.AuthRecord{
		UserType: auth.UserAnonymous,
		UserID:   auth.AnonymousPrincipal,
		AuthType: auth.AuthAnonymous,
		Nickname: nickname,
	}
	nickname, game = o.negotiateNickname(ctx, backend, rec, nickname, game)
	rec.Nickname = nickname

	merged := profile.Merge(o.gameID, auth.AuthAnonymous, nickname, user, game)
	if err := o.commitLogin(ctx, rec, nil, &merged); err != nil {
		return err
	}

	o.logger.Info("logged in", "authType", rec.AuthType)
	o.events.LoginSucceeded(rec.AuthType, merged)
	return nil
}

// LoginWithProvider runs the social login: the raw provider credential is
// exchanged at the external verifier for a session ticket, then the ticket
// establishes a backend session. The credential itself never reaches the
// backend.
func (o *Orchestrator) LoginWithProvider(ctx context.Context, in ports.VerifyInput) error {
	if !in.Provider.Valid() {
		return &auth.ValidationError{Field: "provider", Reason: fmt.Sprintf("unsupported provider %q", in.Provider)}
	}
	if in.IDToken == "" {
		return &auth.ValidationError{Field: "idToken", Reason: "credential is required"}
	}
	if o.verifier == nil {
		return errors.New("credential verifier not configured")
	}
	if err := o.beginLogin(); err != nil {
		return err
	}
	defer o.endLogin()

	session, err := o.verifier.Exchange(ctx, in)
	if err != nil {
		return err
	}

	o.mu.Lock()
	backend := o.backend
	o.mu.Unlock()

	nickname := nicknameHint(in.IDToken, session.Email)
	lp, err := backend.EstablishSocialSessionAndFetch(ctx, session.Email, nickname, in.Provider, o.gameID)
	if err != nil {
		return err
	}
	if lp.User.Nickname != "" {
		nickname = lp.User.Nickname
	}

	rec := auth.AuthRecord{
		UserType:  auth.UserEmail,
		UserID:    session.Email,
		AuthType:  auth.AuthType(in.Provider),
		Nickname:  nickname,
		SessionID: session.SessionID,
	}
	nickname, game := o.negotiateNickname(ctx, backend, rec, nickname, lp.Game)
	rec.Nickname = nickname

	merged := profile.Merge(o.gameID, rec.AuthType, nickname, &lp.User, game)
	if err := o.commitLogin(ctx, rec, nil, &merged); err != nil {
		return err
	}

	o.logger.Info("logged in", "authType", rec.AuthType)
	o.events.LoginSucceeded(rec.AuthType, merged)
	return nil
}

// Logout tears the session down: the backend ticket is destroyed (best
// effort), local key material discarded, and the persisted record deleted.
// The client returns to Anonymous with a fresh anonymous backend handle.
func (o *Orchestrator) Logout(ctx context.Context) error {
	if _, err := o.requireInit(); err != nil {
		return err
	}

	o.mu.Lock()
	rec := o.record
	backend := o.backend
	o.mu.Unlock()

	if rec != nil && rec.UserType == auth.UserEmail && rec.SessionID != "" {
		if err := backend.DestroySession(ctx, rec.SessionID); err != nil {
			o.logger.Warn("destroy session", "error", err)
		}
	}
	if rec != nil && rec.UserType == auth.UserPrincipal && o.identity != nil {
		if err := o.identity.Logout(ctx); err != nil {
			return fmt.Errorf("discard identity: %w", err)
		}
	}

	if err := o.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear auth record: %w", err)
	}

	anonBackend, err := o.agent.Bind(ctx, auth.AnonymousIdentity{})
	if err != nil {
		return fmt.Errorf("bind anonymous client: %w", err)
	}

	o.mu.Lock()
	o.record = nil
	o.state = auth.Anonymous{}
	o.backend = anonBackend
	o.cache = nil
	o.mu.Unlock()

	o.logger.Info("logged out")
	return nil
}

// loginNickname reuses the previous record's nickname when one survives,
// otherwise generates a fresh placeholder.
func (o *Orchestrator) loginNickname() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.record != nil && o.record.Nickname != "" {
		return o.record.Nickname
	}
	return profile.RandomPlaceholder()
}

// negotiateNickname offers the host a chance to replace a placeholder
// nickname right after login. A failed change keeps the placeholder; login
// itself never fails over a nickname.
func (o *Orchestrator) negotiateNickname(ctx context.Context, backend ports.Backend, rec auth.AuthRecord, current string, game *profile.GameProfile) (string, *profile.GameProfile) {
	if o.prompter == nil || !profile.IsPlaceholder(current) {
		return current, game
	}

	chosen, confirmed := o.prompter.SuggestNickname(ctx, current, current)
	if !confirmed || chosen == current {
		return current, game
	}
	if err := profile.ValidateNickname(chosen); err != nil {
		o.logger.Warn("rejected suggested nickname", "error", err)
		return current, game
	}

	userType, userID := callerFor(rec)
	change, err := backend.ChangeNickname(ctx, userType, userID, chosen, o.gameID)
	if err != nil {
		o.logger.Warn("nickname change failed", "error", err)
		return current, game
	}
	if change.Game != nil {
		game = change.Game
	}
	o.events.NicknameChanged(change.Nickname)
	return change.Nickname, game
}

// nicknameHint derives an initial nickname from the provider credential's
// unverified claims, falling back to the email local part. The credential is
// read client-side only; the verifier does the real validation.
func nicknameHint(rawToken, email string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err == nil {
		for _, key := range []string{"given_name", "name"} {
			if v, ok := claims[key].(string); ok && v != "" {
				if hint := profile.TruncateNickname(v); profile.ValidateNickname(hint) == nil {
					return hint
				}
			}
		}
	}

	if at := strings.IndexByte(email, '@'); at > 0 {
		if hint := profile.TruncateNickname(email[:at]); profile.ValidateNickname(hint) == nil {
			return hint
		}
	}
	return profile.RandomPlaceholder()
}
