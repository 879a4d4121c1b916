package ports

import (
	"context"
	"errors"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
)

// ErrNoRecord is returned by AuthStore.Load when no record is persisted.
var ErrNoRecord = errors.New("no auth record")

// AuthStore persists the single auth record. Implementations hold at most
// one record per store instance; Save overwrites it.
type AuthStore interface {
	Save(ctx context.Context, rec auth.AuthRecord) error
	// Load returns ErrNoRecord when absent and auth.ErrRecordInvalid when
	// the stored bytes fail to decode.
	Load(ctx context.Context) (auth.AuthRecord, error)
	Clear(ctx context.Context) error
}

// VerifyInput carries a raw provider credential to the external verifier.
// The raw credential is sent only here, never to the backend.
type VerifyInput struct {
	Provider auth.Provider
	IDToken  string
	State    string
	Nonce    string
}

// VerifiedSession is the ticket minted by the verifier exchange.
type VerifiedSession struct {
	SessionID string
	Email     string
}

// CredentialVerifier exchanges a raw OAuth credential for a session ticket.
type CredentialVerifier interface {
	Exchange(ctx context.Context, in VerifyInput) (VerifiedSession, error)
}

// IdentityProvider manages the locally held key-pair identity for the
// decentralized login flow.
type IdentityProvider interface {
	// Connect runs the interactive redirect/callback handshake and returns
	// a live key-pair identity. It resolves or fails exactly once per call.
	Connect(ctx context.Context) (auth.SignerIdentity, error)

	// Restore re-derives the identity from local key storage. live is false
	// when no identity is stored or it is past its lifetime. No network
	// call is made.
	Restore(ctx context.Context) (id auth.SignerIdentity, live bool, err error)

	// Logout discards the local key material.
	Logout(ctx context.Context) error
}

// Events receives notifications for the embedding UI/host. Implementations
// must not block; all methods are called synchronously on success paths.
type Events interface {
	ProfileUpdated(p profile.Profile)
	NicknameChanged(nickname string)
	LoginSucceeded(authType auth.AuthType, p profile.Profile)
}

// NicknamePrompter is the UI collaborator for placeholder nickname
// negotiation. Implementations return the user's chosen nickname and whether
// they confirmed a change.
type NicknamePrompter interface {
	SuggestNickname(ctx context.Context, current, suggested string) (nickname string, confirmed bool)
}
