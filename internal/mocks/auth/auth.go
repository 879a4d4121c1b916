package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialVerifier = (*MockVerifier)(nil)
	_ ports.IdentityProvider   = (*MockIdentityProvider)(nil)
	_ ports.AuthStore          = (*MemoryAuthStore)(nil)
	_ ports.Events             = (*EventsRecorder)(nil)
	_ ports.NicknamePrompter   = (*StaticPrompter)(nil)
	_ ports.ClientFactory      = (*StaticFactory)(nil)
)

// MockVerifier simulates the external credential verifier with deterministic
// ticket minting.
type MockVerifier struct {
	ExchangeFunc func(ctx context.Context, in ports.VerifyInput) (ports.VerifiedSession, error)

	// Deterministic values used when ExchangeFunc is nil.
	SessionID string
	Email     string

	// Calls records every exchange input in order.
	Calls []ports.VerifyInput
}

func NewMockVerifier() *MockVerifier {
	return &MockVerifier{
		SessionID: "ticket-1",
		Email:     "mock.user@example.com",
	}
}

func (m *MockVerifier) Exchange(ctx context.Context, in ports.VerifyInput) (ports.VerifiedSession, error) {
	m.Calls = append(m.Calls, in)
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	return ports.VerifiedSession{SessionID: m.SessionID, Email: m.Email}, nil
}

// StaticIdentity is a SignerIdentity with fixed values.
type StaticIdentity struct {
	ID  string
	Pub []byte
}

func (s StaticIdentity) Principal() string { return s.ID }
func (s StaticIdentity) PublicKey() []byte { return s.Pub }
func (s StaticIdentity) Sign(msg []byte) ([]byte, error) {
	return append([]byte("sig:"), msg...), nil
}

// MockIdentityProvider simulates the key-pair identity provider.
type MockIdentityProvider struct {
	ConnectFunc func(ctx context.Context) (domainauth.SignerIdentity, error)
	RestoreFunc func(ctx context.Context) (domainauth.SignerIdentity, bool, error)
	LogoutFunc  func(ctx context.Context) error

	// Identity is returned by Connect and Restore when the funcs are nil.
	// Live gates the default Restore result.
	Identity domainauth.SignerIdentity
	Live     bool

	ConnectCalls int
	LogoutCalls  int
}

func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{
		Identity: StaticIdentity{ID: "aaaaa-bbbbb-ccccc", Pub: []byte("mock-pub")},
		Live:     true,
	}
}

func (m *MockIdentityProvider) Connect(ctx context.Context) (domainauth.SignerIdentity, error) {
	m.ConnectCalls++
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx)
	}
	m.Live = true
	return m.Identity, nil
}

func (m *MockIdentityProvider) Restore(ctx context.Context) (domainauth.SignerIdentity, bool, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx)
	}
	if !m.Live {
		return nil, false, nil
	}
	return m.Identity, true, nil
}

func (m *MockIdentityProvider) Logout(ctx context.Context) error {
	m.LogoutCalls++
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	m.Live = false
	return nil
}

// MemoryAuthStore is an in-memory AuthStore.
type MemoryAuthStore struct {
	mu  sync.Mutex
	rec *domainauth.AuthRecord

	// LoadErr and SaveErr force failures when set.
	LoadErr error
	SaveErr error
}

func NewMemoryAuthStore() *MemoryAuthStore { return &MemoryAuthStore{} }

func (s *MemoryAuthStore) Save(_ context.Context, rec domainauth.AuthRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.rec = &rec
	return nil
}

func (s *MemoryAuthStore) Load(_ context.Context) (domainauth.AuthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return domainauth.AuthRecord{}, s.LoadErr
	}
	if s.rec == nil {
		return domainauth.AuthRecord{}, ports.ErrNoRecord
	}
	return *s.rec, nil
}

func (s *MemoryAuthStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}

// Stored returns the current record, or nil.
func (s *MemoryAuthStore) Stored() *domainauth.AuthRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return nil
	}
	rec := *s.rec
	return &rec
}

// EventsRecorder records every notification for assertions.
type EventsRecorder struct {
	mu sync.Mutex

	Profiles  []profile.Profile
	Nicknames []string
	Logins    []domainauth.AuthType
}

func (r *EventsRecorder) ProfileUpdated(p profile.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Profiles = append(r.Profiles, p)
}

func (r *EventsRecorder) NicknameChanged(nickname string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Nicknames = append(r.Nicknames, nickname)
}

func (r *EventsRecorder) LoginSucceeded(authType domainauth.AuthType, p profile.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Logins = append(r.Logins, authType)
}

// ProfileUpdates returns a snapshot of recorded profile notifications.
func (r *EventsRecorder) ProfileUpdates() []profile.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]profile.Profile(nil), r.Profiles...)
}

// StaticPrompter answers every nickname suggestion with fixed values.
type StaticPrompter struct {
	Nickname  string
	Confirmed bool
	Calls     int
}

func (p *StaticPrompter) SuggestNickname(_ context.Context, current, suggested string) (string, bool) {
	p.Calls++
	if p.Nickname == "" {
		return suggested, p.Confirmed
	}
	return p.Nickname, p.Confirmed
}

// StaticFactory hands out a fixed Backend regardless of identity, recording
// each bound identity so tests can assert on rebuilds.
type StaticFactory struct {
	Backend ports.Backend
	BindErr error

	mu    sync.Mutex
	Bound []domainauth.Identity
}

func (f *StaticFactory) Bind(_ context.Context, identity domainauth.Identity) (ports.Backend, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BindErr != nil {
		return nil, f.BindErr
	}
	f.Bound = append(f.Bound, identity)
	return f.Backend, nil
}

// BindCount returns how many identities have been bound.
func (f *StaticFactory) BindCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Bound)
}
