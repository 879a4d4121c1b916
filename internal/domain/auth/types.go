package auth

// Package auth contains domain-level types for identities and sessions.
// It is pure and free of transport/adapter concerns.

// Provider identifies an external social identity provider.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderApple  Provider = "apple"
)

// Valid reports whether p is a known social provider.
func (p Provider) Valid() bool {
	return p == ProviderGoogle || p == ProviderApple
}

// AuthType records how the current user authenticated.
// Values are part of the backend wire contract; do not rename.
type AuthType string

const (
	AuthAnonymous AuthType = "anonymous"
	AuthPrincipal AuthType = "principal"
	AuthGoogle    AuthType = "google"
	AuthApple     AuthType = "apple"
)

// UserType selects how a backend call identifies its user.
// The first three are also the persisted record taxonomy; UserSession is a
// call-level selector only: it addresses the user by session ticket and is
// never written to the auth record.
type UserType string

const (
	UserAnonymous UserType = "anonymous"
	UserPrincipal UserType = "principal"
	UserEmail     UserType = "email"
	UserSession   UserType = "session"
)

// AnonymousPrincipal is the well-known textual identifier of the anonymous
// identity.
const AnonymousPrincipal = "2vxsx-fae"

// Identity is the credential a remote client is bound to. Exactly two shapes
// exist: AnonymousIdentity and a key-pair-backed identity that additionally
// implements SignerIdentity.
type Identity interface {
	// Principal returns the stable public identifier for this identity.
	Principal() string
}

// SignerIdentity is an Identity backed by a locally held key pair.
type SignerIdentity interface {
	Identity
	// Sign signs message with the held private key.
	Sign(message []byte) ([]byte, error)
	// PublicKey returns the raw public key bytes.
	PublicKey() []byte
}

// AnonymousIdentity is the identity used for anonymous and ticket-backed
// calls. Ticket-backed calls authenticate with the ticket itself, not the
// transport identity.
type AnonymousIdentity struct{}

func (AnonymousIdentity) Principal() string { return AnonymousPrincipal }

// SessionState is the canonical "who is the current user" variant.
// Exactly one value is authoritative at a time; consumers must switch
// exhaustively over the three concrete types below.
type SessionState interface {
	// Kind returns the variant tag, for logging and persistence.
	Kind() StateKind
	sealed()
}

// StateKind tags a SessionState variant.
type StateKind string

const (
	StateAnonymous             StateKind = "anonymous"
	StateDecentralizedIdentity StateKind = "decentralized"
	StateProviderSession       StateKind = "provider-session"
)

// Anonymous is the no-identity state. It is both the post-init default and
// the post-logout state; whether the user holds an anonymous *account* is
// determined by the presence of an AuthRecord, not by this variant.
type Anonymous struct{}

func (Anonymous) Kind() StateKind { return StateAnonymous }
func (Anonymous) sealed()         {}

// DecentralizedIdentity is backed by a locally held key pair.
type DecentralizedIdentity struct {
	// PrincipalID is the stable public identifier derived from the key pair.
	PrincipalID string
}

func (DecentralizedIdentity) Kind() StateKind { return StateDecentralizedIdentity }
func (DecentralizedIdentity) sealed()         {}

// ProviderSession is backed by an opaque ticket issued after a social
// provider exchange. The raw provider credential is never held here.
type ProviderSession struct {
	SessionID string
	Email     string
	Provider  Provider
}

func (ProviderSession) Kind() StateKind { return StateProviderSession }
func (ProviderSession) sealed()         {}

// AuthTypeOf maps a state variant to the AuthType it represents.
func AuthTypeOf(s SessionState) AuthType {
	switch v := s.(type) {
	case Anonymous:
		return AuthAnonymous
	case DecentralizedIdentity:
		return AuthPrincipal
	case ProviderSession:
		return AuthType(v.Provider)
	default:
		return AuthAnonymous
	}
}
