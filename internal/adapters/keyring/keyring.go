// Package keyring holds the locally persisted key-pair identity used by the
// decentralized login flow. The key material never leaves the machine; the
// backend sees only the derived principal and request signatures.
package keyring

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

const (
	keyFileName     = "identity.json"
	keyFileVersion  = 1
	DefaultLifetime = 8 * time.Hour
)

// Config wires a Provider.
type Config struct {
	// Dir is the directory holding the key file. Required.
	Dir string
	// AuthorizeURL is the identity service page that approves a new key.
	// Required for Connect; Restore and Logout work without it.
	AuthorizeURL string
	// Lifetime bounds how long a connected identity stays live locally.
	// Defaults to DefaultLifetime.
	Lifetime time.Duration
	// OpenURL presents the authorize URL to the user, typically by opening
	// a browser. Defaults to printing the URL to stderr.
	OpenURL func(url string) error
	Logger  *slog.Logger
}

// Provider implements ports.IdentityProvider against an on-disk ed25519 key.
type Provider struct {
	dir       string
	authorize string
	lifetime  time.Duration
	openURL   func(url string) error
	logger    *slog.Logger

	mu sync.Mutex
}

var _ ports.IdentityProvider = (*Provider)(nil)

func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Dir == "" {
		return nil, errors.New("keyring: dir is required")
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = DefaultLifetime
	}
	if cfg.OpenURL == nil {
		cfg.OpenURL = func(url string) error {
			_, err := fmt.Fprintf(os.Stderr, "Open this URL to continue sign-in:\n  %s\n", url)
			return err
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Provider{
		dir:       cfg.Dir,
		authorize: cfg.AuthorizeURL,
		lifetime:  cfg.Lifetime,
		openURL:   cfg.OpenURL,
		logger:    cfg.Logger,
	}, nil
}

// keyFile is the persisted form of the identity.
type keyFile struct {
	Version    int    `json:"v"`
	Principal  string `json:"principal"`
	PublicKey  []byte `json:"publicKey"`
	PrivateKey []byte `json:"privateKey"`
	// Expires is unix milliseconds.
	Expires int64 `json:"expires"`
}

type identity struct {
	principal string
	pub       ed25519.PublicKey
	priv      ed25519.PrivateKey
}

var _ auth.SignerIdentity = (*identity)(nil)

func (id *identity) Principal() string { return id.principal }
func (id *identity) PublicKey() []byte { return id.pub }

func (id *identity) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(id.priv, msg), nil
}

// Restore re-derives the identity from the key file. It never touches the
// network; liveness is judged from the stored expiry alone.
func (p *Provider) Restore(_ context.Context) (auth.SignerIdentity, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, err := os.ReadFile(p.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("keyring: read key file: %w", err)
	}

	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, false, fmt.Errorf("keyring: decode key file: %w", err)
	}
	if kf.Version != keyFileVersion {
		return nil, false, fmt.Errorf("keyring: unsupported key file version %d", kf.Version)
	}
	if len(kf.PrivateKey) != ed25519.PrivateKeySize || len(kf.PublicKey) != ed25519.PublicKeySize {
		return nil, false, errors.New("keyring: malformed key material")
	}
	if time.Now().After(time.UnixMilli(kf.Expires)) {
		p.logger.Debug("stored identity expired", "principal", kf.Principal)
		return nil, false, nil
	}

	return &identity{
		principal: kf.Principal,
		pub:       ed25519.PublicKey(kf.PublicKey),
		priv:      ed25519.PrivateKey(kf.PrivateKey),
	}, true, nil
}

// Logout discards the key material. Missing files are not an error.
func (p *Provider) Logout(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.Remove(p.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("keyring: remove key file: %w", err)
	}
	return nil
}

func (p *Provider) path() string { return filepath.Join(p.dir, keyFileName) }

func (p *Provider) generate() (*identity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("keyring: generate key: %w", err)
	}
	return &identity{
		principal: PrincipalFromKey(pub),
		pub:       pub,
		priv:      priv,
	}, nil
}

func (p *Provider) persist(id *identity, expires time.Time) error {
	if err := os.MkdirAll(p.dir, 0o700); err != nil {
		return fmt.Errorf("keyring: create dir: %w", err)
	}
	raw, err := json.Marshal(keyFile{
		Version:    keyFileVersion,
		Principal:  id.principal,
		PublicKey:  id.pub,
		PrivateKey: id.priv,
		Expires:    expires.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("keyring: encode key file: %w", err)
	}

	tmp := p.path() + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("keyring: write key file: %w", err)
	}
	if err := os.Rename(tmp, p.path()); err != nil {
		return fmt.Errorf("keyring: commit key file: %w", err)
	}
	return nil
}

// PrincipalFromKey derives the textual principal for an ed25519 public key:
// a sha224 digest tagged as self-authenticating, prefixed with a CRC32
// checksum, base32-encoded and grouped with dashes.
func PrincipalFromKey(pub []byte) string {
	digest := sha256.Sum224(pub)
	body := append(digest[:], 0x02)

	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], crc32.ChecksumIEEE(body))

	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	text := strings.ToLower(enc.EncodeToString(append(crc[:], body...)))

	var b strings.Builder
	for i, r := range text {
		if i > 0 && i%5 == 0 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}
