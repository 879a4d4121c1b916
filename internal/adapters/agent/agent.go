package agent

// Package agent implements the backend call client: an HTTP agent bound to a
// single identity. Handles are built by Factory.Bind and rebuilt, never
// mutated, when the bound identity changes.

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

const apiPrefix = "/api/v1/"

// Signature headers attached when the bound identity holds a key pair.
const (
	headerPrincipal = "X-Chedda-Principal"
	headerPublicKey = "X-Chedda-Pubkey"
	headerSignature = "X-Chedda-Signature"
)

// Config holds agent factory configuration.
type Config struct {
	// Host is the backend base URL, e.g. "https://api.cheddaboards.com".
	Host       string
	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
	Logger     *slog.Logger // Optional
}

// Factory builds Backend handles bound to an identity. For local targets it
// performs a one-time trust handshake (fetching the development root key)
// before the first handle is issued; production targets perform none.
type Factory struct {
	base       *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	local      bool

	handshake    sync.Once
	handshakeErr error
	rootKey      []byte
}

// NewFactory creates an agent factory for the given backend host.
func NewFactory(cfg Config) (*Factory, error) {
	if cfg.Host == "" {
		return nil, errors.New("backend host is required")
	}
	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("parse backend host: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend host %q: unsupported scheme %q", cfg.Host, base.Scheme)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Factory{
		base:       base,
		httpClient: httpClient,
		logger:     logger,
		local:      isLocalHost(base.Hostname()),
	}, nil
}

func isLocalHost(hostname string) bool {
	return hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1"
}

// Bind returns a Backend handle bound to identity. The handle is cheap; bind
// again whenever the authoritative identity may have changed.
func (f *Factory) Bind(ctx context.Context, identity auth.Identity) (ports.Backend, error) {
	if identity == nil {
		identity = auth.AnonymousIdentity{}
	}

	if f.local {
		f.handshake.Do(func() {
			f.handshakeErr = f.fetchRootKey(ctx)
		})
		if f.handshakeErr != nil {
			return nil, fmt.Errorf("trust handshake: %w", f.handshakeErr)
		}
	}

	return &Client{factory: f, identity: identity}, nil
}

// fetchRootKey retrieves the development root key from a local replica so
// responses can be trusted without a production trust anchor.
func (f *Factory) fetchRootKey(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint("rootKey"), nil)
	if err != nil {
		return err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out struct {
		RootKey string `json:"rootKey"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode root key: %w", err)
	}
	key, err := base64.StdEncoding.DecodeString(out.RootKey)
	if err != nil {
		return fmt.Errorf("decode root key: %w", err)
	}

	f.rootKey = key
	f.logger.DebugContext(ctx, "fetched local root key", "bytes", len(key))
	return nil
}

func (f *Factory) endpoint(method string) string {
	return f.base.JoinPath(apiPrefix, method).String()
}

// Client is a Backend handle bound to one identity.
type Client struct {
	factory  *Factory
	identity auth.Identity
}

// Identity returns the identity this handle is bound to.
func (c *Client) Identity() auth.Identity { return c.identity }

// envelope is the backend's uniform ok/err result wrapper.
type envelope struct {
	OK  json.RawMessage `json:"ok,omitempty"`
	Err *string         `json:"err,omitempty"`
}

// call issues one backend method. Transport faults surface as
// *auth.TransportError, explicit err results as *auth.BackendRejection.
func (c *Client) call(ctx context.Context, method string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &auth.TransportError{Method: method, Cause: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.factory.endpoint(method), bytes.NewReader(body))
	if err != nil {
		return &auth.TransportError{Method: method, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.authorize(req, body); err != nil {
		return &auth.TransportError{Method: method, Cause: err}
	}

	resp, err := c.factory.httpClient.Do(req)
	if err != nil {
		return &auth.TransportError{Method: method, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &auth.TransportError{Method: method, Cause: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &auth.TransportError{Method: method, Cause: fmt.Errorf("decode response: %w", err)}
	}
	if env.Err != nil {
		return &auth.BackendRejection{Method: method, Reason: *env.Err}
	}

	if out != nil && len(env.OK) > 0 {
		if err := json.Unmarshal(env.OK, out); err != nil {
			return &auth.TransportError{Method: method, Cause: fmt.Errorf("decode result: %w", err)}
		}
	}
	return nil
}

// authorize stamps identity headers. Key-pair identities sign the request
// body digest; anonymous identities carry only the principal header.
func (c *Client) authorize(req *http.Request, body []byte) error {
	req.Header.Set(headerPrincipal, c.identity.Principal())

	signer, ok := c.identity.(auth.SignerIdentity)
	if !ok {
		return nil
	}

	digest := sha256.Sum256(body)
	sig, err := signer.Sign(digest[:])
	if err != nil {
		return fmt.Errorf("sign request: %w", err)
	}
	req.Header.Set(headerPublicKey, base64.StdEncoding.EncodeToString(signer.PublicKey()))
	req.Header.Set(headerSignature, base64.StdEncoding.EncodeToString(sig))
	return nil
}
