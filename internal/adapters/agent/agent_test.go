package agent

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
)

// testSigner is a minimal key-pair identity for exercising request signing.
type testSigner struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

func newTestSigner(t *testing.T) *testSigner {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return &testSigner{pub: pub, priv: priv}
}

func (s *testSigner) Principal() string               { return "test-principal" }
func (s *testSigner) Sign(msg []byte) ([]byte, error) { return ed25519.Sign(s.priv, msg), nil }
func (s *testSigner) PublicKey() []byte               { return s.pub }

// serveRootKey registers the local trust-handshake route so factories built
// against an httptest server (which listens on 127.0.0.1 and is therefore
// classified local) can complete Bind.
func serveRootKey(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/rootKey", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"rootKey": base64.StdEncoding.EncodeToString([]byte("dev-root-key")),
		})
	})
}

func localFactory(t *testing.T, srv *httptest.Server) *Factory {
	t.Helper()
	// Rewrite the httptest URL to loopback-by-name so the factory treats it
	// as a local target.
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	f, err := NewFactory(Config{Host: "http://127.0.0.1:" + u.Port()})
	require.NoError(t, err)
	return f
}

func TestNewFactory_Validation(t *testing.T) {
	_, err := NewFactory(Config{})
	assert.Error(t, err)

	_, err = NewFactory(Config{Host: "ftp://nope"})
	assert.Error(t, err)

	f, err := NewFactory(Config{Host: "https://api.cheddaboards.com"})
	require.NoError(t, err)
	assert.False(t, f.local)
}

func TestBind_LocalTrustHandshakeRunsOnce(t *testing.T) {
	var handshakes atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/rootKey", func(w http.ResponseWriter, _ *http.Request) {
		handshakes.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"rootKey": base64.StdEncoding.EncodeToString([]byte("dev-root-key")),
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := localFactory(t, srv)
	ctx := context.Background()

	for range 3 {
		_, err := f.Bind(ctx, auth.AnonymousIdentity{})
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), handshakes.Load())
	assert.Equal(t, []byte("dev-root-key"), f.rootKey)
}

func TestBind_ProductionPerformsNoHandshake(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	f, err := NewFactory(Config{Host: "https://api.cheddaboards.com", HTTPClient: srv.Client()})
	require.NoError(t, err)

	_, err = f.Bind(context.Background(), auth.AnonymousIdentity{})
	require.NoError(t, err)
	assert.Zero(t, calls.Load())
}

func TestCall_OKEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	serveRootKey(mux)
	mux.HandleFunc("/api/v1/submitScore", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/submitScore", r.URL.Path)
		assert.Equal(t, auth.AnonymousPrincipal, r.Header.Get(headerPrincipal))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "anonymous", req["userIdType"])
		assert.Equal(t, float64(500), req["score"])

		_ = json.NewEncoder(w).Encode(map[string]any{"ok": "Score submitted"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f, err := NewFactory(Config{Host: srv.URL})
	require.NoError(t, err)
	backend, err := f.Bind(context.Background(), auth.AnonymousIdentity{})
	require.NoError(t, err)

	err = backend.SubmitScore(context.Background(), auth.UserAnonymous, "", "maze-runner", 500, 3)
	assert.NoError(t, err)
}

func TestCall_ErrEnvelopeIsBackendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"err": "score exceeds cap"})
	}))
	defer srv.Close()

	f, err := NewFactory(Config{Host: srv.URL})
	require.NoError(t, err)
	backend, err := f.Bind(context.Background(), auth.AnonymousIdentity{})
	require.NoError(t, err)

	err = backend.SubmitScore(context.Background(), auth.UserAnonymous, "", "maze-runner", 500, 3)
	require.Error(t, err)

	var rejection *auth.BackendRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "submitScore", rejection.Method)
	assert.Equal(t, "score exceeds cap", rejection.Reason)
}

func TestCall_HTTPErrorIsTransportError(t *testing.T) {
	mux := http.NewServeMux()
	serveRootKey(mux)
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f, err := NewFactory(Config{Host: srv.URL})
	require.NoError(t, err)
	backend, err := f.Bind(context.Background(), auth.AnonymousIdentity{})
	require.NoError(t, err)

	_, err = backend.GetGame(context.Background(), "maze-runner")
	require.Error(t, err)

	var transport *auth.TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, "getGame", transport.Method)
}

func TestCall_SignerIdentityAttachesSignature(t *testing.T) {
	signer := newTestSigner(t)

	mux := http.NewServeMux()
	serveRootKey(mux)
	mux.HandleFunc("/api/v1/principalLogin", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-principal", r.Header.Get(headerPrincipal))
		assert.NotEmpty(t, r.Header.Get(headerPublicKey))
		assert.NotEmpty(t, r.Header.Get(headerSignature))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": "ok"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f, err := NewFactory(Config{Host: srv.URL})
	require.NoError(t, err)
	backend, err := f.Bind(context.Background(), signer)
	require.NoError(t, err)

	err = backend.RegisterPrincipalIdentity(context.Background(), "chedda")
	assert.NoError(t, err)
}

func TestGetGameProfile_AbsentDecodesToNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": nil})
	}))
	defer srv.Close()

	f, err := NewFactory(Config{Host: srv.URL})
	require.NoError(t, err)
	backend, err := f.Bind(context.Background(), auth.AnonymousIdentity{})
	require.NoError(t, err)

	gp, err := backend.GetGameProfile(context.Background(), auth.UserAnonymous, "", "maze-runner")
	require.NoError(t, err)
	assert.Nil(t, gp)
}

func TestGetGameProfile_DecodesWireShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": map[string]any{
			"gameId":      "maze-runner",
			"total_score": 500,
			"best_streak": 3,
			"play_count":  7,
			"last_played": 1767225600000,
			"achievements": []map[string]string{
				{"id": "first-win", "name": "First Win", "description": "", "gameId": "maze-runner"},
			},
		}})
	}))
	defer srv.Close()

	f, err := NewFactory(Config{Host: srv.URL})
	require.NoError(t, err)
	backend, err := f.Bind(context.Background(), auth.AnonymousIdentity{})
	require.NoError(t, err)

	gp, err := backend.GetGameProfile(context.Background(), auth.UserAnonymous, "", "maze-runner")
	require.NoError(t, err)
	require.NotNil(t, gp)
	assert.Equal(t, int64(500), gp.TotalScore)
	assert.Equal(t, int64(3), gp.BestStreak)
	assert.Equal(t, 7, gp.PlayCount)
	require.Len(t, gp.Achievements, 1)
	assert.Equal(t, "first-win", gp.Achievements[0].ID)
	assert.Equal(t, 2026, gp.LastPlayed.Year())
}

func TestValidateSession_InvalidIsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": map[string]any{"valid": false}})
	}))
	defer srv.Close()

	f, err := NewFactory(Config{Host: srv.URL})
	require.NoError(t, err)
	backend, err := f.Bind(context.Background(), auth.AnonymousIdentity{})
	require.NoError(t, err)

	_, err = backend.ValidateSession(context.Background(), "stale-ticket")
	var rejection *auth.BackendRejection
	require.ErrorAs(t, err, &rejection)
}
