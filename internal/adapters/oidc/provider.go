// Package oidc runs a real OAuth/OIDC authorization-code flow against a
// social provider to obtain the raw ID token. The token is only ever handed
// to the credential verifier; it is never sent to the game backend.
package oidc

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// Issuer URLs for the supported social providers.
const (
	GoogleIssuer = "https://accounts.google.com"
	AppleIssuer  = "https://appleid.apple.com"
)

// Acquirer obtains a raw provider credential via the OIDC code flow.
type Acquirer struct {
	provider auth.Provider
	config   *oauth2.Config

	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier
}

// AcquirerConfig holds configuration for an Acquirer.
type AcquirerConfig struct {
	Provider     auth.Provider
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// IssuerURL overrides the default issuer for the provider. Optional.
	IssuerURL  string
	Scopes     []string
	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
}

// NewAcquirer discovers the provider's endpoints and prepares the code flow.
func NewAcquirer(ctx context.Context, cfg AcquirerConfig) (*Acquirer, error) {
	if !cfg.Provider.Valid() {
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	issuer := cfg.IssuerURL
	if issuer == "" {
		switch cfg.Provider {
		case auth.ProviderGoogle:
			issuer = GoogleIssuer
		case auth.ProviderApple:
			issuer = AppleIssuer
		}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	discoveryCtx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	op, err := gooidc.NewProvider(discoveryCtx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{gooidc.ScopeOpenID, "email"}
	}

	return &Acquirer{
		provider:     cfg.Provider,
		oidcProvider: op,
		verifier:     op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     op.Endpoint(),
		},
	}, nil
}

// Begin returns the provider authorization URL together with the state and
// nonce bound to it. The caller redirects the user and holds state/nonce for
// the Exchange leg.
func (a *Acquirer) Begin(_ context.Context) (authURL, state, nonce string, err error) {
	state, err = generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err = generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}

	authURL = a.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("response_type", "code"),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
	return authURL, state, nonce, nil
}

// Exchange swaps the authorization code for tokens, checks the ID token
// locally (signature, audience, nonce), and packages the raw credential for
// the verifier. Local verification is a fast-fail; the verifier remains the
// authority that mints session tickets.
func (a *Acquirer) Exchange(ctx context.Context, code, state, nonce string) (ports.VerifyInput, error) {
	if code == "" {
		return ports.VerifyInput{}, errors.New("authorization code is required")
	}
	if state == "" {
		return ports.VerifyInput{}, errors.New("state is required")
	}

	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return ports.VerifyInput{}, fmt.Errorf("exchange code for token: %w", err)
	}

	rawID, err := idTokenFromToken(token)
	if err != nil {
		return ports.VerifyInput{}, err
	}

	idTok, err := a.verifier.Verify(ctx, rawID)
	if err != nil {
		return ports.VerifyInput{}, fmt.Errorf("verify id_token: %w", err)
	}
	var claims struct {
		Nonce string `json:"nonce"`
	}
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return ports.VerifyInput{}, fmt.Errorf("parse id_token claims: %w", claimsErr)
	}
	if nonce != "" && claims.Nonce != nonce {
		return ports.VerifyInput{}, errors.New("invalid nonce")
	}

	return ports.VerifyInput{
		Provider: a.provider,
		IDToken:  rawID,
		State:    state,
		Nonce:    nonce,
	}, nil
}

// generateRandomString generates a cryptographically secure URL-safe random
// string of exact length.
func generateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}

// idTokenFromToken extracts the raw id_token from a token response.
func idTokenFromToken(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", errors.New("nil token")
	}
	raw := tok.Extra("id_token")
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errors.New("missing id_token in token response")
	}
	return s, nil
}
