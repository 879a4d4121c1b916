package verifier

// Package verifier is the HTTP client for the external credential verifier.
// The verifier exchanges a raw OAuth credential for a backend session ticket
// so the raw credential never reaches the scoring backend.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// Config holds verifier client configuration.
type Config struct {
	URL        string
	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
	Logger     *slog.Logger // Optional
}

// Client implements ports.CredentialVerifier over the verifier HTTP contract.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a verifier client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("verifier URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{url: cfg.URL, httpClient: httpClient, logger: logger}, nil
}

type exchangeRequest struct {
	Provider string `json:"provider"`
	IDToken  string `json:"id_token"`
	State    string `json:"state"`
	Nonce    string `json:"nonce"`
}

type exchangeResponse struct {
	OK      bool   `json:"ok"`
	Session *struct {
		SessionID string `json:"sessionId"`
		Email     string `json:"email"`
	} `json:"session,omitempty"`
	Error string `json:"error,omitempty"`
}

// Exchange sends the raw credential to the verifier and returns the minted
// session ticket. Every failure mode surfaces as *auth.VerifierError.
func (c *Client) Exchange(ctx context.Context, in ports.VerifyInput) (ports.VerifiedSession, error) {
	if in.IDToken == "" {
		return ports.VerifiedSession{}, &auth.VerifierError{Provider: in.Provider, Reason: "missing credential"}
	}

	body, err := json.Marshal(exchangeRequest{
		Provider: string(in.Provider),
		IDToken:  in.IDToken,
		State:    in.State,
		Nonce:    in.Nonce,
	})
	if err != nil {
		return ports.VerifiedSession{}, &auth.VerifierError{Provider: in.Provider, Reason: "encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return ports.VerifiedSession{}, &auth.VerifierError{Provider: in.Provider, Reason: "build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.VerifiedSession{}, &auth.VerifierError{Provider: in.Provider, Reason: "exchange request failed", Cause: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WarnContext(ctx, "close verifier response body", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return ports.VerifiedSession{}, &auth.VerifierError{
			Provider: in.Provider,
			Reason:   fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var out exchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.VerifiedSession{}, &auth.VerifierError{Provider: in.Provider, Reason: "decode response", Cause: err}
	}

	if !out.OK {
		reason := out.Error
		if reason == "" {
			reason = "credential rejected"
		}
		return ports.VerifiedSession{}, &auth.VerifierError{Provider: in.Provider, Reason: reason}
	}
	if out.Session == nil || out.Session.SessionID == "" {
		return ports.VerifiedSession{}, &auth.VerifierError{Provider: in.Provider, Reason: "no ticket in response"}
	}

	return ports.VerifiedSession{
		SessionID: out.Session.SessionID,
		Email:     out.Session.Email,
	}, nil
}
