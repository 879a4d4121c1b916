package keyring

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
)

// Connect runs the interactive approval handshake: it generates a fresh key
// pair, sends the user to the identity service with a loopback callback URL,
// and waits for the approval redirect. The approved identity is persisted
// and returned. A single Connect call resolves or fails exactly once.
func (p *Provider) Connect(ctx context.Context) (auth.SignerIdentity, error) {
	if p.authorize == "" {
		return nil, errors.New("keyring: authorize URL not configured")
	}

	id, err := p.generate()
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("keyring: callback listener: %w", err)
	}
	defer ln.Close()

	state := uuid.NewString()
	type callback struct {
		expires time.Time
		err     error
	}
	results := make(chan callback, 1)
	var once sync.Once

	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var cb callback
		switch {
		case q.Get("state") != state:
			cb.err = errors.New("keyring: state mismatch in callback")
		case q.Get("denied") != "":
			cb.err = errors.New("keyring: sign-in was denied")
		default:
			cb.expires = time.Now().Add(p.lifetime)
			if ms, err := strconv.ParseInt(q.Get("expires"), 10, 64); err == nil {
				if granted := time.UnixMilli(ms); granted.Before(cb.expires) {
					cb.expires = granted
				}
			}
		}
		if cb.err != nil {
			http.Error(w, cb.err.Error(), http.StatusBadRequest)
		} else {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, "<html><body>Signed in. You can close this window.</body></html>")
		}
		once.Do(func() { results <- cb })
	})}
	go srv.Serve(ln)
	defer srv.Close()

	authorizeURL, err := p.buildAuthorizeURL(ln.Addr().String(), state, id)
	if err != nil {
		return nil, err
	}
	if err := p.openURL(authorizeURL); err != nil {
		return nil, fmt.Errorf("keyring: open authorize URL: %w", err)
	}
	p.logger.Debug("waiting for identity approval", "principal", id.principal)

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("keyring: connect: %w", ctx.Err())
	case cb := <-results:
		if cb.err != nil {
			return nil, cb.err
		}
		if err := p.persist(id, cb.expires); err != nil {
			return nil, err
		}
		p.logger.Info("identity connected", "principal", id.principal)
		return id, nil
	}
}

func (p *Provider) buildAuthorizeURL(callbackAddr, state string, id *identity) (string, error) {
	u, err := url.Parse(p.authorize)
	if err != nil {
		return "", fmt.Errorf("keyring: parse authorize URL: %w", err)
	}
	q := u.Query()
	q.Set("callback", "http://"+callbackAddr+"/callback")
	q.Set("state", state)
	q.Set("pubkey", base64.RawURLEncoding.EncodeToString(id.pub))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
