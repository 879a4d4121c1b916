package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// restoreSession rebuilds the session from the persisted auth record during
// Init. Invalid, stale, and expired records are deleted and the client stays
// Anonymous; restore itself never fails on account of a bad record.
func (o *Orchestrator) restoreSession(ctx context.Context) error {
	rec, err := o.store.Load(ctx)
	switch {
	case errors.Is(err, ports.ErrNoRecord):
		return nil
	case errors.Is(err, auth.ErrRecordInvalid):
		o.logger.Warn("discarding invalid auth record", "error", err)
		if clearErr := o.store.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clear invalid auth record: %w", clearErr)
		}
		return nil
	case err != nil:
		return fmt.Errorf("load auth record: %w", err)
	}

	switch rec.UserType {
	case auth.UserEmail:
		return o.restoreTicket(ctx, rec)
	case auth.UserPrincipal:
		return o.restorePrincipal(ctx, rec)
	default:
		return o.install(rec, nil)
	}
}

// restoreTicket revalidates a session ticket with the backend. Any negative
// or failed validation expires the session rather than trusting a ticket the
// backend no longer honors.
func (o *Orchestrator) restoreTicket(ctx context.Context, rec auth.AuthRecord) error {
	o.mu.Lock()
	backend := o.backend
	o.mu.Unlock()

	validation, err := backend.ValidateSession(ctx, rec.SessionID)
	if err != nil {
		o.logger.Info("stored session ticket no longer valid", "error", err)
		if clearErr := o.store.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clear expired auth record: %w", clearErr)
		}
		return nil
	}

	if validation.Nickname != "" {
		rec.Nickname = validation.Nickname
	}
	return o.install(rec, nil)
}

// restorePrincipal re-derives the key-pair identity from local storage.
// Liveness here is judged locally only: unlike tickets, key-pair sessions
// are not revalidated against the backend on restore. The key expiry is the
// sole authority, so a clock rollback extends a session the backend would
// consider stale.
func (o *Orchestrator) restorePrincipal(ctx context.Context, rec auth.AuthRecord) error {
	if o.identity == nil {
		o.logger.Warn("principal record present but no identity provider configured")
		if err := o.store.Clear(ctx); err != nil {
			return fmt.Errorf("clear orphaned auth record: %w", err)
		}
		return nil
	}

	id, live, err := o.identity.Restore(ctx)
	if err != nil {
		return fmt.Errorf("restore identity: %w", err)
	}
	if !live {
		o.logger.Info("stored identity expired", "principal", rec.UserID)
		if clearErr := o.store.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clear expired auth record: %w", clearErr)
		}
		return nil
	}

	if id.Principal() != rec.UserID {
		// The keyring holds a different identity than the record claims.
		o.logger.Warn("auth record does not match stored identity",
			"record", rec.UserID, "keyring", id.Principal())
		if clearErr := o.store.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clear mismatched auth record: %w", clearErr)
		}
		return nil
	}

	backend, err := o.agent.Bind(ctx, id)
	if err != nil {
		return fmt.Errorf("bind identity client: %w", err)
	}
	return o.install(rec, backend)
}

// install commits a restored record under the lock. backend may be nil to
// keep the anonymous handle.
func (o *Orchestrator) install(rec auth.AuthRecord, backend ports.Backend) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.record = &rec
	o.state = rec.State()
	if backend != nil {
		o.backend = backend
	}
	return nil
}
