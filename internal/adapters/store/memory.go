package store

import (
	"context"
	"sync"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// MemoryStore holds the auth record in process memory. Sessions do not
// survive a restart; useful for tests and short-lived embedders.
type MemoryStore struct {
	mu  sync.Mutex
	rec []byte
}

var _ ports.AuthStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Save(_ context.Context, rec auth.AuthRecord) error {
	data, err := auth.EncodeRecord(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rec = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (auth.AuthRecord, error) {
	s.mu.Lock()
	data := s.rec
	s.mu.Unlock()
	if data == nil {
		return auth.AuthRecord{}, ports.ErrNoRecord
	}
	return auth.DecodeRecord(data)
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.rec = nil
	s.mu.Unlock()
	return nil
}
