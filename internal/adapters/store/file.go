package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// FileStore persists the auth record as a single JSON file, the desktop/CLI
// analog of browser tab storage. Writes are atomic (temp file + rename) so a
// crash never leaves a half-written record.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed auth store at path. The parent
// directory is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(_ context.Context, rec auth.AuthRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := auth.EncodeRecord(rec)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create auth dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".auth-*")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write record: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close record: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename record: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (auth.AuthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return auth.AuthRecord{}, ports.ErrNoRecord
		}
		return auth.AuthRecord{}, fmt.Errorf("read record: %w", err)
	}

	return auth.DecodeRecord(data)
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove record: %w", err)
	}
	return nil
}
