/*
Package jsonfile provides the flat-file implementation of the document store.

PURPOSE:
  Persists the whole snapshot as one JSON document on disk. This is the
  production document store for the system: every save replaces the entire
  file, matching the whole-document read/write semantics the engine
  assumes.

ATOMIC WRITES:
  Save marshals to a temporary file in the same directory and renames it
  over the target. Rename is atomic on POSIX filesystems, so a crash
  mid-save leaves the previous document intact rather than a truncated one.

MISSING FILE:
  Load returns a default-empty snapshot when the file does not exist yet.
  The first save creates it.

SEE ALSO:
  - ledger/store.go: the DocumentStore contract
  - store/sqlite: the SQL-backed alternative
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/warp/bookledger/ledger"
)

// Store persists the snapshot as a single JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store writing to the given path. The parent directory is
// created if missing.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Load reads the whole document, or returns a default-empty snapshot when
// no file exists yet.
func (s *Store) Load(_ context.Context) (*ledger.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return ledger.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	snap := ledger.NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return snap, nil
}

// Save replaces the whole document atomically (temp file + rename).
func (s *Store) Save(_ context.Context, snap *ledger.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
