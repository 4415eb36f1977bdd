// Package store provides DocumentStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/bookledger/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	snap *ledger.Snapshot

	// FailSave, when set, makes Save return this error. Tests use it to
	// exercise the persistence failure path.
	FailSave error
}

func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a deep copy of the stored snapshot, or a default-empty one
// if nothing has been saved yet.
func (m *Memory) Load(_ context.Context) (*ledger.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snap == nil {
		return ledger.NewSnapshot(), nil
	}
	return m.snap.Clone(), nil
}

// Save replaces the stored snapshot with a deep copy of the given one.
func (m *Memory) Save(_ context.Context, snap *ledger.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSave != nil {
		return m.FailSave
	}
	m.snap = snap.Clone()
	return nil
}
