/*
store.go - Persistence contract for the snapshot document

PURPOSE:
  Defines the interface between the ledger engine and the document store.
  The store holds the four collections as a single document with
  whole-document read/write semantics: each intent loads the entire
  snapshot, mutates it in memory, and saves the entire snapshot back.

WHOLE-DOCUMENT CONTRACT:
  - Load() returns a default-empty snapshot when nothing has been saved yet
  - Save() replaces the whole document; there is no partial write
  - The engine serializes intents with one process-wide mutex (engine.go),
    so implementations never see concurrent Save calls from one engine

IMPLEMENTATIONS:
  - ledger/store/memory.go: in-memory, for tests and dev
  - store/jsonfile: flat JSON file with atomic rename writes
  - store/sqlite: SQLite, whole snapshot replaced inside one SQL transaction

SEE ALSO:
  - engine.go: the load-mutate-save cycle using this interface
*/
package ledger

import "context"

// DocumentStore persists the snapshot as one document.
type DocumentStore interface {
	// Load returns the current snapshot, or a default-empty one if nothing
	// has been saved yet. The returned snapshot is owned by the caller.
	Load(ctx context.Context) (*Snapshot, error)

	// Save replaces the stored document with the given snapshot.
	Save(ctx context.Context, snap *Snapshot) error
}
