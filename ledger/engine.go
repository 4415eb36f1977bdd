/*
engine.go - The load-mutate-save intent cycle

PURPOSE:
  The Engine is the single entry point for every intent (create/update
  book, restock, sell, import). Each intent performs one full load of the
  snapshot, runs its validation and mutation logic entirely in memory,
  then performs one full save. Whole-document load/save is the sole
  consistency boundary.

ATOMICITY:
  Intents validate ALL preconditions before mutating anything, so no
  intermediate state is ever externally visible. A process-wide mutex
  serializes intents; without it, two concurrent intents would each
  load-mutate-save independently and the second save would silently
  overwrite the first (the classic lost update).

PERSISTENCE FAILURES:
  Load and save failures surface to the caller as PersistenceError and
  are logged. The mutated in-memory snapshot is discarded on save
  failure, so a failed intent leaves no trace.

SEE ALSO:
  - inventory.go, sales.go, importer.go: the intents themselves
  - store.go: the DocumentStore contract
*/
package ledger

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine owns the document store and serializes all intents.
type Engine struct {
	store DocumentStore
	log   zerolog.Logger

	mu sync.Mutex

	// now is swappable for tests.
	now func() time.Time
}

// New creates an engine on top of the given document store.
func New(store DocumentStore, log zerolog.Logger) *Engine {
	return &Engine{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// load fetches the snapshot, wrapping store failures.
func (e *Engine) load(ctx context.Context) (*Snapshot, error) {
	snap, err := e.store.Load(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("snapshot load failed")
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	if snap == nil {
		snap = NewSnapshot()
	}
	return snap, nil
}

// save persists the snapshot, wrapping store failures.
func (e *Engine) save(ctx context.Context, snap *Snapshot) error {
	if err := e.store.Save(ctx, snap); err != nil {
		e.log.Error().Err(err).Msg("snapshot save failed")
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// =============================================================================
// READ SURFACE - Copies for export and listing
// =============================================================================

// ListBooks returns a copy of all books.
func (e *Engine) ListBooks(ctx context.Context) ([]Book, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Book, len(snap.Books))
	copy(out, snap.Books)
	return out, nil
}

// ListSellers returns a copy of all sellers.
func (e *Engine) ListSellers(ctx context.Context) ([]Seller, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Seller, len(snap.Sellers))
	copy(out, snap.Sellers)
	return out, nil
}

// ListMovements returns a copy of the full movement history.
func (e *Engine) ListMovements(ctx context.Context) ([]Movement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Movement, len(snap.Movements))
	copy(out, snap.Movements)
	return out, nil
}

// ListSales returns a copy of the full sales history.
func (e *Engine) ListSales(ctx context.Context) ([]Sale, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Sale, len(snap.Sales))
	copy(out, snap.Sales)
	return out, nil
}

// GetBook returns a copy of the book with the given identifier.
func (e *Engine) GetBook(ctx context.Context, id int64) (*Book, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	book := NewRepository(snap).BookByID(id)
	if book == nil {
		return nil, &NotFoundError{Kind: "book", Key: formatID(id)}
	}
	b := *book
	return &b, nil
}

func formatID(id int64) string {
	// Books are addressed by code externally; ID shows up only in errors.
	return "#" + strconv.FormatInt(id, 10)
}
