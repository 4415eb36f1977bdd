/*
inventory.go - Book lifecycle and stock movement rules

PURPOSE:
  Owns current-quantity derivation and mutation rules for books. Every
  quantity change is recorded as a movement entry, keeping the invariant:

    CurrentQty == InitialQty + sum(in movements) - sum(out movements)

  for each book's code, at all times.

OPERATIONS:
  CreateBook     - validate, allocate ID and (if absent) a unique code
  UpdateBook     - replace descriptive fields; never touches quantities
  DeleteBooks    - bulk delete by ID, idempotent; history is orphaned
  CreateSeller   - sellers are immutable after creation
  RecordIncoming - restock: increment quantity, append an "in" movement
  recordOutgoing - (internal, sales only) decrement, append an "out" movement

SEE ALSO:
  - sales.go: the only caller of recordOutgoing
  - importer.go: bulk creation with per-row error collection
*/
package ledger

import (
	"context"
	"time"
)

// =============================================================================
// BOOK LIFECYCLE
// =============================================================================

// CreateBook validates the input, allocates an identifier and (when no code
// is supplied) a fresh unique code, and inserts the book with
// CurrentQty == InitialQty. No movement is recorded for the initial stock.
func (e *Engine) CreateBook(ctx context.Context, in BookInput) (*Book, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateBookFields(in); err != nil {
		return nil, err
	}

	repo := NewRepository(snap)
	if in.Code != "" && repo.BookByCode(in.Code) != nil {
		return nil, &ConflictError{Code: in.Code}
	}

	alloc := NewAllocator(snap)
	code := in.Code
	if code == "" {
		code = NewBookCode(func(c string) bool { return repo.BookByCode(c) != nil })
	}

	book := Book{
		ID:         alloc.NextBookID(),
		Code:       code,
		Title:      in.Title,
		Author:     in.Author,
		Publisher:  in.Publisher,
		Shelf:      in.Shelf,
		Price:      in.Price,
		InitialQty: in.InitialQty,
		CurrentQty: in.InitialQty,
		CreatedAt:  e.now(),
	}
	snap.Books = append(snap.Books, book)

	if err := e.save(ctx, snap); err != nil {
		return nil, err
	}
	e.log.Info().Int64("id", book.ID).Str("code", book.Code).Msg("book created")
	return &book, nil
}

// UpdateBook replaces the descriptive fields of an existing book. The code
// changes only when a non-empty, different code is supplied, and only to a
// code no other book uses. InitialQty and CurrentQty are never touched here;
// quantities change only through stock movements.
func (e *Engine) UpdateBook(ctx context.Context, id int64, in BookInput) (*Book, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	repo := NewRepository(snap)
	book := repo.BookByID(id)
	if book == nil {
		return nil, &NotFoundError{Kind: "book", Key: formatID(id)}
	}

	if err := validateBookFields(in); err != nil {
		return nil, err
	}

	if in.Code != "" && in.Code != book.Code {
		if other := repo.BookByCode(in.Code); other != nil && other.ID != id {
			return nil, &ConflictError{Code: in.Code}
		}
		book.Code = in.Code
	}
	book.Title = in.Title
	book.Author = in.Author
	book.Publisher = in.Publisher
	book.Shelf = in.Shelf
	book.Price = in.Price

	updated := *book
	if err := e.save(ctx, snap); err != nil {
		return nil, err
	}
	e.log.Info().Int64("id", id).Str("code", updated.Code).Msg("book updated")
	return &updated, nil
}

// DeleteBooks removes every book whose identifier is in ids and returns the
// count removed. Unknown identifiers are silently ignored. Movements and
// sales referencing a deleted book remain in the history, orphaned.
func (e *Engine) DeleteBooks(ctx context.Context, ids []int64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return 0, err
	}

	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := snap.Books[:0]
	removed := 0
	for _, b := range snap.Books {
		if drop[b.ID] {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	snap.Books = kept

	if removed == 0 {
		// Nothing changed; skip the save.
		return 0, nil
	}
	if err := e.save(ctx, snap); err != nil {
		return 0, err
	}
	e.log.Info().Int("removed", removed).Msg("books deleted")
	return removed, nil
}

// CreateSeller inserts a new seller. Sellers are immutable after creation;
// there is no update operation.
func (e *Engine) CreateSeller(ctx context.Context, name, code string) (*Seller, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, &ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if code == "" {
		return nil, &ValidationError{Field: "code", Msg: "must not be empty"}
	}
	if NewRepository(snap).SellerByCode(code) != nil {
		return nil, &ConflictError{Code: code}
	}

	seller := Seller{
		ID:        NewAllocator(snap).NextSellerID(),
		Name:      name,
		Code:      code,
		CreatedAt: e.now(),
	}
	snap.Sellers = append(snap.Sellers, seller)

	if err := e.save(ctx, snap); err != nil {
		return nil, err
	}
	e.log.Info().Int64("id", seller.ID).Str("code", seller.Code).Msg("seller created")
	return &seller, nil
}

// =============================================================================
// STOCK MOVEMENTS
// =============================================================================

// RecordIncoming restocks a book: increments CurrentQty by qty and appends
// an "in" movement with the given note.
func (e *Engine) RecordIncoming(ctx context.Context, code string, qty int, note string) (*Book, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	if code == "" {
		return nil, &ValidationError{Field: "code", Msg: "must not be empty"}
	}
	if qty <= 0 {
		return nil, &ValidationError{Field: "qty", Msg: "must be a positive integer"}
	}

	book := NewRepository(snap).BookByCode(code)
	if book == nil {
		return nil, &NotFoundError{Kind: "book", Key: code}
	}

	book.CurrentQty += qty
	appendMovement(snap, NewAllocator(snap), DirectionIn, code, qty, note, e.now())

	updated := *book
	if err := e.save(ctx, snap); err != nil {
		return nil, err
	}
	e.log.Info().Str("code", code).Int("qty", qty).Msg("stock received")
	return &updated, nil
}

// recordOutgoing decrements a book's quantity and appends an "out" movement.
// Internal: only the sales engine calls this, after the whole intent has
// been validated. The caller holds the engine mutex.
func recordOutgoing(snap *Snapshot, alloc *Allocator, book *Book, qty int, note string, at time.Time) {
	book.CurrentQty -= qty
	appendMovement(snap, alloc, DirectionOut, book.Code, qty, note, at)
}

// appendMovement records one movement entry against the snapshot.
func appendMovement(snap *Snapshot, alloc *Allocator, dir Direction, code string, qty int, note string, at time.Time) {
	snap.Movements = append(snap.Movements, Movement{
		ID:        alloc.NextMovementID(),
		Direction: dir,
		BookCode:  code,
		Qty:       qty,
		Note:      note,
		At:        at,
	})
}

// validateBookFields checks the caller-supplied book fields shared by
// create, update, and import.
func validateBookFields(in BookInput) error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Msg: "must not be empty"}
	}
	if in.Price.IsNegative() {
		return &ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if in.InitialQty < 0 {
		return &ValidationError{Field: "initial_qty", Msg: "must not be negative"}
	}
	return nil
}
