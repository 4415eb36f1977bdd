/*
repository.go - Pure lookups over one in-memory snapshot

PURPOSE:
  A Repository is a read view over the snapshot held in memory for the
  duration of one intent. It resolves the soft references used throughout
  the system: movements and sales point at books and sellers by code, and
  update/delete intents address books by integer ID.

CONTRACT:
  No side effects. Lookups return pointers into the snapshot's slices so
  the engine can mutate the found entity in place; callers outside the
  engine receive copies (see engine.go read surface).

SEE ALSO:
  - allocator.go: identifier assignment, the other snapshot-derived concern
*/
package ledger

// Repository provides lookup-by-identifier and lookup-by-unique-code over
// a snapshot. Valid only as long as the snapshot's slices are not resized.
type Repository struct {
	snap *Snapshot
}

func NewRepository(snap *Snapshot) *Repository {
	return &Repository{snap: snap}
}

// BookByCode returns the book with the given code, or nil.
func (r *Repository) BookByCode(code string) *Book {
	for i := range r.snap.Books {
		if r.snap.Books[i].Code == code {
			return &r.snap.Books[i]
		}
	}
	return nil
}

// BookByID returns the book with the given identifier, or nil.
func (r *Repository) BookByID(id int64) *Book {
	for i := range r.snap.Books {
		if r.snap.Books[i].ID == id {
			return &r.snap.Books[i]
		}
	}
	return nil
}

// SellerByCode returns the seller with the given code, or nil.
func (r *Repository) SellerByCode(code string) *Seller {
	for i := range r.snap.Sellers {
		if r.snap.Sellers[i].Code == code {
			return &r.snap.Sellers[i]
		}
	}
	return nil
}

// SellerByID returns the seller with the given identifier, or nil.
func (r *Repository) SellerByID(id int64) *Seller {
	for i := range r.snap.Sellers {
		if r.snap.Sellers[i].ID == id {
			return &r.snap.Sellers[i]
		}
	}
	return nil
}
