/*
Package ledger provides the inventory & sales ledger engine.

PURPOSE:
  This package contains the domain types and rules for a small retail book
  operation: books with derived stock quantities, sellers, an append-only
  movement history, and an append-only sales history. Quantities are only
  ever changed through ledger operations, and every change is recorded as
  a movement.

KEY CONCEPTS IN THIS FILE (types.go):
  - Book: inventory item with a unique integer ID and a unique scannable code
  - Seller: immutable party a sale is attributed to
  - Movement: an append-only record of one stock change, tagged in/out
  - Sale: an append-only record of one sale line, with the total frozen
    at sale time
  - Snapshot: the full in-memory state of all four collections

DESIGN PRINCIPLES:
  1. Append-only history: movements and sales are never modified or deleted
  2. Precision: decimal.Decimal for prices and totals, never floats
  3. Soft references: movements and sales point at books/sellers by code,
     never by owning pointer; deleting a book orphans its history
  4. Derived state: a book's CurrentQty always equals InitialQty plus the
     signed sum of its movements

SEE ALSO:
  - inventory.go: book lifecycle and stock movement rules
  - sales.go: single and batch sale transactions
  - store.go: DocumentStore persistence contract
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DIRECTION - Which way a movement changes stock
// =============================================================================

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// =============================================================================
// ENTITIES
// =============================================================================

// Book is an inventory item. CurrentQty is mutated only by ledger
// operations; InitialQty never changes after creation.
type Book struct {
	ID         int64           `json:"id"`
	Code       string          `json:"code"`
	Title      string          `json:"title"`
	Author     string          `json:"author"`
	Publisher  string          `json:"publisher"`
	Shelf      string          `json:"shelf"`
	Price      decimal.Decimal `json:"price"`
	InitialQty int             `json:"initial_qty"`
	CurrentQty int             `json:"current_qty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Seller is the party a sale is attributed to. Immutable after creation.
type Seller struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// Movement records one stock change for a book, referenced by code.
// Append-only: never mutated or deleted by the ledger.
type Movement struct {
	ID        int64     `json:"id"`
	Direction Direction `json:"direction"`
	BookCode  string    `json:"book_code"`
	Qty       int       `json:"qty"`
	Note      string    `json:"note"`
	At        time.Time `json:"at"`
}

// Sale records one sale line. Total is price x qty at the moment of sale
// and is never re-derived from the book's later price.
type Sale struct {
	ID         int64           `json:"id"`
	BookCode   string          `json:"book_code"`
	SellerCode string          `json:"seller_code"`
	Qty        int             `json:"qty"`
	Total      decimal.Decimal `json:"total"`
	At         time.Time       `json:"at"`
}

// =============================================================================
// SNAPSHOT - Full state of all four collections
// =============================================================================

// Snapshot is the whole document the engine loads, mutates, and saves as
// one unit. It is the sole consistency boundary (see engine.go).
type Snapshot struct {
	Books     []Book     `json:"books"`
	Sellers   []Seller   `json:"sellers"`
	Movements []Movement `json:"movements"`
	Sales     []Sale     `json:"sales"`
}

// NewSnapshot returns a default-empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// alias the persisted state.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Books:     make([]Book, len(s.Books)),
		Sellers:   make([]Seller, len(s.Sellers)),
		Movements: make([]Movement, len(s.Movements)),
		Sales:     make([]Sale, len(s.Sales)),
	}
	copy(c.Books, s.Books)
	copy(c.Sellers, s.Sellers)
	copy(c.Movements, s.Movements)
	copy(c.Sales, s.Sales)
	return c
}

// =============================================================================
// INTENT INPUTS AND RESULTS
// =============================================================================

// BookInput carries the caller-supplied fields for creating or updating
// a book. InitialQty is honored on create only.
type BookInput struct {
	Code       string
	Title      string
	Author     string
	Publisher  string
	Shelf      string
	Price      decimal.Decimal
	InitialQty int
}

// SaleReceipt is the result of a single-item sale.
type SaleReceipt struct {
	SaleID     int64
	BookTitle  string
	SellerName string
	Qty        int
	Total      decimal.Decimal
}

// BatchItem is one line of a multi-item sale.
type BatchItem struct {
	BookCode string
	Qty      int
}

// BatchReceipt aggregates a fully applied multi-item sale.
type BatchReceipt struct {
	TotalAmount decimal.Decimal
	TotalQty    int
	ItemCount   int
}

// ImportRow is one tabular row of a bulk book import.
type ImportRow struct {
	Code       string
	Title      string
	Author     string
	Publisher  string
	Shelf      string
	Price      decimal.Decimal
	InitialQty int
}

// ImportReport is the partial-success result of a bulk import.
type ImportReport struct {
	Inserted int
	Skipped  int
	Errors   []string
}
