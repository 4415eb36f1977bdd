/*
allocator.go - Identifier and code assignment

PURPOSE:
  Assigns monotonically increasing integer identifiers per collection and
  unique external codes for new books. Identifier assignment is a single,
  testable responsibility: an Allocator is seeded from the snapshot at the
  start of each intent (1 if the collection is empty, max+1 otherwise) and
  then counts up in memory, so identifiers allocated across a multi-item
  batch are sequential and gapless within that one call.

  Seeding from the current maximum stays correct even when the previous
  maximum was deleted. It is NOT safe under concurrent writers; the engine
  serializes all intents behind one mutex (engine.go).

CODE GENERATION:
  When a new book arrives without a code, the candidate is
  "B" + last-8-digits-of-unix-time + 3 random digits, regenerated on
  collision until unique.
*/
package ledger

import (
	"fmt"
	"math/rand"
	"time"
)

// Allocator hands out the next identifier for each collection. Seeded from
// one snapshot, used for the duration of one intent.
type Allocator struct {
	nextBook     int64
	nextSeller   int64
	nextMovement int64
	nextSale     int64
}

// NewAllocator seeds an allocator from the snapshot's current maxima.
func NewAllocator(snap *Snapshot) *Allocator {
	a := &Allocator{nextBook: 1, nextSeller: 1, nextMovement: 1, nextSale: 1}
	for i := range snap.Books {
		if snap.Books[i].ID >= a.nextBook {
			a.nextBook = snap.Books[i].ID + 1
		}
	}
	for i := range snap.Sellers {
		if snap.Sellers[i].ID >= a.nextSeller {
			a.nextSeller = snap.Sellers[i].ID + 1
		}
	}
	for i := range snap.Movements {
		if snap.Movements[i].ID >= a.nextMovement {
			a.nextMovement = snap.Movements[i].ID + 1
		}
	}
	for i := range snap.Sales {
		if snap.Sales[i].ID >= a.nextSale {
			a.nextSale = snap.Sales[i].ID + 1
		}
	}
	return a
}

func (a *Allocator) NextBookID() int64 {
	id := a.nextBook
	a.nextBook++
	return id
}

func (a *Allocator) NextSellerID() int64 {
	id := a.nextSeller
	a.nextSeller++
	return id
}

func (a *Allocator) NextMovementID() int64 {
	id := a.nextMovement
	a.nextMovement++
	return id
}

func (a *Allocator) NextSaleID() int64 {
	id := a.nextSale
	a.nextSale++
	return id
}

// NewBookCode generates a fresh book code that taken() reports as unused.
// Candidates look like "B12345678042"; regenerates until unique.
func NewBookCode(taken func(code string) bool) string {
	for {
		code := fmt.Sprintf("B%08d%03d", time.Now().Unix()%100000000, rand.Intn(1000))
		if !taken(code) {
			return code
		}
	}
}
