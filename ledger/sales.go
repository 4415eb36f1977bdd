/*
sales.go - Single and multi-item sale transactions

PURPOSE:
  Validates and applies sales against the inventory ledger, producing one
  Sale record and one "out" movement per line item, atomically within one
  load-mutate-save cycle.

THE BATCH CONTRACT:
  SellBatch validates the ENTIRE batch before mutating anything. Every
  item is checked in input order: the book must resolve, the quantity must
  be positive, and stock must suffice. Stock checks are cumulative across
  the batch, so a code repeated in two items cannot drive the quantity
  negative. The first failing item aborts the whole batch with its 1-based
  index and book code; no partial application ever happens.

  Only after all items pass does apply run, in input order. Movement and
  sale identifiers are allocated sequentially across the whole batch, so
  ordering is deterministic and gapless within one call.

TOTALS:
  Each sale's total is price x qty using the book's current stored price.
  The total is frozen on the Sale record; later price changes never
  re-derive it.
*/
package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SINGLE-ITEM SALE
// =============================================================================

// Sell applies a single-item sale: resolves book and seller by code,
// validates quantity and stock, decrements the book, and appends one "out"
// movement and one Sale. The movement note references the seller's name.
func (e *Engine) Sell(ctx context.Context, bookCode, sellerCode string, qty int) (*SaleReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	repo := NewRepository(snap)
	book := repo.BookByCode(bookCode)
	if book == nil {
		return nil, &NotFoundError{Kind: "book", Key: bookCode}
	}
	seller := repo.SellerByCode(sellerCode)
	if seller == nil {
		return nil, &NotFoundError{Kind: "seller", Key: sellerCode}
	}
	if qty <= 0 {
		return nil, &ValidationError{Field: "qty", Msg: "must be a positive integer"}
	}
	if qty > book.CurrentQty {
		return nil, &InsufficientStockError{BookCode: bookCode, Available: book.CurrentQty, Requested: qty}
	}

	now := e.now()
	alloc := NewAllocator(snap)
	total := book.Price.Mul(decimal.NewFromInt(int64(qty)))

	recordOutgoing(snap, alloc, book, qty, "sold to "+seller.Name, now)
	snap.Sales = append(snap.Sales, Sale{
		ID:         alloc.NextSaleID(),
		BookCode:   bookCode,
		SellerCode: sellerCode,
		Qty:        qty,
		Total:      total,
		At:         now,
	})

	receipt := &SaleReceipt{
		SaleID:     snap.Sales[len(snap.Sales)-1].ID,
		BookTitle:  book.Title,
		SellerName: seller.Name,
		Qty:        qty,
		Total:      total,
	}
	if err := e.save(ctx, snap); err != nil {
		return nil, err
	}
	e.log.Info().Str("book", bookCode).Str("seller", sellerCode).Int("qty", qty).
		Str("total", total.String()).Msg("sale recorded")
	return receipt, nil
}

// =============================================================================
// MULTI-ITEM SALE - Validate all, then apply all
// =============================================================================

// SellBatch applies a multi-item sale to one seller, all-or-nothing.
func (e *Engine) SellBatch(ctx context.Context, sellerCode string, items []BatchItem) (*BatchReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	repo := NewRepository(snap)
	seller := repo.SellerByCode(sellerCode)
	if seller == nil {
		return nil, &NotFoundError{Kind: "seller", Key: sellerCode}
	}
	if len(items) == 0 {
		return nil, &ValidationError{Field: "items", Msg: "must contain at least one item"}
	}

	// Phase 1: validate every item before touching anything. pending tracks
	// quantities claimed by earlier items so a repeated code cannot
	// oversell within one batch.
	pending := make(map[string]int, len(items))
	for i, item := range items {
		index := i + 1
		book := repo.BookByCode(item.BookCode)
		if book == nil {
			return nil, &NotFoundError{Kind: "book", Key: item.BookCode, Index: index}
		}
		if item.Qty <= 0 {
			return nil, &ValidationError{Field: "qty", Index: index, Msg: "must be a positive integer"}
		}
		available := book.CurrentQty - pending[item.BookCode]
		if item.Qty > available {
			return nil, &InsufficientStockError{
				BookCode:  item.BookCode,
				Index:     index,
				Available: available,
				Requested: item.Qty,
			}
		}
		pending[item.BookCode] += item.Qty
	}

	// Phase 2: apply in input order. Identifiers come from one allocator,
	// sequential across the whole batch.
	now := e.now()
	alloc := NewAllocator(snap)
	totalAmount := decimal.Zero
	totalQty := 0
	note := "quick sale to " + seller.Name

	for _, item := range items {
		book := repo.BookByCode(item.BookCode)
		lineTotal := book.Price.Mul(decimal.NewFromInt(int64(item.Qty)))

		recordOutgoing(snap, alloc, book, item.Qty, note, now)
		snap.Sales = append(snap.Sales, Sale{
			ID:         alloc.NextSaleID(),
			BookCode:   item.BookCode,
			SellerCode: sellerCode,
			Qty:        item.Qty,
			Total:      lineTotal,
			At:         now,
		})

		totalAmount = totalAmount.Add(lineTotal)
		totalQty += item.Qty
	}

	receipt := &BatchReceipt{
		TotalAmount: totalAmount,
		TotalQty:    totalQty,
		ItemCount:   len(items),
	}
	if err := e.save(ctx, snap); err != nil {
		return nil, err
	}
	e.log.Info().Str("seller", sellerCode).Int("items", len(items)).Int("qty", totalQty).
		Str("total", totalAmount.String()).Msg("batch sale recorded")
	return receipt, nil
}
