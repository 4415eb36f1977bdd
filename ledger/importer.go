/*
importer.go - Bulk book import with per-row reconciliation

PURPOSE:
  Imports books from tabular rows as a partial-success operation: rows
  whose code already exists are skipped (counted, not an error), invalid
  rows are collected as per-row error messages keyed by their 1-based
  row number, and valid new rows are inserted. Unlike every other intent,
  the import deliberately applies row by row instead of all-or-nothing;
  the report tells the caller exactly what happened.

INITIAL STOCK:
  Inserted rows with a positive initial quantity also get a synthetic
  "in" movement noted "initial import", so the quantity invariant can be
  traced through the movement history for imported books too.
*/
package ledger

import (
	"context"
	"fmt"
)

// ImportBooks reconciles tabular rows against the current books collection.
// Returns counts of inserted and skipped rows plus row-level errors; never
// aborts the whole import for one bad row.
func (e *Engine) ImportBooks(ctx context.Context, rows []ImportRow) (*ImportReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	now := e.now()

	for i, row := range rows {
		rowNum := i + 1

		// Existing code: a no-op, not an error.
		if row.Code != "" && NewRepository(snap).BookByCode(row.Code) != nil {
			report.Skipped++
			continue
		}

		in := BookInput{
			Code:       row.Code,
			Title:      row.Title,
			Author:     row.Author,
			Publisher:  row.Publisher,
			Shelf:      row.Shelf,
			Price:      row.Price,
			InitialQty: row.InitialQty,
		}
		if err := validateBookFields(in); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		repo := NewRepository(snap)
		alloc := NewAllocator(snap)
		code := row.Code
		if code == "" {
			code = NewBookCode(func(c string) bool { return repo.BookByCode(c) != nil })
		}

		// The opening stock arrives through the synthetic movement, so
		// InitialQty stays 0 and the quantity invariant holds for imported
		// books exactly as for any restock.
		snap.Books = append(snap.Books, Book{
			ID:         alloc.NextBookID(),
			Code:       code,
			Title:      row.Title,
			Author:     row.Author,
			Publisher:  row.Publisher,
			Shelf:      row.Shelf,
			Price:      row.Price,
			InitialQty: 0,
			CurrentQty: row.InitialQty,
			CreatedAt:  now,
		})
		if row.InitialQty > 0 {
			appendMovement(snap, alloc, DirectionIn, code, row.InitialQty, "initial import", now)
		}
		report.Inserted++
	}

	if report.Inserted > 0 {
		if err := e.save(ctx, snap); err != nil {
			return nil, err
		}
	}
	e.log.Info().Int("inserted", report.Inserted).Int("skipped", report.Skipped).
		Int("errors", len(report.Errors)).Msg("book import finished")
	return report, nil
}
