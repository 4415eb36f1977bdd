/*
handlers.go - HTTP API handlers for the book ledger

PURPOSE:
  Exposes the ledger engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates every decision to the engine.

ENDPOINTS:
  Books:
    GET    /api/books              List all books
    POST   /api/books              Create a book
    GET    /api/books/{id}         Get one book
    PUT    /api/books/{id}         Update a book
    DELETE /api/books              Bulk delete by IDs
    POST   /api/books/import       Bulk import rows

  Stock:
    POST   /api/stock/incoming     Record a restock
    GET    /api/movements          Movement history

  Sellers:
    GET    /api/sellers            List sellers
    POST   /api/sellers            Create a seller

  Sales:
    GET    /api/sales              Sales history
    POST   /api/sales              Single-item sale
    POST   /api/sales/batch        Multi-item sale (all-or-nothing)

  Export:
    GET    /api/export/books       TSV inventory report
    GET    /api/export/sales       TSV sales report

ERROR HANDLING:
  Ledger errors carry their own HTTP status mapping (ledger.HTTPStatus):
  - 400: validation, conflict, insufficient stock
  - 404: book/seller/identifier not found
  - 500: persistence failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warp/bookledger/export"
	"github.com/warp/bookledger/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *ledger.Engine
	Log    zerolog.Logger
}

// NewHandler creates a new handler around the given engine.
func NewHandler(engine *ledger.Engine, log zerolog.Logger) *Handler {
	return &Handler{Engine: engine, Log: log}
}

// =============================================================================
// BOOK HANDLERS
// =============================================================================

// ListBooks returns all books.
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Engine.ListBooks(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	dtos := make([]BookDTO, len(books))
	for i, b := range books {
		dtos[i] = bookDTO(b)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetBook returns a single book by identifier.
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	book, err := h.Engine.GetBook(r.Context(), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookDTO(*book))
}

// CreateBook creates a new book.
func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	book, err := h.Engine.CreateBook(r.Context(), req.input())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookDTO(*book))
}

// UpdateBook updates an existing book's descriptive fields.
func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	book, err := h.Engine.UpdateBook(r.Context(), id, req.input())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookDTO(*book))
}

// DeleteBooks bulk-deletes books by identifier. Idempotent.
func (h *Handler) DeleteBooks(w http.ResponseWriter, r *http.Request) {
	var req DeleteBooksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	count, err := h.Engine.DeleteBooks(r.Context(), req.IDs)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteBooksDTO{DeletedCount: count})
}

// ImportBooks bulk-imports tabular rows, partial-success semantics.
func (h *Handler) ImportBooks(w http.ResponseWriter, r *http.Request) {
	var req []ImportRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rows := make([]ledger.ImportRow, len(req))
	for i, rr := range req {
		rows[i] = ledger.ImportRow{
			Code:       rr.Code,
			Title:      rr.Title,
			Author:     rr.Author,
			Publisher:  rr.Publisher,
			Shelf:      rr.Shelf,
			Price:      rr.Price,
			InitialQty: rr.InitialQty,
		}
	}
	report, err := h.Engine.ImportBooks(r.Context(), rows)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	errs := report.Errors
	if errs == nil {
		errs = []string{}
	}
	writeJSON(w, http.StatusOK, ImportReportDTO{
		Inserted: report.Inserted,
		Skipped:  report.Skipped,
		Errors:   errs,
	})
}

// =============================================================================
// SELLER HANDLERS
// =============================================================================

// ListSellers returns all sellers.
func (h *Handler) ListSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.Engine.ListSellers(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	dtos := make([]SellerDTO, len(sellers))
	for i, s := range sellers {
		dtos[i] = sellerDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSeller creates a new seller.
func (h *Handler) CreateSeller(w http.ResponseWriter, r *http.Request) {
	var req CreateSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	seller, err := h.Engine.CreateSeller(r.Context(), req.Name, req.Code)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sellerDTO(*seller))
}

// =============================================================================
// STOCK HANDLERS
// =============================================================================

// RecordIncoming records a restock movement.
func (h *Handler) RecordIncoming(w http.ResponseWriter, r *http.Request) {
	var req IncomingStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	book, err := h.Engine.RecordIncoming(r.Context(), req.Code, req.Qty, req.Note)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookDTO(*book))
}

// ListMovements returns the full movement history.
func (h *Handler) ListMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := h.Engine.ListMovements(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	dtos := make([]MovementDTO, len(movements))
	for i, m := range movements {
		dtos[i] = movementDTO(m)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SALES HANDLERS
// =============================================================================

// Sell applies a single-item sale.
func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	receipt, err := h.Engine.Sell(r.Context(), req.BookCode, req.SellerCode, req.Qty)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SaleReceiptDTO{
		SaleID:     receipt.SaleID,
		BookTitle:  receipt.BookTitle,
		SellerName: receipt.SellerName,
		Qty:        receipt.Qty,
		Total:      receipt.Total,
	})
}

// SellBatch applies a multi-item sale, all-or-nothing.
func (h *Handler) SellBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchSellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	items := make([]ledger.BatchItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = ledger.BatchItem{BookCode: it.BookCode, Qty: it.Qty}
	}
	receipt, err := h.Engine.SellBatch(r.Context(), req.SellerCode, items)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, BatchReceiptDTO{
		TotalAmount: receipt.TotalAmount,
		TotalQty:    receipt.TotalQty,
		ItemCount:   receipt.ItemCount,
	})
}

// ListSales returns the full sales history.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Engine.ListSales(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	dtos := make([]SaleDTO, len(sales))
	for i, s := range sales {
		dtos[i] = saleDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// EXPORT HANDLERS
// =============================================================================

// ExportBooks streams the TSV inventory report.
func (h *Handler) ExportBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Engine.ListBooks(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="books.tsv"`)
	if err := export.BooksTSV(w, books); err != nil {
		h.Log.Error().Err(err).Msg("books export failed mid-stream")
	}
}

// ExportSales streams the TSV sales report.
func (h *Handler) ExportSales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sales, err := h.Engine.ListSales(ctx)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	books, err := h.Engine.ListBooks(ctx)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	sellers, err := h.Engine.ListSellers(ctx)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sales.tsv"`)
	if err := export.SalesTSV(w, sales, books, sellers); err != nil {
		h.Log.Error().Err(err).Msg("sales export failed mid-stream")
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeLedgerError maps a ledger error onto its HTTP status equivalent and
// returns the error's own message; ledger errors already carry enough
// context (item/row index, offending code) to act on.
func writeLedgerError(w http.ResponseWriter, err error) {
	writeError(w, ledger.HTTPStatus(err), err.Error())
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
