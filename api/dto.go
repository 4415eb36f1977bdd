/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Domain validation lives in the ledger engine, not here. DTOs are pure
  data carriers; handlers only reject bodies that fail to decode.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/bookledger/ledger"
)

// =============================================================================
// BOOKS
// =============================================================================

// BookDTO represents a book in API responses.
type BookDTO struct {
	ID         int64           `json:"id"`
	Code       string          `json:"code"`
	Title      string          `json:"title"`
	Author     string          `json:"author"`
	Publisher  string          `json:"publisher"`
	Shelf      string          `json:"shelf"`
	Price      decimal.Decimal `json:"price"`
	InitialQty int             `json:"initial_qty"`
	CurrentQty int             `json:"current_qty"`
	CreatedAt  string          `json:"created_at,omitempty"`
}

func bookDTO(b ledger.Book) BookDTO {
	return BookDTO{
		ID:         b.ID,
		Code:       b.Code,
		Title:      b.Title,
		Author:     b.Author,
		Publisher:  b.Publisher,
		Shelf:      b.Shelf,
		Price:      b.Price,
		InitialQty: b.InitialQty,
		CurrentQty: b.CurrentQty,
		CreatedAt:  formatTime(b.CreatedAt),
	}
}

// BookRequest is the request body for creating or updating a book.
type BookRequest struct {
	Code       string          `json:"code"`
	Title      string          `json:"title"`
	Author     string          `json:"author"`
	Publisher  string          `json:"publisher"`
	Shelf      string          `json:"shelf"`
	Price      decimal.Decimal `json:"price"`
	InitialQty int             `json:"initial_qty"`
}

func (r BookRequest) input() ledger.BookInput {
	return ledger.BookInput{
		Code:       r.Code,
		Title:      r.Title,
		Author:     r.Author,
		Publisher:  r.Publisher,
		Shelf:      r.Shelf,
		Price:      r.Price,
		InitialQty: r.InitialQty,
	}
}

// DeleteBooksRequest is the request to bulk-delete books by identifier.
type DeleteBooksRequest struct {
	IDs []int64 `json:"ids"`
}

// DeleteBooksDTO reports how many books were removed.
type DeleteBooksDTO struct {
	DeletedCount int `json:"deleted_count"`
}

// ImportRowRequest is one row of a bulk import request.
type ImportRowRequest struct {
	Code       string          `json:"code"`
	Title      string          `json:"title"`
	Author     string          `json:"author"`
	Publisher  string          `json:"publisher"`
	Shelf      string          `json:"shelf"`
	Price      decimal.Decimal `json:"price"`
	InitialQty int             `json:"initial_qty"`
}

// ImportReportDTO is the partial-success import result.
type ImportReportDTO struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// =============================================================================
// SELLERS
// =============================================================================

// SellerDTO represents a seller in API responses.
type SellerDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	CreatedAt string `json:"created_at,omitempty"`
}

func sellerDTO(s ledger.Seller) SellerDTO {
	return SellerDTO{ID: s.ID, Name: s.Name, Code: s.Code, CreatedAt: formatTime(s.CreatedAt)}
}

// CreateSellerRequest is the request to create a seller.
type CreateSellerRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// =============================================================================
// STOCK AND SALES
// =============================================================================

// IncomingStockRequest records a restock.
type IncomingStockRequest struct {
	Code string `json:"code"`
	Qty  int    `json:"qty"`
	Note string `json:"note"`
}

// MovementDTO represents one stock movement.
type MovementDTO struct {
	ID        int64  `json:"id"`
	Direction string `json:"direction"`
	BookCode  string `json:"book_code"`
	Qty       int    `json:"qty"`
	Note      string `json:"note"`
	At        string `json:"at"`
}

func movementDTO(m ledger.Movement) MovementDTO {
	return MovementDTO{
		ID:        m.ID,
		Direction: string(m.Direction),
		BookCode:  m.BookCode,
		Qty:       m.Qty,
		Note:      m.Note,
		At:        formatTime(m.At),
	}
}

// SellRequest is a single-item sale.
type SellRequest struct {
	BookCode   string `json:"book_code"`
	SellerCode string `json:"seller_code"`
	Qty        int    `json:"qty"`
}

// SaleReceiptDTO is the result of a single-item sale.
type SaleReceiptDTO struct {
	SaleID     int64           `json:"sale_id"`
	BookTitle  string          `json:"book_title"`
	SellerName string          `json:"seller_name"`
	Qty        int             `json:"qty"`
	Total      decimal.Decimal `json:"total"`
}

// BatchSellRequest is a multi-item sale to one seller.
type BatchSellRequest struct {
	SellerCode string             `json:"seller_code"`
	Items      []BatchItemRequest `json:"items"`
}

// BatchItemRequest is one line of a multi-item sale.
type BatchItemRequest struct {
	BookCode string `json:"book_code"`
	Qty      int    `json:"qty"`
}

// BatchReceiptDTO aggregates an applied multi-item sale.
type BatchReceiptDTO struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalQty    int             `json:"total_qty"`
	ItemCount   int             `json:"item_count"`
}

// SaleDTO represents one historical sale record.
type SaleDTO struct {
	ID         int64           `json:"id"`
	BookCode   string          `json:"book_code"`
	SellerCode string          `json:"seller_code"`
	Qty        int             `json:"qty"`
	Total      decimal.Decimal `json:"total"`
	At         string          `json:"at"`
}

func saleDTO(s ledger.Sale) SaleDTO {
	return SaleDTO{
		ID:         s.ID,
		BookCode:   s.BookCode,
		SellerCode: s.SellerCode,
		Qty:        s.Qty,
		Total:      s.Total,
		At:         formatTime(s.At),
	}
}
