/*
Package export produces delimited-text reports over the ledger collections.

PURPOSE:
  Read-only reporting: tab-separated (TSV) dumps of the book inventory and
  the sales history, suitable for spreadsheets. The export layer consumes
  the engine's read surface only; it never mutates anything.

SOFT REFERENCES:
  Sales reference books and sellers by code. A referenced book or seller
  may have been deleted since the sale; the report then shows the code
  with an empty title/name rather than failing.
*/
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/warp/bookledger/ledger"
)

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }
func itoa(v int) string        { return strconv.Itoa(v) }

// BooksTSV writes one row per book: identifier, code, title, author,
// publisher, shelf, price, initial and current quantity.
func BooksTSV(w io.Writer, books []ledger.Book) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	if err := tw.Write([]string{
		"id", "code", "title", "author", "publisher", "shelf",
		"price", "initial_qty", "current_qty",
	}); err != nil {
		return err
	}
	for _, b := range books {
		if err := tw.Write([]string{
			formatInt(b.ID), b.Code, b.Title, b.Author, b.Publisher, b.Shelf,
			b.Price.String(), itoa(b.InitialQty), itoa(b.CurrentQty),
		}); err != nil {
			return err
		}
	}
	tw.Flush()
	return tw.Error()
}

// SalesTSV writes one row per sale: identifier, date, book code and title,
// seller code and name, quantity, total. Titles and names resolve through
// the given collections; missing references stay blank.
func SalesTSV(w io.Writer, sales []ledger.Sale, books []ledger.Book, sellers []ledger.Seller) error {
	titles := make(map[string]string, len(books))
	for _, b := range books {
		titles[b.Code] = b.Title
	}
	names := make(map[string]string, len(sellers))
	for _, s := range sellers {
		names[s.Code] = s.Name
	}

	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	if err := tw.Write([]string{
		"id", "date", "book_code", "book_title",
		"seller_code", "seller_name", "qty", "total",
	}); err != nil {
		return err
	}
	for _, s := range sales {
		if err := tw.Write([]string{
			formatInt(s.ID), s.At.Format("2006-01-02"),
			s.BookCode, titles[s.BookCode],
			s.SellerCode, names[s.SellerCode],
			itoa(s.Qty), s.Total.String(),
		}); err != nil {
			return err
		}
	}
	tw.Flush()
	return tw.Error()
}
