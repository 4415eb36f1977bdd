package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bookledger/export"
	"github.com/warp/bookledger/ledger"
)

func TestBooksTSV(t *testing.T) {
	books := []ledger.Book{{
		ID: 1, Code: "B-1", Title: "The Go Programming Language", Author: "Donovan",
		Publisher: "AW", Shelf: "A3", Price: decimal.RequireFromString("39.99"),
		InitialQty: 5, CurrentQty: 3,
	}}

	var buf bytes.Buffer
	require.NoError(t, export.BooksTSV(&buf, books))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id\tcode\ttitle\tauthor\tpublisher\tshelf\tprice\tinitial_qty\tcurrent_qty", lines[0])
	assert.Equal(t, "1\tB-1\tThe Go Programming Language\tDonovan\tAW\tA3\t39.99\t5\t3", lines[1])
}

func TestSalesTSV_ResolvesSoftReferences(t *testing.T) {
	at := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	sales := []ledger.Sale{
		{ID: 1, BookCode: "B-1", SellerCode: "S-1", Qty: 2, Total: decimal.RequireFromString("20"), At: at},
		{ID: 2, BookCode: "GONE", SellerCode: "S-1", Qty: 1, Total: decimal.RequireFromString("5"), At: at},
	}
	books := []ledger.Book{{Code: "B-1", Title: "A"}}
	sellers := []ledger.Seller{{Code: "S-1", Name: "Ana"}}

	var buf bytes.Buffer
	require.NoError(t, export.SalesTSV(&buf, sales, books, sellers))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1\t2026-03-14\tB-1\tA\tS-1\tAna\t2\t20", lines[1])
	// A deleted book leaves the code with an empty title, not an error.
	assert.Equal(t, "2\t2026-03-14\tGONE\t\tS-1\tAna\t1\t5", lines[2])
}
