package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bookledger/api"
	"github.com/warp/bookledger/ledger"
	"github.com/warp/bookledger/ledger/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	engine := ledger.New(store.NewMemory(), zerolog.Nop())
	return api.NewRouter(api.NewHandler(engine, zerolog.Nop()))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// =============================================================================
// BOOK ENDPOINTS
// =============================================================================

func TestAPI_CreateAndListBooks(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/books", map[string]any{
		"title": "A", "price": "10", "initial_qty": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[api.BookDTO](t, rec)
	assert.Equal(t, int64(1), created.ID)
	assert.NotEmpty(t, created.Code)
	assert.Equal(t, 5, created.CurrentQty)

	rec = doJSON(t, h, http.MethodGet, "/api/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	books := decode[[]api.BookDTO](t, rec)
	assert.Len(t, books, 1)
}

func TestAPI_CreateBook_ValidationStatus(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/books", map[string]any{
		"title": "", "price": "10",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_UpdateUnknownBook_NotFoundStatus(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPut, "/api/books/99", map[string]any{
		"title": "X", "price": "1",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_DeleteBooks_ReportsCount(t *testing.T) {
	h := newTestServer(t)

	doJSON(t, h, http.MethodPost, "/api/books", map[string]any{"title": "A", "price": "1"})

	rec := doJSON(t, h, http.MethodDelete, "/api/books", map[string]any{"ids": []int64{1, 99}})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[api.DeleteBooksDTO](t, rec)
	assert.Equal(t, 1, result.DeletedCount)
}

// =============================================================================
// SALES ENDPOINTS
// =============================================================================

func TestAPI_BatchSale_AllOrNothing(t *testing.T) {
	h := newTestServer(t)

	doJSON(t, h, http.MethodPost, "/api/books", map[string]any{
		"code": "BK-A", "title": "A", "price": "10", "initial_qty": 5,
	})
	doJSON(t, h, http.MethodPost, "/api/sellers", map[string]any{"name": "Ana", "code": "S-1"})

	// Failing batch: second item exceeds stock.
	rec := doJSON(t, h, http.MethodPost, "/api/sales/batch", map[string]any{
		"seller_code": "S-1",
		"items": []map[string]any{
			{"book_code": "BK-A", "qty": 2},
			{"book_code": "BK-A", "qty": 999},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decode[map[string]string](t, rec)
	assert.Contains(t, errResp["error"], "item 2")

	// The failed batch must not have touched stock.
	rec = doJSON(t, h, http.MethodGet, "/api/books", nil)
	books := decode[[]api.BookDTO](t, rec)
	require.Len(t, books, 1)
	assert.Equal(t, 5, books[0].CurrentQty)

	// Valid batch goes through.
	rec = doJSON(t, h, http.MethodPost, "/api/sales/batch", map[string]any{
		"seller_code": "S-1",
		"items":       []map[string]any{{"book_code": "BK-A", "qty": 2}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	receipt := decode[api.BatchReceiptDTO](t, rec)
	assert.Equal(t, 2, receipt.TotalQty)
	assert.Equal(t, 1, receipt.ItemCount)
}

func TestAPI_Sell_InsufficientStockStatus(t *testing.T) {
	h := newTestServer(t)

	doJSON(t, h, http.MethodPost, "/api/books", map[string]any{
		"code": "BK-A", "title": "A", "price": "10", "initial_qty": 1,
	})
	doJSON(t, h, http.MethodPost, "/api/sellers", map[string]any{"name": "Ana", "code": "S-1"})

	rec := doJSON(t, h, http.MethodPost, "/api/sales", map[string]any{
		"book_code": "BK-A", "seller_code": "S-1", "qty": 2,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// IMPORT AND EXPORT ENDPOINTS
// =============================================================================

func TestAPI_ImportBooks_PartialSuccessReport(t *testing.T) {
	h := newTestServer(t)

	doJSON(t, h, http.MethodPost, "/api/books", map[string]any{
		"code": "IMP-1", "title": "Existing", "price": "1",
	})

	rec := doJSON(t, h, http.MethodPost, "/api/books/import", []map[string]any{
		{"code": "IMP-1", "title": "Duplicate", "price": "1"},
		{"code": "IMP-2", "title": "New", "price": "2", "initial_qty": 3},
		{"code": "IMP-3", "title": "", "price": "2"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	report := decode[api.ImportReportDTO](t, rec)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "row 3")
}

func TestAPI_ExportBooks_TSV(t *testing.T) {
	h := newTestServer(t)

	doJSON(t, h, http.MethodPost, "/api/books", map[string]any{
		"code": "BK-A", "title": "A", "price": "10", "initial_qty": 5,
	})

	rec := doJSON(t, h, http.MethodGet, "/api/export/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "tab-separated-values")

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id\tcode\ttitle"))
	assert.Contains(t, lines[1], "BK-A")
}
