package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bookledger/ledger"
	"github.com/warp/bookledger/store/jsonfile"
)

func testSnapshot() *ledger.Snapshot {
	at := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	return &ledger.Snapshot{
		Books: []ledger.Book{{
			ID: 1, Code: "B-1", Title: "A", Price: decimal.RequireFromString("19.99"),
			InitialQty: 5, CurrentQty: 3, CreatedAt: at,
		}},
		Sellers: []ledger.Seller{{ID: 1, Name: "Ana", Code: "S-1", CreatedAt: at}},
		Movements: []ledger.Movement{{
			ID: 1, Direction: ledger.DirectionOut, BookCode: "B-1", Qty: 2, Note: "sold to Ana", At: at,
		}},
		Sales: []ledger.Sale{{
			ID: 1, BookCode: "B-1", SellerCode: "S-1", Qty: 2,
			Total: decimal.RequireFromString("39.98"), At: at,
		}},
	}
}

func TestJSONFile_MissingFile_EmptySnapshot(t *testing.T) {
	store, err := jsonfile.New(filepath.Join(t.TempDir(), "data", "ledger.json"))
	require.NoError(t, err)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Books)
	assert.Empty(t, snap.Sellers)
	assert.Empty(t, snap.Movements)
	assert.Empty(t, snap.Sales)
}

func TestJSONFile_SaveLoad_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	store, err := jsonfile.New(path)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.Books, 1)
	assert.Equal(t, "B-1", loaded.Books[0].Code)
	assert.True(t, loaded.Books[0].Price.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, 3, loaded.Books[0].CurrentQty)

	require.Len(t, loaded.Sales, 1)
	assert.True(t, loaded.Sales[0].Total.Equal(decimal.RequireFromString("39.98")))

	require.Len(t, loaded.Movements, 1)
	assert.Equal(t, ledger.DirectionOut, loaded.Movements[0].Direction)
}

func TestJSONFile_SaveReplacesWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	store, err := jsonfile.New(path)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot()))
	require.NoError(t, store.Save(ctx, ledger.NewSnapshot()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Books)

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
