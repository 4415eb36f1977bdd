package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bookledger/ledger"
)

func importRow(code, title, p string, qty int) ledger.ImportRow {
	return ledger.ImportRow{Code: code, Title: title, Price: price(p), InitialQty: qty}
}

func TestImportBooks_InsertsWithInitialMovement(t *testing.T) {
	// GIVEN: an empty snapshot
	// WHEN: importing two rows, one with positive initial qty
	// THEN: both insert; only the stocked one gets an "initial import" movement

	e, _ := newTestEngine(t)
	ctx := context.Background()

	report, err := e.ImportBooks(ctx, []ledger.ImportRow{
		importRow("IMP-1", "Stocked", "9.99", 4),
		importRow("IMP-2", "Empty", "5", 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 0, report.Skipped)
	assert.Empty(t, report.Errors)

	movements, err := e.ListMovements(ctx)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "IMP-1", movements[0].BookCode)
	assert.Equal(t, ledger.DirectionIn, movements[0].Direction)
	assert.Equal(t, 4, movements[0].Qty)
	assert.Equal(t, "initial import", movements[0].Note)

	books, err := e.ListBooks(ctx)
	require.NoError(t, err)
	for _, b := range books {
		if b.Code == "IMP-1" {
			assert.Equal(t, 4, b.CurrentQty)
		}
	}
	assertQuantityInvariant(t, e)
}

func TestImportBooks_ExistingCode_SkippedNotError(t *testing.T) {
	// GIVEN: a book with code IMP-1 already exists
	// WHEN: importing a row with the same code
	// THEN: skipped count +1, the new row is not inserted, no error recorded

	e, _ := newTestEngine(t)
	ctx := context.Background()

	in := bookInput("Existing", "3", 1)
	in.Code = "IMP-1"
	mustCreateBook(t, e, in)

	report, err := e.ImportBooks(ctx, []ledger.ImportRow{
		importRow("IMP-1", "Duplicate", "99", 10),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.Errors)

	books, err := e.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Existing", books[0].Title, "original book untouched")
}

func TestImportBooks_CollectsRowErrors(t *testing.T) {
	// GIVEN: a batch where row 2 has an empty title
	// WHEN: importing
	// THEN: valid rows insert, the bad row is reported by its 1-based number

	e, _ := newTestEngine(t)
	ctx := context.Background()

	report, err := e.ImportBooks(ctx, []ledger.ImportRow{
		importRow("IMP-1", "Fine", "1", 0),
		importRow("IMP-2", "", "1", 0),
		importRow("IMP-3", "Also Fine", "1", 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "row 2")
}

func TestImportBooks_RowWithoutCode_GetsGeneratedCode(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	report, err := e.ImportBooks(ctx, []ledger.ImportRow{
		importRow("", "Codeless", "2", 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)

	books, err := e.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.NotEmpty(t, books[0].Code)
}
