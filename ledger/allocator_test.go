package ledger_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/bookledger/ledger"
)

func TestAllocator_EmptySnapshot_StartsAtOne(t *testing.T) {
	alloc := ledger.NewAllocator(ledger.NewSnapshot())

	assert.Equal(t, int64(1), alloc.NextBookID())
	assert.Equal(t, int64(2), alloc.NextBookID())
	assert.Equal(t, int64(1), alloc.NextSellerID())
	assert.Equal(t, int64(1), alloc.NextMovementID())
	assert.Equal(t, int64(1), alloc.NextSaleID())
}

func TestAllocator_SeedsFromCurrentMax(t *testing.T) {
	// IDs continue from max+1 even when earlier IDs were deleted.
	snap := &ledger.Snapshot{
		Books:     []ledger.Book{{ID: 7}, {ID: 3}},
		Movements: []ledger.Movement{{ID: 12}},
	}

	alloc := ledger.NewAllocator(snap)

	assert.Equal(t, int64(8), alloc.NextBookID())
	assert.Equal(t, int64(13), alloc.NextMovementID())
}

func TestNewBookCode_Format(t *testing.T) {
	code := ledger.NewBookCode(func(string) bool { return false })

	assert.True(t, strings.HasPrefix(code, "B"))
	assert.Len(t, code, 12, `"B" + 8 time digits + 3 random digits`)
}

func TestNewBookCode_RegeneratesOnCollision(t *testing.T) {
	// Reject the first few candidates; the generator must keep trying.
	rejected := 0
	code := ledger.NewBookCode(func(string) bool {
		if rejected < 3 {
			rejected++
			return true
		}
		return false
	})

	assert.NotEmpty(t, code)
	assert.Equal(t, 3, rejected)
}
