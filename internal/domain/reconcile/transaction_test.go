package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

func TestTransaction_WithoutRemovesFirstMatchOnly(t *testing.T) {
	a := inventory.CachedItem{StockID: "s-1", Label: "first"}
	b := inventory.CachedItem{StockID: "s-1", Label: "second"}
	txn := Transaction{Items: []inventory.CachedItem{a, b}}

	next, found := txn.Without(inventory.CachedItem{StockID: "s-1"})

	assert.True(t, found)
	assert.Equal(t, []inventory.CachedItem{b}, next.Items)
}

func TestTransaction_WithoutIgnoresIdentifiedLinesForStructuralMatch(t *testing.T) {
	withID := inventory.CachedItem{StockID: "s-1", Label: "Cable"}
	txn := Transaction{Items: []inventory.CachedItem{withID}}

	next, found := txn.Without(inventory.CachedItem{Label: "Cable"})

	assert.False(t, found)
	assert.Equal(t, txn.Items, next.Items)
}

func TestTransaction_Add(t *testing.T) {
	txn := Transaction{ID: "b"}
	next := txn.Add(inventory.CachedItem{StockID: "s-1"})

	assert.Empty(t, txn.Items)
	assert.Len(t, next.Items, 1)
	assert.Equal(t, "b", next.ID)
}
