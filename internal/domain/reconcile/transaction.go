// internal/domain/reconcile/transaction.go
package reconcile

import "github.com/your-org/repairshop-backend/internal/domain/inventory"

// Kind distinguishes the transactions items are consumed from
type Kind string

const (
	KindBill   Kind = "bill"
	KindDamage Kind = "damage"
)

// Transaction is an in-progress bill or damage list. It is passed into and
// returned from every engine call; the engine keeps no state of its own.
type Transaction struct {
	ID    string                 `json:"id"`
	Kind  Kind                   `json:"kind"`
	Items []inventory.CachedItem `json:"items"`
}

// Add returns a copy of t with item appended
func (t Transaction) Add(item inventory.CachedItem) Transaction {
	items := make([]inventory.CachedItem, 0, len(t.Items)+1)
	items = append(items, t.Items...)
	t.Items = append(items, item)
	return t
}

// Without returns a copy of t without the first line matching item. Lines
// with a stock id match on it; lines without one match structurally. The
// second result is false when no line matched.
func (t Transaction) Without(item inventory.CachedItem) (Transaction, bool) {
	index := -1
	for i := range t.Items {
		line := &t.Items[i]
		if item.StockID != "" {
			if line.StockID == item.StockID {
				index = i
				break
			}
			continue
		}
		if line.StockID == "" && line.SameLine(&item) {
			index = i
			break
		}
	}

	items := make([]inventory.CachedItem, 0, len(t.Items))
	items = append(items, t.Items...)
	if index >= 0 {
		items = append(items[:index], items[index+1:]...)
	}
	t.Items = items
	return t, index >= 0
}
