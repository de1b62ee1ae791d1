// internal/domain/inventory/store.go
package inventory

import "context"

// StockStore is the inventory store holding live stock records.
// DecrementStock must be a single conditional write: it either lowers qty
// by amount without going below zero, or fails with ErrStockUnavailable.
type StockStore interface {
	ListStock(ctx context.Context, category Category) ([]StockItem, error)
	DecrementStock(ctx context.Context, id string, amount int) (*StockItem, error)
	CreateStock(ctx context.Context, req StockIncrease) (*StockItem, error)
	CreateStockBatch(ctx context.Context, reqs []StockIncrease) ([]StockItem, error)
}

// CatalogStore holds the per-category catalog datasets. Add fails with
// ErrDuplicateKey when the key exists; Remove fails with ErrNotFound when it
// does not. Both return the dataset's entries after the write.
type CatalogStore interface {
	ListDatasets(ctx context.Context, category Category) ([]CatalogDataset, error)
	AddCatalogEntry(ctx context.Context, datasetID string, entry CatalogEntry) ([]CatalogEntry, error)
	RemoveCatalogEntry(ctx context.Context, datasetID, key string) ([]CatalogEntry, error)
}

// LedgerStore persists the immutable damage and goods-receipt records
type LedgerStore interface {
	CreateDamageRecord(ctx context.Context, rec DamageRecord) (*DamageRecord, error)
	CreateGoodsReceipt(ctx context.Context, rec AssetReceipt) (*AssetReceipt, error)
}

// Store is implemented by every persistence backend
type Store interface {
	StockStore
	CatalogStore
	LedgerStore
	Ping(ctx context.Context) error
}
