// internal/domain/inventory/mocks/store.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// Store is a testify mock of inventory.Store
type Store struct {
	mock.Mock
}

var _ inventory.Store = (*Store)(nil)

func (m *Store) ListStock(ctx context.Context, category inventory.Category) ([]inventory.StockItem, error) {
	args := m.Called(ctx, category)
	items, _ := args.Get(0).([]inventory.StockItem)
	return items, args.Error(1)
}

func (m *Store) DecrementStock(ctx context.Context, id string, amount int) (*inventory.StockItem, error) {
	args := m.Called(ctx, id, amount)
	item, _ := args.Get(0).(*inventory.StockItem)
	return item, args.Error(1)
}

func (m *Store) CreateStock(ctx context.Context, req inventory.StockIncrease) (*inventory.StockItem, error) {
	args := m.Called(ctx, req)
	item, _ := args.Get(0).(*inventory.StockItem)
	return item, args.Error(1)
}

func (m *Store) CreateStockBatch(ctx context.Context, reqs []inventory.StockIncrease) ([]inventory.StockItem, error) {
	args := m.Called(ctx, reqs)
	items, _ := args.Get(0).([]inventory.StockItem)
	return items, args.Error(1)
}

func (m *Store) ListDatasets(ctx context.Context, category inventory.Category) ([]inventory.CatalogDataset, error) {
	args := m.Called(ctx, category)
	sets, _ := args.Get(0).([]inventory.CatalogDataset)
	return sets, args.Error(1)
}

func (m *Store) AddCatalogEntry(ctx context.Context, datasetID string, entry inventory.CatalogEntry) ([]inventory.CatalogEntry, error) {
	args := m.Called(ctx, datasetID, entry)
	entries, _ := args.Get(0).([]inventory.CatalogEntry)
	return entries, args.Error(1)
}

func (m *Store) RemoveCatalogEntry(ctx context.Context, datasetID, key string) ([]inventory.CatalogEntry, error) {
	args := m.Called(ctx, datasetID, key)
	entries, _ := args.Get(0).([]inventory.CatalogEntry)
	return entries, args.Error(1)
}

func (m *Store) CreateDamageRecord(ctx context.Context, rec inventory.DamageRecord) (*inventory.DamageRecord, error) {
	args := m.Called(ctx, rec)
	out, _ := args.Get(0).(*inventory.DamageRecord)
	return out, args.Error(1)
}

func (m *Store) CreateGoodsReceipt(ctx context.Context, rec inventory.AssetReceipt) (*inventory.AssetReceipt, error) {
	args := m.Called(ctx, rec)
	out, _ := args.Get(0).(*inventory.AssetReceipt)
	return out, args.Error(1)
}

func (m *Store) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
