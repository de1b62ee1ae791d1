// internal/infrastructure/database/postgres/store.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// Store implements inventory.Store on Postgres
type Store struct {
	db *gorm.DB
}

var _ inventory.Store = (*Store)(nil)

// NewStore creates a new Postgres store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// STOCK

// ListStock returns stock records, optionally filtered by category
func (s *Store) ListStock(ctx context.Context, category inventory.Category) ([]inventory.StockItem, error) {
	query := s.db.WithContext(ctx).Model(&stockRecord{})
	if category != "" {
		query = query.Where("category = ?", string(category))
	}

	var records []stockRecord
	if err := query.Order("label ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}

	items := make([]inventory.StockItem, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

// DecrementStock lowers qty in one conditional UPDATE. Concurrent
// decrements of the same record cannot push it below zero.
func (s *Store) DecrementStock(ctx context.Context, id string, amount int) (*inventory.StockItem, error) {
	if amount <= 0 {
		return nil, inventory.ErrInvalidQuantity
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, inventory.ErrStockUnavailable
	}

	var record stockRecord
	result := s.db.WithContext(ctx).
		Model(&record).
		Clauses(clause.Returning{}).
		Where("id = ? AND qty >= ?", id, amount).
		UpdateColumns(map[string]interface{}{
			"qty":        gorm.Expr("qty - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, inventory.ErrStockUnavailable
	}

	item := record.toDomain()
	return &item, nil
}

// CreateStock inserts one new stock record
func (s *Store) CreateStock(ctx context.Context, req inventory.StockIncrease) (*inventory.StockItem, error) {
	record := newStockRecord(uuid.New().String(), req)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create stock: %w", err)
	}
	item := record.toDomain()
	return &item, nil
}

// CreateStockBatch inserts every record in a single statement
func (s *Store) CreateStockBatch(ctx context.Context, reqs []inventory.StockIncrease) ([]inventory.StockItem, error) {
	if len(reqs) == 0 {
		return []inventory.StockItem{}, nil
	}

	records := make([]stockRecord, 0, len(reqs))
	for _, req := range reqs {
		records = append(records, newStockRecord(uuid.New().String(), req))
	}
	if err := s.db.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to create stock batch: %w", err)
	}

	items := make([]inventory.StockItem, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

// CATALOG

// ListDatasets returns the category's datasets with their entries
func (s *Store) ListDatasets(ctx context.Context, category inventory.Category) ([]inventory.CatalogDataset, error) {
	var records []catalogDatasetRecord
	err := s.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("category = ?", string(category)).
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog datasets: %w", err)
	}

	datasets := make([]inventory.CatalogDataset, 0, len(records))
	for _, r := range records {
		datasets = append(datasets, inventory.CatalogDataset{
			ID:       r.ID,
			Category: inventory.Category(r.Category),
			Name:     r.Name,
			Entries:  entriesToDomain(r.Entries),
		})
	}
	return datasets, nil
}

// AddCatalogEntry inserts one entry. The (dataset_id, key) unique index
// rejects duplicates even under concurrent edits.
func (s *Store) AddCatalogEntry(ctx context.Context, datasetID string, entry inventory.CatalogEntry) ([]inventory.CatalogEntry, error) {
	if _, err := uuid.Parse(datasetID); err != nil {
		return nil, inventory.ErrNotFound
	}

	record := catalogEntryRecord{
		ID:        uuid.New().String(),
		DatasetID: datasetID,
		Key:       entry.Key,
		Label:     entry.Label,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, inventory.ErrDuplicateKey
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, inventory.ErrNotFound
		}
		return nil, fmt.Errorf("failed to add catalog entry: %w", err)
	}
	return s.datasetEntries(ctx, datasetID)
}

// RemoveCatalogEntry deletes one entry by key
func (s *Store) RemoveCatalogEntry(ctx context.Context, datasetID, key string) ([]inventory.CatalogEntry, error) {
	if _, err := uuid.Parse(datasetID); err != nil {
		return nil, inventory.ErrNotFound
	}

	result := s.db.WithContext(ctx).
		Where("dataset_id = ? AND key = ?", datasetID, key).
		Delete(&catalogEntryRecord{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove catalog entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, inventory.ErrNotFound
	}
	return s.datasetEntries(ctx, datasetID)
}

func (s *Store) datasetEntries(ctx context.Context, datasetID string) ([]inventory.CatalogEntry, error) {
	var records []catalogEntryRecord
	err := s.db.WithContext(ctx).
		Where("dataset_id = ?", datasetID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog entries: %w", err)
	}
	return entriesToDomain(records), nil
}

// LEDGER

// CreateDamageRecord inserts one immutable damage record
func (s *Store) CreateDamageRecord(ctx context.Context, rec inventory.DamageRecord) (*inventory.DamageRecord, error) {
	record := damageRecord{
		ID:           uuid.New().String(),
		TechnicianID: rec.TechnicianID,
		Date:         rec.Date,
		JobNumber:    rec.JobNumber,
		DamageTotal:  rec.DamageTotal,
		Remark:       rec.Remark,
		DamagedItems: datatypes.JSONSlice[inventory.DamagedItem](rec.DamagedItems),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create damage record: %w", err)
	}
	return record.toDomain(), nil
}

// CreateGoodsReceipt stores the asset header with its parts and adds the
// asset itself to stock, in one transaction
func (s *Store) CreateGoodsReceipt(ctx context.Context, rec inventory.AssetReceipt) (*inventory.AssetReceipt, error) {
	stock := newStockRecord(uuid.New().String(), inventory.StockIncrease{
		Category:   inventory.CategoryAsset,
		Key:        rec.Key,
		Label:      rec.Label,
		Qty:        1,
		UnitPrice:  rec.UnitPrice,
		Attributes: rec.Attributes,
	})
	receipt := goodsReceiptRecord{
		ID:          uuid.New().String(),
		StockID:     stock.ID,
		ReceiptDate: rec.ReceiptDate,
		Key:         rec.Key,
		Label:       rec.Label,
		UnitPrice:   rec.UnitPrice,
		Attributes:  datatypes.NewJSONType(rec.Attributes),
		Parts:       datatypes.JSONSlice[inventory.AssetPartLine](rec.Parts),
		PartsTotal:  rec.PartsTotal,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&stock).Error; err != nil {
			return err
		}
		return tx.Create(&receipt).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create goods receipt: %w", err)
	}
	return receipt.toDomain(), nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
