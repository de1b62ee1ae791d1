// internal/infrastructure/database/postgres/models.go
package postgres

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// STOCK

type stockRecord struct {
	ID         string                                `gorm:"type:uuid;primaryKey"`
	Category   string                                `gorm:"size:20;not null;index"`
	Key        string                                `gorm:"size:255;not null;index"`
	Label      string                                `gorm:"size:255;not null"`
	Qty        int                                   `gorm:"not null;check:chk_stock_items_qty,qty >= 0"`
	UnitPrice  decimal.Decimal                       `gorm:"type:numeric(12,2);not null"`
	Attributes datatypes.JSONType[map[string]string] `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (stockRecord) TableName() string { return "stock_items" }

func (r *stockRecord) toDomain() inventory.StockItem {
	attrs := r.Attributes.Data()
	if attrs == nil {
		attrs = map[string]string{}
	}
	return inventory.StockItem{
		ID:         r.ID,
		Category:   inventory.Category(r.Category),
		Key:        r.Key,
		Label:      r.Label,
		Qty:        r.Qty,
		UnitPrice:  r.UnitPrice,
		Attributes: attrs,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func newStockRecord(id string, req inventory.StockIncrease) stockRecord {
	attrs := req.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	return stockRecord{
		ID:         id,
		Category:   string(req.Category),
		Key:        req.Key,
		Label:      req.Label,
		Qty:        req.Qty,
		UnitPrice:  req.UnitPrice,
		Attributes: datatypes.NewJSONType(attrs),
	}
}

// CATALOG

type catalogDatasetRecord struct {
	ID        string               `gorm:"type:uuid;primaryKey"`
	Category  string               `gorm:"size:20;not null;index"`
	Name      string               `gorm:"size:100;not null"`
	Entries   []catalogEntryRecord `gorm:"foreignKey:DatasetID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (catalogDatasetRecord) TableName() string { return "catalog_datasets" }

type catalogEntryRecord struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	DatasetID string `gorm:"type:uuid;not null;uniqueIndex:idx_catalog_entries_dataset_key"`
	Key       string `gorm:"size:255;not null;uniqueIndex:idx_catalog_entries_dataset_key"`
	Label     string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

func (catalogEntryRecord) TableName() string { return "catalog_entries" }

func entriesToDomain(records []catalogEntryRecord) []inventory.CatalogEntry {
	entries := make([]inventory.CatalogEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, inventory.CatalogEntry{Key: r.Key, Label: r.Label})
	}
	return entries
}

// LEDGER

type damageRecord struct {
	ID           string                                     `gorm:"type:uuid;primaryKey"`
	TechnicianID string                                     `gorm:"size:100;not null;index"`
	Date         time.Time                                  `gorm:"not null;index"`
	JobNumber    string                                     `gorm:"size:100;not null"`
	DamageTotal  decimal.Decimal                            `gorm:"type:numeric(12,2);not null"`
	Remark       string                                     `gorm:"type:text"`
	DamagedItems datatypes.JSONSlice[inventory.DamagedItem] `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time
}

func (damageRecord) TableName() string { return "damage_records" }

func (r *damageRecord) toDomain() *inventory.DamageRecord {
	return &inventory.DamageRecord{
		ID:           r.ID,
		TechnicianID: r.TechnicianID,
		Date:         r.Date,
		JobNumber:    r.JobNumber,
		DamageTotal:  r.DamageTotal,
		Remark:       r.Remark,
		DamagedItems: []inventory.DamagedItem(r.DamagedItems),
		CreatedAt:    r.CreatedAt,
	}
}

type goodsReceiptRecord struct {
	ID          string                                       `gorm:"type:uuid;primaryKey"`
	StockID     string                                       `gorm:"type:uuid;index"`
	ReceiptDate time.Time                                    `gorm:"not null;index"`
	Key         string                                       `gorm:"size:255;not null"`
	Label       string                                       `gorm:"size:255;not null"`
	UnitPrice   decimal.Decimal                              `gorm:"type:numeric(12,2);not null"`
	Attributes  datatypes.JSONType[map[string]string]        `gorm:"type:jsonb;not null"`
	Parts       datatypes.JSONSlice[inventory.AssetPartLine] `gorm:"type:jsonb;not null"`
	PartsTotal  decimal.Decimal                              `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time
}

func (goodsReceiptRecord) TableName() string { return "goods_receipts" }

func (r *goodsReceiptRecord) toDomain() *inventory.AssetReceipt {
	return &inventory.AssetReceipt{
		ID:          r.ID,
		ReceiptDate: r.ReceiptDate,
		Key:         r.Key,
		Label:       r.Label,
		UnitPrice:   r.UnitPrice,
		Attributes:  r.Attributes.Data(),
		Parts:       []inventory.AssetPartLine(r.Parts),
		PartsTotal:  r.PartsTotal,
	}
}
