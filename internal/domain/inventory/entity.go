// internal/domain/inventory/entity.go
package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is the polymorphism axis of stock items
type Category string

const (
	CategorySpare     Category = "spare"
	CategoryAccessory Category = "accessory"
	CategoryProduct   Category = "product"
	CategoryAsset     Category = "asset"

	// CategoryUnknown is only ever produced by stock recreation when the
	// cached item carries no category.
	CategoryUnknown Category = "unknown"
)

// Categories lists the categories accepted by intake, in display order
var Categories = []Category{CategorySpare, CategoryAccessory, CategoryProduct, CategoryAsset}

// Valid reports whether c is one of the four intake categories
func (c Category) Valid() bool {
	switch c {
	case CategorySpare, CategoryAccessory, CategoryProduct, CategoryAsset:
		return true
	}
	return false
}

// Attribute keys shared by the category schemas and stock recreation
const (
	AttrDescription   = "description"
	AttrCompatibility = "compatibility"
	AttrCondition     = "condition"
	AttrBrand         = "brand"
	AttrColor         = "color"
	AttrModel         = "model"
	AttrRegion        = "region"
	AttrSerialNumber  = "serialNumber"
	AttrIMEINumber    = "imeiNumber"
	AttrOtherValue    = "otherValue"
	AttrRAM           = "ram"
	AttrCapacity      = "capacity"
	AttrProcessor     = "processor"
	AttrDisplaySize   = "displaySize"
	AttrWorkingParts  = "workingParts"
	AttrFaultyParts   = "faultyParts"
	AttrFaults        = "faults"
	AttrAssetRemark   = "assetRemark"
)

// StockItem is a unit of inventory as held by the inventory store
type StockItem struct {
	ID         string            `json:"id"`
	Category   Category          `json:"category"`
	Key        string            `json:"key"`
	Label      string            `json:"label"`
	Qty        int               `json:"qty"`
	UnitPrice  decimal.Decimal   `json:"unitPrice"`
	Attributes map[string]string `json:"attributes"`
	CreatedAt  time.Time         `json:"createdAt,omitempty"`
	UpdatedAt  time.Time         `json:"updatedAt,omitempty"`
}

// StockIncrease is a request to create or increase one stock record.
// It is the single output shape of every intake mode as well as the
// shape used to recreate a missing stock record.
type StockIncrease struct {
	Category   Category          `json:"category"`
	Key        string            `json:"key"`
	Label      string            `json:"label"`
	Qty        int               `json:"qty"`
	UnitPrice  decimal.Decimal   `json:"unitPrice"`
	LineTotal  decimal.Decimal   `json:"lineTotal"`
	Attributes map[string]string `json:"attributes"`
}

// GoodsReceiptBatch is the transient result of one intake operation
type GoodsReceiptBatch struct {
	ReceiptDate time.Time       `json:"receiptDate"`
	Items       []StockIncrease `json:"items"`
}

// Total sums the line totals of the batch
func (b *GoodsReceiptBatch) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.LineTotal)
	}
	return total
}

// AssetPartLine is one sub-part received alongside an asset header
type AssetPartLine struct {
	PartKey   string          `json:"partKey"`
	PartLabel string          `json:"partLabel"`
	Qty       int             `json:"qty"`
	CostPrice decimal.Decimal `json:"costPrice"`
}

// LineTotal returns qty x costPrice
func (p AssetPartLine) LineTotal() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.Qty)))
}

// AssetReceipt is the composite goods-receipt record persisted for the
// asset intake mode: one header plus its owned part lines.
type AssetReceipt struct {
	ID          string            `json:"id,omitempty"`
	ReceiptDate time.Time         `json:"receiptDate"`
	Key         string            `json:"key"`
	Label       string            `json:"label"`
	UnitPrice   decimal.Decimal   `json:"unitPrice"`
	Attributes  map[string]string `json:"attributes"`
	Parts       []AssetPartLine   `json:"parts"`
	PartsTotal  decimal.Decimal   `json:"partsTotal"`
}

// CatalogEntry is one (key, label) pick-list entry
type CatalogEntry struct {
	Key   string `json:"key" binding:"required"`
	Label string `json:"label" binding:"required"`
}

// CatalogDataset is a named list of catalog entries for one category
type CatalogDataset struct {
	ID       string         `json:"id"`
	Category Category       `json:"category"`
	Name     string         `json:"name"`
	Entries  []CatalogEntry `json:"entries"`
}

// DamagedItem is an immutable snapshot of a consumed item
type DamagedItem struct {
	StockID    string            `json:"stockId,omitempty"`
	Category   Category          `json:"category"`
	Key        string            `json:"key"`
	Label      string            `json:"label"`
	UnitPrice  decimal.Decimal   `json:"unitPrice"`
	Attributes map[string]string `json:"attributes"`
}

// DamageRecord groups consumed items under a technician and job
type DamageRecord struct {
	ID           string          `json:"id,omitempty"`
	TechnicianID string          `json:"technicianId"`
	Date         time.Time       `json:"date"`
	JobNumber    string          `json:"jobNumber"`
	DamageTotal  decimal.Decimal `json:"damageTotal"`
	Remark       string          `json:"remark"`
	DamagedItems []DamagedItem   `json:"damagedItems"`
	CreatedAt    time.Time       `json:"createdAt,omitempty"`
}
