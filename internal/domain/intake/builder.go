// internal/domain/intake/builder.go
package intake

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
	"github.com/your-org/repairshop-backend/internal/domain/schema"
)

// ManualEntry is one manually entered item
type ManualEntry struct {
	Category    inventory.Category `json:"category" binding:"required"`
	Key         string             `json:"key"`
	Label       string             `json:"label"`
	Attributes  map[string]string  `json:"attributes"`
	Qty         int                `json:"qty"`
	UnitPrice   decimal.Decimal    `json:"unitPrice"`
	ReceiptDate *time.Time         `json:"receiptDate"`
}

// BulkEntry receives N serialized units of one catalog item at one price
type BulkEntry struct {
	Category    inventory.Category `json:"category" binding:"required"`
	Key         string             `json:"key" binding:"required"`
	Label       string             `json:"label" binding:"required"`
	UnitPrice   decimal.Decimal    `json:"unitPrice"`
	Serials     []string           `json:"serials"`
	ReceiptDate *time.Time         `json:"receiptDate"`
}

// PartSelection is one row of the multi-select part picker
type PartSelection struct {
	PartKey   string `json:"partKey"`
	PartLabel string `json:"partLabel"`
	Checked   bool   `json:"checked"`
	Qty       int    `json:"qty"`
	CostPrice string `json:"costPrice"`
}

// AssetEntry is a composite asset header plus its parts, given either as
// explicit lines or as picker selections
type AssetEntry struct {
	Key         string                    `json:"key"`
	Label       string                    `json:"label"`
	UnitPrice   decimal.Decimal           `json:"unitPrice"`
	Attributes  map[string]string         `json:"attributes"`
	Parts       []inventory.AssetPartLine `json:"parts"`
	Selections  []PartSelection           `json:"selections"`
	ReceiptDate *time.Time                `json:"receiptDate"`
}

// MANUAL MODE

// BuildManual validates one manual entry and emits a single-item batch
func BuildManual(e ManualEntry, now time.Time) (*inventory.GoodsReceiptBatch, error) {
	if e.Category == inventory.CategoryAsset {
		return nil, inventory.ErrEmptyParts
	}

	attrs, err := schema.Normalize(e.Category, e.Attributes)
	if err != nil {
		return nil, err
	}
	if e.Qty <= 0 || e.UnitPrice.IsNegative() {
		return nil, inventory.ErrInvalidQuantity
	}

	label := strings.TrimSpace(e.Label)
	if label == "" {
		label = defaultLabel(attrs)
	}
	key := strings.TrimSpace(e.Key)
	if key == "" {
		key = label
	}

	return &inventory.GoodsReceiptBatch{
		ReceiptDate: receiptDate(e.ReceiptDate, now),
		Items: []inventory.StockIncrease{{
			Category:   e.Category,
			Key:        key,
			Label:      label,
			Qty:        e.Qty,
			UnitPrice:  e.UnitPrice,
			LineTotal:  e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Qty))),
			Attributes: attrs,
		}},
	}, nil
}

// BULK-SERIALIZED MODE

// BuildBulk emits one qty=1 item per serial in entry order. Duplicate
// serials are kept; blank serials are skipped.
func BuildBulk(e BulkEntry, now time.Time) (*inventory.GoodsReceiptBatch, error) {
	if !e.Category.Valid() || e.Category == inventory.CategoryAsset {
		return nil, inventory.NewValidationError(e.Category, "category")
	}
	if e.UnitPrice.IsNegative() {
		return nil, inventory.ErrInvalidQuantity
	}

	items := make([]inventory.StockIncrease, 0, len(e.Serials))
	for _, serial := range e.Serials {
		serial = strings.TrimSpace(serial)
		if serial == "" {
			continue
		}
		items = append(items, inventory.StockIncrease{
			Category:   e.Category,
			Key:        e.Key,
			Label:      e.Label,
			Qty:        1,
			UnitPrice:  e.UnitPrice,
			LineTotal:  e.UnitPrice,
			Attributes: map[string]string{inventory.AttrDescription: serial},
		})
	}
	if len(items) == 0 {
		return nil, inventory.ErrEmptySerialList
	}

	return &inventory.GoodsReceiptBatch{
		ReceiptDate: receiptDate(e.ReceiptDate, now),
		Items:       items,
	}, nil
}

// ASSET COMPOSITE MODE

// AssetDraft accumulates the part lines of one asset receipt
type AssetDraft struct {
	key        string
	label      string
	unitPrice  decimal.Decimal
	attributes map[string]string
	parts      []inventory.AssetPartLine
}

// NewAssetDraft starts a draft for the given header
func NewAssetDraft(key, label string, unitPrice decimal.Decimal, attributes map[string]string) *AssetDraft {
	return &AssetDraft{
		key:        strings.TrimSpace(key),
		label:      strings.TrimSpace(label),
		unitPrice:  unitPrice,
		attributes: attributes,
	}
}

// AddPart appends one ad-hoc part line
func (d *AssetDraft) AddPart(line inventory.AssetPartLine) error {
	if strings.TrimSpace(line.PartKey) == "" {
		return inventory.NewValidationError("", "partKey")
	}
	if line.Qty < 1 || line.CostPrice.IsNegative() {
		return inventory.ErrInvalidQuantity
	}
	if line.PartLabel == "" {
		line.PartLabel = line.PartKey
	}
	d.parts = append(d.parts, line)
	return nil
}

// AddSelected appends the complete selections in the order given and
// silently drops unchecked rows, rows without qty and rows without a
// usable cost price. It returns the number of lines appended.
func (d *AssetDraft) AddSelected(selections []PartSelection) int {
	added := 0
	for _, sel := range selections {
		if !sel.Checked || sel.Qty <= 0 || strings.TrimSpace(sel.CostPrice) == "" {
			continue
		}
		cost, err := decimal.NewFromString(strings.TrimSpace(sel.CostPrice))
		if err != nil || cost.IsNegative() {
			continue
		}
		label := sel.PartLabel
		if label == "" {
			label = sel.PartKey
		}
		d.parts = append(d.parts, inventory.AssetPartLine{
			PartKey:   sel.PartKey,
			PartLabel: label,
			Qty:       sel.Qty,
			CostPrice: cost,
		})
		added++
	}
	return added
}

// Parts returns a copy of the accumulated part lines
func (d *AssetDraft) Parts() []inventory.AssetPartLine {
	return append([]inventory.AssetPartLine(nil), d.parts...)
}

// Build validates the header against its parts and emits the composite record
func (d *AssetDraft) Build(date time.Time) (*inventory.AssetReceipt, error) {
	attrs, err := schema.ValidateAsset(d.attributes, d.parts)
	if err != nil {
		return nil, err
	}
	if d.unitPrice.IsNegative() {
		return nil, inventory.ErrInvalidQuantity
	}

	fields := attrs.Fields()
	label := d.label
	if label == "" {
		label = strings.TrimSpace(attrs.Compatibility + " " + attrs.SerialNumber)
	}
	key := d.key
	if key == "" {
		key = attrs.SerialNumber
	}

	parts := d.Parts()
	total := decimal.Zero
	for _, p := range parts {
		total = total.Add(p.LineTotal())
	}

	return &inventory.AssetReceipt{
		ReceiptDate: date,
		Key:         key,
		Label:       label,
		UnitPrice:   d.unitPrice,
		Attributes:  fields,
		Parts:       parts,
		PartsTotal:  total,
	}, nil
}

// BuildAsset runs an AssetEntry through a draft
func BuildAsset(e AssetEntry, now time.Time) (*inventory.AssetReceipt, error) {
	draft := NewAssetDraft(e.Key, e.Label, e.UnitPrice, e.Attributes)
	for _, part := range e.Parts {
		if err := draft.AddPart(part); err != nil {
			return nil, err
		}
	}
	draft.AddSelected(e.Selections)
	return draft.Build(receiptDate(e.ReceiptDate, now))
}

func receiptDate(date *time.Time, now time.Time) time.Time {
	if date != nil && !date.IsZero() {
		return *date
	}
	return now
}

func defaultLabel(attrs map[string]string) string {
	if v := attrs[inventory.AttrDescription]; v != "" {
		return v
	}
	return attrs[inventory.AttrModel]
}
