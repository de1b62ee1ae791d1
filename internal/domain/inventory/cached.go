// internal/domain/inventory/cached.go
package inventory

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// LooseDecimal decodes any JSON number or numeric string and falls back
// to zero for anything else (null, booleans, garbage strings).
type LooseDecimal struct {
	decimal.Decimal
}

// NewLooseDecimal wraps d
func NewLooseDecimal(d decimal.Decimal) LooseDecimal {
	return LooseDecimal{Decimal: d}
}

// UnmarshalJSON never fails
func (d *LooseDecimal) UnmarshalJSON(b []byte) error {
	var v decimal.Decimal
	if err := v.UnmarshalJSON(b); err != nil {
		d.Decimal = decimal.Zero
		return nil
	}
	d.Decimal = v
	return nil
}

// LooseInt decodes a JSON number or numeric string, truncating fractions,
// and falls back to zero for anything else
type LooseInt int

// UnmarshalJSON never fails
func (n *LooseInt) UnmarshalJSON(b []byte) error {
	var v decimal.Decimal
	if err := v.UnmarshalJSON(b); err != nil {
		*n = 0
		return nil
	}
	*n = LooseInt(v.IntPart())
	return nil
}

// LooseAttributes decodes a JSON object of attribute values. Strings are
// kept, numbers and booleans are stringified, nulls and nested values are
// dropped. Anything other than an object decodes to nil.
type LooseAttributes map[string]string

// UnmarshalJSON never fails
func (a *LooseAttributes) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil || raw == nil {
		*a = nil
		return nil
	}

	attrs := make(LooseAttributes, len(raw))
	for k, v := range raw {
		if s, ok := scalarString(v); ok {
			attrs[k] = s
		}
	}
	*a = attrs
	return nil
}

func scalarString(v json.RawMessage) (string, bool) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return "", false
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", false
		}
		return s, true
	case 't', 'f':
		b, err := strconv.ParseBool(string(v))
		if err != nil {
			return "", false
		}
		return strconv.FormatBool(b), true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(v), true
	}
	return "", false
}

// CachedItem is the caller's cached view of a line in an active bill or
// damage list. Any field may be missing; StockID is empty for lines that
// were never persisted. Qty, UnitPrice and Attributes decode loosely so a
// malformed cached line can still be consumed.
type CachedItem struct {
	StockID    string          `json:"id,omitempty"`
	Category   Category        `json:"category,omitempty"`
	Key        string          `json:"key,omitempty"`
	Label      string          `json:"label,omitempty"`
	Name       string          `json:"name,omitempty"`
	Qty        LooseInt        `json:"qty,omitempty"`
	UnitPrice  LooseDecimal    `json:"unitPrice"`
	Attributes LooseAttributes `json:"attributes,omitempty"`

	Description   string `json:"description,omitempty"`
	Compatibility string `json:"compatibility,omitempty"`
	Brand         string `json:"brand,omitempty"`
	Color         string `json:"color,omitempty"`
	Model         string `json:"model,omitempty"`
	Region        string `json:"region,omitempty"`
	SerialNumber  string `json:"serialNumber,omitempty"`
	IMEINumber    string `json:"imeiNumber,omitempty"`
	Condition     string `json:"condition,omitempty"`
}

// DisplayName returns the label, then the name, then a placeholder
func (c *CachedItem) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	if c.Name != "" {
		return c.Name
	}
	return "Unknown item"
}

// topLevelAttributes returns the flattened attribute fields in a fixed order
func (c *CachedItem) topLevelAttributes() [][2]string {
	return [][2]string{
		{AttrDescription, c.Description},
		{AttrCompatibility, c.Compatibility},
		{AttrBrand, c.Brand},
		{AttrColor, c.Color},
		{AttrModel, c.Model},
		{AttrRegion, c.Region},
		{AttrSerialNumber, c.SerialNumber},
		{AttrIMEINumber, c.IMEINumber},
		{AttrCondition, c.Condition},
	}
}

// MergedAttributes flattens the cached item's attributes into one mapping.
// Keys from the nested attributes object are all kept; for the well-known
// keys a non-empty top-level field wins over the nested value, a
// choice recorded in DESIGN.md.
func (c *CachedItem) MergedAttributes() map[string]string {
	merged := make(map[string]string, len(c.Attributes)+9)
	for k, v := range c.Attributes {
		merged[k] = v
	}
	for _, kv := range c.topLevelAttributes() {
		if kv[1] != "" {
			merged[kv[0]] = kv[1]
		}
	}
	return merged
}

// SameLine reports whether two cached items describe the same line. It is
// only used for lines without a stock id.
func (c *CachedItem) SameLine(other *CachedItem) bool {
	if c.StockID != other.StockID || c.Category != other.Category || c.Key != other.Key ||
		c.Label != other.Label || c.Name != other.Name || c.Qty != other.Qty ||
		!c.UnitPrice.Equal(other.UnitPrice.Decimal) {
		return false
	}
	a, b := c.MergedAttributes(), other.MergedAttributes()
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
