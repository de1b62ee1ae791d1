// internal/domain/schema/registry.go
package schema

import (
	"strings"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// Schema describes the attribute shape of one category
type Schema struct {
	Category inventory.Category
	Required []string
	Optional []string
}

// Keys returns required followed by optional keys
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s.Required)+len(s.Optional))
	keys = append(keys, s.Required...)
	return append(keys, s.Optional...)
}

var registry = map[inventory.Category]Schema{
	inventory.CategorySpare: {
		Category: inventory.CategorySpare,
		Required: []string{inventory.AttrDescription, inventory.AttrCompatibility, inventory.AttrCondition},
		Optional: []string{
			inventory.AttrBrand, inventory.AttrColor, inventory.AttrModel, inventory.AttrRegion,
			inventory.AttrSerialNumber, inventory.AttrIMEINumber, inventory.AttrOtherValue,
		},
	},
	inventory.CategoryAccessory: {
		Category: inventory.CategoryAccessory,
		Required: []string{inventory.AttrDescription},
		Optional: []string{inventory.AttrBrand, inventory.AttrColor, inventory.AttrOtherValue},
	},
	inventory.CategoryProduct: {
		Category: inventory.CategoryProduct,
		Required: []string{inventory.AttrModel, inventory.AttrSerialNumber},
		Optional: []string{
			inventory.AttrColor, inventory.AttrRegion, inventory.AttrIMEINumber,
			inventory.AttrCondition, inventory.AttrOtherValue,
		},
	},
	inventory.CategoryAsset: {
		Category: inventory.CategoryAsset,
		Required: []string{inventory.AttrCompatibility, inventory.AttrSerialNumber},
		Optional: []string{
			inventory.AttrRAM, inventory.AttrCapacity, inventory.AttrColor, inventory.AttrProcessor,
			inventory.AttrDisplaySize, inventory.AttrWorkingParts, inventory.AttrFaultyParts,
			inventory.AttrFaults, inventory.AttrAssetRemark,
		},
	},
}

// Lookup returns the schema registered for category
func Lookup(category inventory.Category) (Schema, bool) {
	s, ok := registry[category]
	return s, ok
}

// Normalize validates raw against the category schema and returns a mapping
// holding exactly the required and optional keys. Optional keys missing
// from raw are set to "". Unrecognized keys are dropped.
func Normalize(category inventory.Category, raw map[string]string) (map[string]string, error) {
	s, ok := Lookup(category)
	if !ok {
		return nil, inventory.NewValidationError(category, "category")
	}

	normalized := make(map[string]string, len(s.Required)+len(s.Optional))
	var missing []string
	for _, key := range s.Required {
		value := strings.TrimSpace(raw[key])
		if value == "" {
			missing = append(missing, key)
			continue
		}
		normalized[key] = value
	}
	if len(missing) > 0 {
		return nil, inventory.NewValidationError(category, missing...)
	}

	for _, key := range s.Optional {
		normalized[key] = strings.TrimSpace(raw[key])
	}
	return normalized, nil
}

// Parse normalizes raw and returns the typed attribute variant
func Parse(category inventory.Category, raw map[string]string) (Attributes, error) {
	fields, err := Normalize(category, raw)
	if err != nil {
		return nil, err
	}
	return fromFields(category, fields), nil
}

// ValidateAsset validates an asset header together with its part lines.
// An empty part list fails with ErrEmptyParts whatever the header holds.
func ValidateAsset(raw map[string]string, parts []inventory.AssetPartLine) (*AssetAttributes, error) {
	if len(parts) == 0 {
		return nil, inventory.ErrEmptyParts
	}
	attrs, err := Parse(inventory.CategoryAsset, raw)
	if err != nil {
		return nil, err
	}
	return attrs.(*AssetAttributes), nil
}

// Snapshot copies the category-relevant attributes out of attrs without
// enforcing required keys. Unknown categories keep every non-empty key.
func Snapshot(category inventory.Category, attrs map[string]string) map[string]string {
	snapshot := make(map[string]string)
	s, ok := Lookup(category)
	if !ok {
		for k, v := range attrs {
			if v != "" {
				snapshot[k] = v
			}
		}
		return snapshot
	}
	for _, key := range s.Keys() {
		snapshot[key] = attrs[key]
	}
	return snapshot
}
