package schema

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

func TestNormalize_SpareKeepsExactKeys(t *testing.T) {
	raw := map[string]string{
		"description":   "Screen",
		"compatibility": "ModelX",
		"condition":     "Used",
		"brand":         "Acme",
		"unrelated":     "dropped",
	}

	fields, err := Normalize(inventory.CategorySpare, raw)
	require.NoError(t, err)

	s, _ := Lookup(inventory.CategorySpare)
	assert.ElementsMatch(t, s.Keys(), keysOf(fields))
	assert.Equal(t, "Screen", fields["description"])
	assert.Equal(t, "Acme", fields["brand"])
	assert.Equal(t, "", fields["serialNumber"])
	assert.NotContains(t, fields, "unrelated")
}

func TestNormalize_AllCategoriesWithRequiredFields(t *testing.T) {
	cases := map[inventory.Category]map[string]string{
		inventory.CategorySpare:     {"description": "d", "compatibility": "c", "condition": "New"},
		inventory.CategoryAccessory: {"description": "Case"},
		inventory.CategoryProduct:   {"model": "X1", "serialNumber": "SN1"},
		inventory.CategoryAsset:     {"compatibility": "X1", "serialNumber": "SN2"},
	}

	for category, raw := range cases {
		t.Run(string(category), func(t *testing.T) {
			fields, err := Normalize(category, raw)
			require.NoError(t, err)
			s, _ := Lookup(category)
			assert.Len(t, fields, len(s.Required)+len(s.Optional))
		})
	}
}

func TestNormalize_MissingRequiredFieldsAreNamed(t *testing.T) {
	_, err := Normalize(inventory.CategoryProduct, map[string]string{})

	var ve *inventory.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"model", "serialNumber"}, ve.Fields)
	assert.Contains(t, err.Error(), "model")
	assert.Contains(t, err.Error(), "serialNumber")
}

func TestNormalize_BlankValuesCountAsMissing(t *testing.T) {
	_, err := Normalize(inventory.CategorySpare, map[string]string{
		"description":   "  ",
		"compatibility": "ModelX",
	})

	var ve *inventory.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"description", "condition"}, ve.Fields)
}

func TestNormalize_UnknownCategory(t *testing.T) {
	_, err := Normalize("gadget", map[string]string{"description": "x"})

	var ve *inventory.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"category"}, ve.Fields)
}

func TestParse_ReturnsTypedVariant(t *testing.T) {
	attrs, err := Parse(inventory.CategoryAccessory, map[string]string{"description": "Charger", "color": "white"})
	require.NoError(t, err)

	acc, ok := attrs.(*AccessoryAttributes)
	require.True(t, ok)
	assert.Equal(t, "Charger", acc.Description)
	assert.Equal(t, "white", acc.Color)
	assert.Equal(t, inventory.CategoryAccessory, acc.Category())
	assert.Equal(t, "Charger", acc.Fields()["description"])
}

func TestValidateAsset_EmptyPartsAlwaysFails(t *testing.T) {
	valid := map[string]string{"compatibility": "X1", "serialNumber": "SN"}

	_, err := ValidateAsset(valid, nil)
	assert.ErrorIs(t, err, inventory.ErrEmptyParts)

	_, err = ValidateAsset(map[string]string{}, []inventory.AssetPartLine{})
	assert.ErrorIs(t, err, inventory.ErrEmptyParts)
}

func TestValidateAsset_HeaderValidatedWhenPartsPresent(t *testing.T) {
	parts := []inventory.AssetPartLine{{PartKey: "ram", PartLabel: "RAM 8GB", Qty: 1, CostPrice: decimal.NewFromInt(50)}}

	_, err := ValidateAsset(map[string]string{"compatibility": "X1"}, parts)
	var ve *inventory.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"serialNumber"}, ve.Fields)

	attrs, err := ValidateAsset(map[string]string{"compatibility": "X1", "serialNumber": "SN", "ram": "8GB"}, parts)
	require.NoError(t, err)
	assert.Equal(t, "8GB", attrs.RAM)
}

func TestSnapshot(t *testing.T) {
	attrs := map[string]string{"description": "Screen", "custom": "kept?"}

	snap := Snapshot(inventory.CategoryAccessory, attrs)
	assert.Equal(t, "Screen", snap["description"])
	assert.NotContains(t, snap, "custom")
	assert.Contains(t, snap, "brand")

	unknown := Snapshot(inventory.CategoryUnknown, attrs)
	assert.Equal(t, attrs, unknown)
}

func keysOf(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
