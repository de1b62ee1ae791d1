// internal/domain/schema/attributes.go
package schema

import "github.com/your-org/repairshop-backend/internal/domain/inventory"

// Attributes is the category-specific attribute record of a stock item.
// The concrete type is one of SpareAttributes, AccessoryAttributes,
// ProductAttributes or AssetAttributes.
type Attributes interface {
	Category() inventory.Category
	Fields() map[string]string
}

// SpareAttributes are the attributes of a spare part
type SpareAttributes struct {
	Description   string
	Compatibility string
	Condition     string
	Brand         string
	Color         string
	Model         string
	Region        string
	SerialNumber  string
	IMEINumber    string
	OtherValue    string
}

func (a *SpareAttributes) Category() inventory.Category { return inventory.CategorySpare }

func (a *SpareAttributes) Fields() map[string]string {
	return map[string]string{
		inventory.AttrDescription:   a.Description,
		inventory.AttrCompatibility: a.Compatibility,
		inventory.AttrCondition:     a.Condition,
		inventory.AttrBrand:         a.Brand,
		inventory.AttrColor:         a.Color,
		inventory.AttrModel:         a.Model,
		inventory.AttrRegion:        a.Region,
		inventory.AttrSerialNumber:  a.SerialNumber,
		inventory.AttrIMEINumber:    a.IMEINumber,
		inventory.AttrOtherValue:    a.OtherValue,
	}
}

// AccessoryAttributes are the attributes of an accessory
type AccessoryAttributes struct {
	Description string
	Brand       string
	Color       string
	OtherValue  string
}

func (a *AccessoryAttributes) Category() inventory.Category { return inventory.CategoryAccessory }

func (a *AccessoryAttributes) Fields() map[string]string {
	return map[string]string{
		inventory.AttrDescription: a.Description,
		inventory.AttrBrand:       a.Brand,
		inventory.AttrColor:       a.Color,
		inventory.AttrOtherValue:  a.OtherValue,
	}
}

// ProductAttributes are the attributes of a sellable product
type ProductAttributes struct {
	Model        string
	SerialNumber string
	Color        string
	Region       string
	IMEINumber   string
	Condition    string
	OtherValue   string
}

func (a *ProductAttributes) Category() inventory.Category { return inventory.CategoryProduct }

func (a *ProductAttributes) Fields() map[string]string {
	return map[string]string{
		inventory.AttrModel:        a.Model,
		inventory.AttrSerialNumber: a.SerialNumber,
		inventory.AttrColor:        a.Color,
		inventory.AttrRegion:       a.Region,
		inventory.AttrIMEINumber:   a.IMEINumber,
		inventory.AttrCondition:    a.Condition,
		inventory.AttrOtherValue:   a.OtherValue,
	}
}

// AssetAttributes are the header attributes of a composite asset
type AssetAttributes struct {
	Compatibility string
	SerialNumber  string
	RAM           string
	Capacity      string
	Color         string
	Processor     string
	DisplaySize   string
	WorkingParts  string
	FaultyParts   string
	Faults        string
	AssetRemark   string
}

func (a *AssetAttributes) Category() inventory.Category { return inventory.CategoryAsset }

func (a *AssetAttributes) Fields() map[string]string {
	return map[string]string{
		inventory.AttrCompatibility: a.Compatibility,
		inventory.AttrSerialNumber:  a.SerialNumber,
		inventory.AttrRAM:           a.RAM,
		inventory.AttrCapacity:      a.Capacity,
		inventory.AttrColor:         a.Color,
		inventory.AttrProcessor:     a.Processor,
		inventory.AttrDisplaySize:   a.DisplaySize,
		inventory.AttrWorkingParts:  a.WorkingParts,
		inventory.AttrFaultyParts:   a.FaultyParts,
		inventory.AttrFaults:        a.Faults,
		inventory.AttrAssetRemark:   a.AssetRemark,
	}
}

// fromFields builds the variant for an already normalized mapping
func fromFields(category inventory.Category, f map[string]string) Attributes {
	switch category {
	case inventory.CategorySpare:
		return &SpareAttributes{
			Description:   f[inventory.AttrDescription],
			Compatibility: f[inventory.AttrCompatibility],
			Condition:     f[inventory.AttrCondition],
			Brand:         f[inventory.AttrBrand],
			Color:         f[inventory.AttrColor],
			Model:         f[inventory.AttrModel],
			Region:        f[inventory.AttrRegion],
			SerialNumber:  f[inventory.AttrSerialNumber],
			IMEINumber:    f[inventory.AttrIMEINumber],
			OtherValue:    f[inventory.AttrOtherValue],
		}
	case inventory.CategoryAccessory:
		return &AccessoryAttributes{
			Description: f[inventory.AttrDescription],
			Brand:       f[inventory.AttrBrand],
			Color:       f[inventory.AttrColor],
			OtherValue:  f[inventory.AttrOtherValue],
		}
	case inventory.CategoryProduct:
		return &ProductAttributes{
			Model:        f[inventory.AttrModel],
			SerialNumber: f[inventory.AttrSerialNumber],
			Color:        f[inventory.AttrColor],
			Region:       f[inventory.AttrRegion],
			IMEINumber:   f[inventory.AttrIMEINumber],
			Condition:    f[inventory.AttrCondition],
			OtherValue:   f[inventory.AttrOtherValue],
		}
	default:
		return &AssetAttributes{
			Compatibility: f[inventory.AttrCompatibility],
			SerialNumber:  f[inventory.AttrSerialNumber],
			RAM:           f[inventory.AttrRAM],
			Capacity:      f[inventory.AttrCapacity],
			Color:         f[inventory.AttrColor],
			Processor:     f[inventory.AttrProcessor],
			DisplaySize:   f[inventory.AttrDisplaySize],
			WorkingParts:  f[inventory.AttrWorkingParts],
			FaultyParts:   f[inventory.AttrFaultyParts],
			Faults:        f[inventory.AttrFaults],
			AssetRemark:   f[inventory.AttrAssetRemark],
		}
	}
}
