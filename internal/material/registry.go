package material

import (
	"github.com/eduardoceto/waste-logs-service/internal/model"
)

// Form field keys for the material-specific section of a disposal
// submission. The capture form posts these as raw strings.
const (
	FieldResidueName            = "residue_name"
	FieldManifestNumber         = "manifest_number"
	FieldArea                   = "area"
	FieldTransportServiceNumber = "transport_service_number"
	FieldWeightKg               = "weight_kg"
	FieldResidueType            = "residue_type"
	FieldWasteType              = "waste_type"
	FieldItem                   = "item"
	FieldQuantity               = "quantity"
	FieldUnit                   = "unit"
	FieldRemisionHMMX           = "remision_hmmx"
	FieldRemisionKia            = "remision_kia"
	FieldResidues               = "residues"
	FieldWeight                 = "weight"
)

type fieldSpec struct {
	Key      string
	Required bool
	Numeric  bool
	OneOf    []string
}

// variantFields is the single registry of which fields each material variant
// carries. Validation, encoding, and decoding are all driven off the variant
// selected here; fields from one variant are never read while another is
// active.
var variantFields = map[model.MaterialType][]fieldSpec{
	model.MaterialLodos: {
		{Key: FieldResidueName, Required: true},
		{Key: FieldManifestNumber, Required: true},
		{Key: FieldArea, Required: true},
		{Key: FieldTransportServiceNumber, Required: true},
		{Key: FieldWeightKg, Required: true, Numeric: true},
	},
	model.MaterialMetal: {
		{Key: FieldResidueType, Required: true},
		{Key: FieldItem, Required: true},
		{Key: FieldQuantity, Required: true, Numeric: true},
		{Key: FieldUnit, Required: true, OneOf: []string{model.UnitKg, model.UnitPieces}},
		{Key: FieldRemisionHMMX, Numeric: true},
		{Key: FieldRemisionKia, Numeric: true},
	},
	model.MaterialOtros: {
		{Key: FieldWasteType, Required: true},
		{Key: FieldItem, Required: true},
		{Key: FieldQuantity, Required: true, Numeric: true},
		{Key: FieldUnit, Required: true, OneOf: []string{model.UnitKg, model.UnitPieces}},
		{Key: FieldRemisionHMMX, Numeric: true},
		{Key: FieldRemisionKia, Numeric: true},
	},
	model.MaterialDestruidas: {
		{Key: FieldResidues, Required: true},
		{Key: FieldArea, Required: true},
		{Key: FieldWeight, Required: true, Numeric: true},
	},
}

// excelIDs maps each material to its row discriminator. The assignment is
// historical and deliberately non-alphabetical; existing exports and stored
// rows depend on these exact values.
var excelIDs = map[model.MaterialType]int{
	model.MaterialLodos:      1,
	model.MaterialDestruidas: 2,
	model.MaterialOtros:      3,
	model.MaterialMetal:      4,
}

var typesByExcelID = map[int]model.MaterialType{
	1: model.MaterialLodos,
	2: model.MaterialDestruidas,
	3: model.MaterialOtros,
	4: model.MaterialMetal,
}

// Types lists the known material types in capture-form order.
func Types() []model.MaterialType {
	return []model.MaterialType{
		model.MaterialLodos,
		model.MaterialMetal,
		model.MaterialOtros,
		model.MaterialDestruidas,
	}
}

func IsKnown(mt model.MaterialType) bool {
	_, ok := variantFields[mt]
	return ok
}

func ExcelID(mt model.MaterialType) (int, bool) {
	id, ok := excelIDs[mt]
	return id, ok
}

// TypeByExcelID resolves the discriminator back to a material type. Unknown
// or missing discriminators resolve to MaterialUnknown rather than failing;
// rows edited by older versions of the system carry stray values.
func TypeByExcelID(id int) model.MaterialType {
	if mt, ok := typesByExcelID[id]; ok {
		return mt
	}
	return model.MaterialUnknown
}
