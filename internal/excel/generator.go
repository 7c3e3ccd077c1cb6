package excel

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/eduardoceto/waste-logs-service/internal/material"
	"github.com/eduardoceto/waste-logs-service/internal/model"
)

// Generator writes disposal logs into the pre-existing regulatory template
// workbook for one material type. The templates are external artifacts: each
// has a fixed header block, so records start at a material-specific row and
// the column letters must match the template's layout exactly.
type Generator struct {
	templatesDir string
	destination  string
}

func NewGenerator(templatesDir, destination string) *Generator {
	return &Generator{templatesDir: templatesDir, destination: destination}
}

type templateLayout struct {
	File     string
	StartRow int
}

var layouts = map[model.MaterialType]templateLayout{
	model.MaterialLodos:      {File: "plantilla_lodos.xlsx", StartRow: 8},
	model.MaterialMetal:      {File: "plantilla_metal.xlsx", StartRow: 5},
	model.MaterialOtros:      {File: "plantilla_otros.xlsx", StartRow: 5},
	model.MaterialDestruidas: {File: "plantilla_destruidas.xlsx", StartRow: 7},
}

type cellValue struct {
	Col   string
	Value interface{}
}

// Generate fills the material's template with the given logs, one row per
// record starting at the layout's start row. The caller must have filtered
// the collection to a single material type; rows of another type would be
// written through this material's column mapping.
func (g *Generator) Generate(materialType model.MaterialType, logs []model.DisposalLog) ([]byte, error) {
	layout, ok := layouts[materialType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", material.ErrUnknownMaterial, materialType)
	}

	path := filepath.Join(g.templatesDir, layout.File)
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("load template %s: %w", layout.File, err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("template %s has no worksheet", layout.File)
	}

	for i, log := range logs {
		row := layout.StartRow + i
		for _, cv := range g.rowValues(materialType, log) {
			cell := fmt.Sprintf("%s%d", cv.Col, row)
			if err := file.SetCellValue(sheet, cell, cv.Value); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rowValues maps one log onto the template's columns. Missing optional
// fields come out as empty strings; a record is never skipped for them.
func (g *Generator) rowValues(materialType model.MaterialType, log model.DisposalLog) []cellValue {
	date := log.Date.Format("02/01/2006")

	switch materialType {
	case model.MaterialLodos:
		d := detailsLodos(log)
		return []cellValue{
			{"B", date},
			{"C", d.ResidueName},
			{"D", d.ManifestNumber},
			{"E", log.Driver.Company},
			{"F", g.destination},
			{"G", d.Area},
			{"H", d.WeightKg},
			{"I", model.UnitKg},
			{"J", d.TransportServiceNumber},
		}
	case model.MaterialMetal:
		d := detailsMetal(log)
		return []cellValue{
			{"B", date},
			{"C", d.ResidueType},
			{"D", d.Item},
			{"E", log.Driver.Company},
			{"F", g.destination},
			{"G", d.Quantity},
			{"H", d.Unit},
			{"I", optionalNumber(d.RemisionHMMX)},
			{"J", optionalNumber(d.RemisionKia)},
		}
	case model.MaterialOtros:
		d := detailsOtros(log)
		return []cellValue{
			{"B", date},
			{"C", d.WasteType},
			{"D", d.Item},
			{"E", log.Driver.Company},
			{"F", g.destination},
			{"G", d.Quantity},
			{"H", d.Unit},
			{"I", optionalNumber(d.RemisionHMMX)},
			{"J", optionalNumber(d.RemisionKia)},
		}
	case model.MaterialDestruidas:
		d := detailsDestruidas(log)
		return []cellValue{
			{"B", date},
			{"C", d.Residues},
			{"D", d.Area},
			{"E", log.Driver.Company},
			{"F", g.destination},
			{"G", d.Weight},
			{"H", model.UnitKg},
		}
	}
	return nil
}

func detailsLodos(log model.DisposalLog) model.LodosDetails {
	if log.Details.Lodos == nil {
		return model.LodosDetails{}
	}
	return *log.Details.Lodos
}

func detailsMetal(log model.DisposalLog) model.MetalDetails {
	if log.Details.Metal == nil {
		return model.MetalDetails{}
	}
	return *log.Details.Metal
}

func detailsOtros(log model.DisposalLog) model.OtrosDetails {
	if log.Details.Otros == nil {
		return model.OtrosDetails{}
	}
	return *log.Details.Otros
}

func detailsDestruidas(log model.DisposalLog) model.DestruidasDetails {
	if log.Details.Destruidas == nil {
		return model.DestruidasDetails{}
	}
	return *log.Details.Destruidas
}

func optionalNumber(value *float64) interface{} {
	if value == nil {
		return ""
	}
	return *value
}
