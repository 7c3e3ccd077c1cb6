package excel

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/eduardoceto/waste-logs-service/internal/model"
)

func writeTemplate(t *testing.T, dir, name string) {
	t.Helper()
	file := excelize.NewFile()
	require.NoError(t, file.SetCellValue("Sheet1", "A1", "FORMATO DE CONTROL DE RESIDUOS"))
	require.NoError(t, file.SetCellValue("Sheet1", "B7", "ENCABEZADO"))
	require.NoError(t, file.SaveAs(filepath.Join(dir, name)))
	require.NoError(t, file.Close())
}

func lodosLog(date string, name string, weight float64) model.DisposalLog {
	parsed, _ := time.Parse("2006-01-02", date)
	return model.DisposalLog{
		Date:         parsed,
		MaterialType: model.MaterialLodos,
		TotalWeight:  weight,
		Unit:         model.UnitKg,
		Driver:       model.DriverSnapshot{Company: "ACME Transport"},
		Details: model.MaterialDetails{Lodos: &model.LodosDetails{
			ResidueName:            name,
			ManifestNumber:         "MX-104",
			Area:                   "Pintura",
			TransportServiceNumber: "17",
			WeightKg:               weight,
		}},
	}
}

func TestGenerateLodosStartsAtRowEight(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "plantilla_lodos.xlsx")
	generator := NewGenerator(dir, "GEN Industrial")

	logs := []model.DisposalLog{
		lodosLog("2025-03-14", "Lodos de pintura", 120.5),
		lodosLog("2025-03-15", "Lodos de fosfato", 80),
		lodosLog("2025-03-16", "Lodos de pintura", 95.25),
	}

	content, err := generator.Generate(model.MaterialLodos, logs)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()
	sheet := file.GetSheetName(0)

	cell := func(ref string) string {
		value, err := file.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return value
	}

	assert.Equal(t, "14/03/2025", cell("B8"))
	assert.Equal(t, "15/03/2025", cell("B9"))
	assert.Equal(t, "16/03/2025", cell("B10"))
	assert.Equal(t, "Lodos de pintura", cell("C8"))
	assert.Equal(t, "MX-104", cell("D8"))
	assert.Equal(t, "ACME Transport", cell("E8"))
	assert.Equal(t, "GEN Industrial", cell("F8"))
	assert.Equal(t, "120.5", cell("H8"))
	assert.Equal(t, "kg", cell("I8"))

	// Template header rows stay untouched.
	assert.Equal(t, "FORMATO DE CONTROL DE RESIDUOS", cell("A1"))
	assert.Equal(t, "ENCABEZADO", cell("B7"))
}

func TestGenerateMetalStartsAtRowFive(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "plantilla_metal.xlsx")
	generator := NewGenerator(dir, "GEN Industrial")

	hmmx := 7701.0
	parsed, _ := time.Parse("2006-01-02", "2025-03-14")
	log := model.DisposalLog{
		Date:         parsed,
		MaterialType: model.MaterialMetal,
		TotalWeight:  12.5,
		Unit:         model.UnitKg,
		Details: model.MaterialDetails{Metal: &model.MetalDetails{
			ResidueType:  "Ferroso",
			Item:         "Aluminio",
			Quantity:     12.5,
			Unit:         "kg",
			RemisionHMMX: &hmmx,
		}},
	}

	content, err := generator.Generate(model.MaterialMetal, []model.DisposalLog{log})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()
	sheet := file.GetSheetName(0)

	value, err := file.GetCellValue(sheet, "C5")
	require.NoError(t, err)
	assert.Equal(t, "Ferroso", value)

	value, err = file.GetCellValue(sheet, "G5")
	require.NoError(t, err)
	assert.Equal(t, "12.5", value)

	// Missing optional remision writes an empty cell, not a failure.
	value, err = file.GetCellValue(sheet, "J5")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestGenerateMissingTemplateFails(t *testing.T) {
	generator := NewGenerator(t.TempDir(), "GEN Industrial")

	_, err := generator.Generate(model.MaterialLodos, []model.DisposalLog{lodosLog("2025-03-14", "Lodos", 1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load template")
}

func TestGenerateUnknownMaterialFails(t *testing.T) {
	generator := NewGenerator(t.TempDir(), "GEN Industrial")

	_, err := generator.Generate(model.MaterialUnknown, nil)
	assert.Error(t, err)
}
