package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/eduardoceto/waste-logs-service/internal/material"
	"github.com/eduardoceto/waste-logs-service/internal/model"
)

// Generator renders one disposal log as the fixed-layout manifest document:
// a header block of label/value rows, a material-specific block, and the two
// signature lines. The output is a byte buffer; persisting it is the
// caller's concern.
type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(log model.DisposalLog) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("Registro de Salida de Residuos"), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Folio %s — %s %s", log.Folio, log.Date.Format("02/01/2006"), log.DepartureTime)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.labelValueRows(pdf, tr, [][2]string{
		{"Departamento", log.Department},
		{"Motivo", log.Reason},
		{"Tipo de material", materialLabel(log.MaterialType)},
		{"Tipo de contenedor", log.ContainerType},
		{"Persona que autoriza", log.AuthorizingPerson},
		{"Chofer", log.Driver.Name},
		{"Compañía", log.Driver.Company},
		{"Origen", log.Driver.Origin},
		{"Destino", log.Driver.Destination},
		{"Placas", log.Driver.Plates},
		{"Número económico", log.Driver.EconomicNumber},
	})

	pdf.Ln(3)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Detalle del material"), "", 1, "L", false, 0, "")
	g.labelValueRows(pdf, tr, materialRows(log))

	pdf.Ln(10)
	pdf.SetFont(g.fontName, "", 11)
	signatureLine(pdf, tr, "Entrega", log.AuthorizingPerson)
	pdf.Ln(6)
	signatureLine(pdf, tr, "Recibe", log.Driver.Name)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) labelValueRows(pdf *gofpdf.Fpdf, tr func(string) string, rows [][2]string) {
	for _, row := range rows {
		pdf.SetFont(g.fontName, "B", 10)
		pdf.CellFormat(60, 7, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 7, tr(safeValue(row[1])), "1", 1, "L", false, 0, "")
	}
}

// materialRows builds the material-specific block. Missing optional fields
// render as a placeholder, never abort the document.
func materialRows(log model.DisposalLog) [][2]string {
	switch {
	case log.Details.Lodos != nil:
		d := log.Details.Lodos
		return [][2]string{
			{"Nombre del residuo", d.ResidueName},
			{"Número de manifiesto", d.ManifestNumber},
			{"Área", d.Area},
			{"Número de servicio de transporte", d.TransportServiceNumber},
			{"Peso (kg)", material.FormatQuantity(d.WeightKg)},
		}
	case log.Details.Metal != nil:
		d := log.Details.Metal
		return [][2]string{
			{"Tipo de residuo", d.ResidueType},
			{"Artículo", d.Item},
			{"Cantidad", material.FormatQuantity(d.Quantity) + " " + d.Unit},
			{"Remisión HMMX", optionalNumber(d.RemisionHMMX)},
			{"Remisión Kia", optionalNumber(d.RemisionKia)},
		}
	case log.Details.Otros != nil:
		d := log.Details.Otros
		return [][2]string{
			{"Tipo de desecho", d.WasteType},
			{"Artículo", d.Item},
			{"Cantidad", material.FormatQuantity(d.Quantity) + " " + d.Unit},
			{"Remisión HMMX", optionalNumber(d.RemisionHMMX)},
			{"Remisión Kia", optionalNumber(d.RemisionKia)},
		}
	case log.Details.Destruidas != nil:
		d := log.Details.Destruidas
		return [][2]string{
			{"Residuos", d.Residues},
			{"Área", d.Area},
			{"Peso (kg)", material.FormatQuantity(d.Weight)},
		}
	}
	return [][2]string{{"Material", "desconocido"}}
}

func signatureLine(pdf *gofpdf.Fpdf, tr func(string) string, label, name string) {
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s: ______________________ /%s/", label, safeValue(name))), "", 1, "L", false, 0, "")
}

func materialLabel(mt model.MaterialType) string {
	switch mt {
	case model.MaterialLodos:
		return "Lodos"
	case model.MaterialMetal:
		return "Metal"
	case model.MaterialOtros:
		return "Otros reciclables"
	case model.MaterialDestruidas:
		return "Partes destruidas"
	default:
		return "Desconocido"
	}
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

func optionalNumber(value *float64) string {
	if value == nil {
		return ""
	}
	return material.FormatQuantity(*value)
}
