package material

import (
	"strconv"

	"github.com/eduardoceto/waste-logs-service/internal/model"
)

// Display projections shared by the history list payload, the export
// preview, and the search predicate. The exporters use the same functions so
// a schema change lands in one place.

func ResidueLabel(log model.DisposalLog) string {
	switch {
	case log.Details.Lodos != nil:
		return log.Details.Lodos.ResidueName
	case log.Details.Metal != nil:
		return log.Details.Metal.ResidueType
	case log.Details.Otros != nil:
		return log.Details.Otros.WasteType
	case log.Details.Destruidas != nil:
		return log.Details.Destruidas.Residues
	}
	return ""
}

func ItemLabel(log model.DisposalLog) string {
	switch {
	case log.Details.Metal != nil:
		return log.Details.Metal.Item
	case log.Details.Otros != nil:
		return log.Details.Otros.Item
	}
	return ""
}

func QuantityLabel(log model.DisposalLog) string {
	if log.Unit == "" {
		return FormatQuantity(log.TotalWeight)
	}
	return FormatQuantity(log.TotalWeight) + " " + log.Unit
}

func AreaLabel(log model.DisposalLog) string {
	switch {
	case log.Details.Lodos != nil:
		return log.Details.Lodos.Area
	case log.Details.Destruidas != nil:
		return log.Details.Destruidas.Area
	}
	return ""
}

// VariantText lists the active variant's free-text fields, used by the
// search fallback when none of the scalar fields match.
func VariantText(log model.DisposalLog) []string {
	switch {
	case log.Details.Lodos != nil:
		d := log.Details.Lodos
		return []string{d.ResidueName, d.ManifestNumber, d.Area, d.TransportServiceNumber}
	case log.Details.Metal != nil:
		d := log.Details.Metal
		return []string{d.ResidueType, d.Item, d.Unit}
	case log.Details.Otros != nil:
		d := log.Details.Otros
		return []string{d.WasteType, d.Item, d.Unit}
	case log.Details.Destruidas != nil:
		d := log.Details.Destruidas
		return []string{d.Residues, d.Area}
	}
	return nil
}

// FormatQuantity renders a weight or count without trailing zeros.
func FormatQuantity(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
