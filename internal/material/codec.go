package material

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/eduardoceto/waste-logs-service/internal/model"
)

// Encode flattens a disposal log into the persisted row shape. The generic
// columns are written per the active variant only; every column the variant
// does not use is encoded nil so edits across material types never leave
// stale values behind. Encode performs no I/O.
func Encode(log model.DisposalLog) (model.DisposalRow, error) {
	excelID, ok := ExcelID(log.MaterialType)
	if !ok {
		return model.DisposalRow{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, log.MaterialType)
	}

	row := model.DisposalRow{
		ID:                log.ID,
		Folio:             log.Folio,
		LogDate:           formatLogDate(log.Date),
		DepartureTime:     log.DepartureTime,
		Department:        log.Department,
		Reason:            log.Reason,
		ContainerType:     log.ContainerType,
		AuthorizingPerson: log.AuthorizingPerson,
		ExcelID:           excelID,
		DriverID:          log.Driver.ID,
		CreatedAt:         log.CreatedAt,
	}

	switch log.MaterialType {
	case model.MaterialLodos:
		d := log.Details.Lodos
		if d == nil {
			return model.DisposalRow{}, fmt.Errorf("%w: lodos details missing", ErrUnknownMaterial)
		}
		row.Quantity = sanitize(d.WeightKg)
		row.QuantityType = strPtr(model.UnitKg)
		row.WasteName = strPtr(d.ResidueName)
		row.Area = strPtr(d.Area)
		row.TransportNumServices = strPtr(d.TransportServiceNumber)
		row.ManifestNumber = strPtr(d.ManifestNumber)
	case model.MaterialDestruidas:
		d := log.Details.Destruidas
		if d == nil {
			return model.DisposalRow{}, fmt.Errorf("%w: destruidas details missing", ErrUnknownMaterial)
		}
		row.Quantity = sanitize(d.Weight)
		row.QuantityType = strPtr(model.UnitKg)
		row.WasteName = strPtr(d.Residues)
		row.Area = strPtr(d.Area)
	case model.MaterialOtros:
		d := log.Details.Otros
		if d == nil {
			return model.DisposalRow{}, fmt.Errorf("%w: otros details missing", ErrUnknownMaterial)
		}
		row.Quantity = sanitize(d.Quantity)
		row.QuantityType = strPtr(d.Unit)
		row.WasteType = strPtr(d.WasteType)
		row.WasteName = strPtr(d.Item)
		row.Remission = d.RemisionHMMX
		row.TransportNumServices = floatToStrPtr(d.RemisionKia)
	case model.MaterialMetal:
		d := log.Details.Metal
		if d == nil {
			return model.DisposalRow{}, fmt.Errorf("%w: metal details missing", ErrUnknownMaterial)
		}
		row.Quantity = sanitize(d.Quantity)
		row.QuantityType = strPtr(d.Unit)
		row.WasteType = strPtr(d.ResidueType)
		row.WasteName = strPtr(d.Item)
		row.Remission = d.RemisionHMMX
		row.TransportNumServices = floatToStrPtr(d.RemisionKia)
	}

	return row, nil
}

// Decode reconstructs a disposal log from a stored row and its joined
// driver. The second return is false when the row's date is absent or
// unparseable; such rows are excluded from every decoded collection because
// the date is the filtering anchor for the whole application.
func Decode(stored model.StoredDisposal) (model.DisposalLog, bool) {
	row := stored.Row

	date, ok := parseLogDate(row.LogDate)
	if !ok {
		return model.DisposalLog{}, false
	}

	mt := TypeByExcelID(row.ExcelID)
	log := model.DisposalLog{
		ID:                row.ID,
		Folio:             row.Folio,
		Date:              date,
		DepartureTime:     row.DepartureTime,
		Department:        row.Department,
		Reason:            row.Reason,
		ContainerType:     row.ContainerType,
		AuthorizingPerson: row.AuthorizingPerson,
		MaterialType:      mt,
		Driver:            driverSnapshot(stored.Driver),
		CreatedAt:         row.CreatedAt,
	}

	// Only the columns belonging to the resolved variant are read; rows
	// edited across material-type changes may hold stale values elsewhere.
	switch mt {
	case model.MaterialLodos:
		log.Details.Lodos = &model.LodosDetails{
			ResidueName:            strVal(row.WasteName),
			ManifestNumber:         strVal(row.ManifestNumber),
			Area:                   strVal(row.Area),
			TransportServiceNumber: strVal(row.TransportNumServices),
			WeightKg:               row.Quantity,
		}
		log.TotalWeight = row.Quantity
		log.Unit = model.UnitKg
	case model.MaterialDestruidas:
		log.Details.Destruidas = &model.DestruidasDetails{
			Residues: strVal(row.WasteName),
			Area:     strVal(row.Area),
			Weight:   row.Quantity,
		}
		log.TotalWeight = row.Quantity
		log.Unit = model.UnitKg
	case model.MaterialOtros:
		log.Details.Otros = &model.OtrosDetails{
			WasteType:    strVal(row.WasteType),
			Item:         strVal(row.WasteName),
			Quantity:     row.Quantity,
			Unit:         strVal(row.QuantityType),
			RemisionHMMX: row.Remission,
			RemisionKia:  strToFloatPtr(row.TransportNumServices),
		}
		log.TotalWeight = row.Quantity
		log.Unit = strVal(row.QuantityType)
	case model.MaterialMetal:
		log.Details.Metal = &model.MetalDetails{
			ResidueType:  strVal(row.WasteType),
			Item:         strVal(row.WasteName),
			Quantity:     row.Quantity,
			Unit:         strVal(row.QuantityType),
			RemisionHMMX: row.Remission,
			RemisionKia:  strToFloatPtr(row.TransportNumServices),
		}
		log.TotalWeight = row.Quantity
		log.Unit = strVal(row.QuantityType)
	}

	return log, true
}

// DecodeAll decodes a stored collection, silently dropping rows whose date
// does not parse.
func DecodeAll(stored []model.StoredDisposal) []model.DisposalLog {
	logs := make([]model.DisposalLog, 0, len(stored))
	for _, s := range stored {
		if log, ok := Decode(s); ok {
			logs = append(logs, log)
		}
	}
	return logs
}

func driverSnapshot(driver *model.Driver) model.DriverSnapshot {
	if driver == nil {
		return model.DriverSnapshot{}
	}
	id := driver.ID
	return model.DriverSnapshot{
		ID:             &id,
		Name:           driver.FullName(),
		Company:        driver.Company,
		Origin:         driver.Origin,
		Destination:    driver.Destination,
		Plates:         driver.Plates,
		EconomicNumber: driver.EconomicNumber,
	}
}

var logDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
}

func parseLogDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range logDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func formatLogDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func sanitize(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

func strPtr(value string) *string {
	return &value
}

func strVal(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func floatToStrPtr(value *float64) *string {
	if value == nil {
		return nil
	}
	formatted := FormatQuantity(*value)
	return &formatted
}

func strToFloatPtr(value *string) *float64 {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	parsed := parseFloat(strings.TrimSpace(*value))
	return &parsed
}
