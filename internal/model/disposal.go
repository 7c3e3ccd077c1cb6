package model

import (
	"time"

	"github.com/google/uuid"
)

type MaterialType string

const (
	MaterialLodos      MaterialType = "lodos"
	MaterialMetal      MaterialType = "metal"
	MaterialOtros      MaterialType = "otros"
	MaterialDestruidas MaterialType = "destruidas"
	MaterialUnknown    MaterialType = ""
)

const (
	UnitKg     = "kg"
	UnitPieces = "pza"
)

// LodosDetails holds the sludge-specific fields of a disposal log.
type LodosDetails struct {
	ResidueName            string
	ManifestNumber         string
	Area                   string
	TransportServiceNumber string
	WeightKg               float64
}

type MetalDetails struct {
	ResidueType  string
	Item         string
	Quantity     float64
	Unit         string
	RemisionHMMX *float64
	RemisionKia  *float64
}

type OtrosDetails struct {
	WasteType    string
	Item         string
	Quantity     float64
	Unit         string
	RemisionHMMX *float64
	RemisionKia  *float64
}

type DestruidasDetails struct {
	Residues string
	Area     string
	Weight   float64
}

// MaterialDetails is a tagged union: exactly one variant pointer is set and
// it must match the owning log's MaterialType. The zero value means the
// material type could not be resolved.
type MaterialDetails struct {
	Lodos      *LodosDetails
	Metal      *MetalDetails
	Otros      *OtrosDetails
	Destruidas *DestruidasDetails
}

// DisposalLog is the decoded, in-memory form of one waste disposal record.
type DisposalLog struct {
	ID                uuid.UUID
	Folio             string
	Date              time.Time
	DepartureTime     string
	Department        string
	Reason            string
	ContainerType     string
	AuthorizingPerson string
	MaterialType      MaterialType
	Details           MaterialDetails
	TotalWeight       float64
	Unit              string
	Driver            DriverSnapshot
	CreatedAt         time.Time
}

// DriverSnapshot carries the driver display fields as resolved at read time
// by joining back to the drivers table. Absent driver fields are empty
// strings, never missing, so rendering and search never special-case nil.
type DriverSnapshot struct {
	ID             *uuid.UUID
	Name           string
	Company        string
	Origin         string
	Destination    string
	Plates         string
	EconomicNumber string
}
