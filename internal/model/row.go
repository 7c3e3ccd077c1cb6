package model

import (
	"time"

	"github.com/google/uuid"
)

// DisposalRow is the flat persisted shape of a disposal log. The generic
// columns (Quantity, QuantityType, WasteType, WasteName, Area,
// TransportNumServices, ManifestNumber, Remission) are overloaded across the
// four material variants; ExcelID is the discriminator that decides which
// semantic field each column holds.
type DisposalRow struct {
	ID                   uuid.UUID
	Folio                string
	LogDate              string
	DepartureTime        string
	Department           string
	Reason               string
	ContainerType        string
	AuthorizingPerson    string
	ExcelID              int
	Quantity             float64
	QuantityType         *string
	WasteType            *string
	WasteName            *string
	Area                 *string
	TransportNumServices *string
	ManifestNumber       *string
	Remission            *float64
	DriverID             *uuid.UUID
	CreatedAt            time.Time
}

// StoredDisposal is a row together with its joined driver, as returned by
// the repository list/get queries. Driver is nil when the row has no driver
// or the referenced driver no longer resolves.
type StoredDisposal struct {
	Row    DisposalRow
	Driver *Driver
}
