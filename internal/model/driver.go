package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Driver is a transport operator managed independently of disposal logs.
// Drivers are deactivated, never hard-deleted, so historical rows keep
// resolving their join.
type Driver struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Company        string
	Origin         string
	Destination    string
	Plates         string
	EconomicNumber string
	Active         bool
	CreatedAt      time.Time
}

func (d Driver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}
