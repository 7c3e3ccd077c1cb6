package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduardoceto/waste-logs-service/internal/model"
)

type DriverService struct {
	drivers DriverStore
}

func NewDriverService(drivers DriverStore) *DriverService {
	return &DriverService{drivers: drivers}
}

type ListDriversInput struct {
	Principal       model.Principal
	IncludeInactive bool
}

func (s *DriverService) List(ctx context.Context, input ListDriversInput) ([]model.Driver, error) {
	return s.drivers.List(ctx, input.IncludeInactive)
}

type DriverInput struct {
	Principal      model.Principal
	FirstName      string
	LastName       string
	Company        string
	Origin         string
	Destination    string
	Plates         string
	EconomicNumber string
}

func (s *DriverService) Create(ctx context.Context, input DriverInput) (*model.Driver, error) {
	if !input.Principal.IsManager() {
		return nil, ErrPermissionDenied
	}
	if err := validateDriver(input); err != nil {
		return nil, err
	}

	return s.drivers.Create(ctx, driverFromInput(input))
}

func (s *DriverService) Update(ctx context.Context, id uuid.UUID, input DriverInput) (*model.Driver, error) {
	if !input.Principal.IsManager() {
		return nil, ErrPermissionDenied
	}
	if err := validateDriver(input); err != nil {
		return nil, err
	}

	driver := driverFromInput(input)
	driver.ID = id
	if err := s.drivers.Update(ctx, driver); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.drivers.GetByID(ctx, id)
}

// Deactivate is the only delete there is: drivers referenced by historical
// disposal rows must keep resolving.
func (s *DriverService) Deactivate(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsManager() {
		return ErrPermissionDenied
	}
	if err := s.drivers.SetActive(ctx, id, false); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func validateDriver(input DriverInput) error {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return fmt.Errorf("%w: driver name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Company) == "" {
		return fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	return nil
}

func driverFromInput(input DriverInput) model.Driver {
	return model.Driver{
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Company:        strings.TrimSpace(input.Company),
		Origin:         strings.TrimSpace(input.Origin),
		Destination:    strings.TrimSpace(input.Destination),
		Plates:         strings.TrimSpace(input.Plates),
		EconomicNumber: strings.TrimSpace(input.EconomicNumber),
		Active:         true,
	}
}
