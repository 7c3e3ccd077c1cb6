package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduardoceto/waste-logs-service/internal/material"
	"github.com/eduardoceto/waste-logs-service/internal/model"
	"github.com/eduardoceto/waste-logs-service/internal/query"
)

// Department and reason are fixed at capture time; the form does not offer
// them as inputs.
const (
	defaultDepartment = "EHS"
	defaultReason     = "Residuos"
)

type DisposalStore interface {
	Insert(ctx context.Context, row model.DisposalRow) (*model.DisposalRow, error)
	List(ctx context.Context) ([]model.StoredDisposal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.StoredDisposal, error)
	Update(ctx context.Context, row model.DisposalRow) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type DriverStore interface {
	List(ctx context.Context, includeInactive bool) ([]model.Driver, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Driver, error)
	Create(ctx context.Context, driver model.Driver) (*model.Driver, error)
	Update(ctx context.Context, driver model.Driver) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type ExcelGenerator interface {
	Generate(materialType model.MaterialType, logs []model.DisposalLog) ([]byte, error)
}

type PDFGenerator interface {
	Generate(log model.DisposalLog) ([]byte, error)
}

type DisposalService struct {
	disposals DisposalStore
	drivers   DriverStore
	excel     ExcelGenerator
	pdf       PDFGenerator
	now       func() time.Time
	newFolio  func() string
}

func NewDisposalService(disposals DisposalStore, drivers DriverStore, excel ExcelGenerator, pdf PDFGenerator) *DisposalService {
	return &DisposalService{
		disposals: disposals,
		drivers:   drivers,
		excel:     excel,
		pdf:       pdf,
		now:       time.Now,
		newFolio:  randomFolio,
	}
}

// randomFolio mirrors the capture form's historical behavior: a random
// 5-digit number with no uniqueness check against the store. Collisions are
// possible; rows are keyed by UUID, the folio is display-only.
func randomFolio() string {
	return fmt.Sprintf("%d", rand.Intn(90000)+10000)
}

type CreateDisposalInput struct {
	Principal         model.Principal
	Material          string
	Details           material.Fields
	ContainerType     string
	AuthorizingPerson string
	DriverID          *uuid.UUID
	Date              string
	DepartureTime     string
}

func (s *DisposalService) Create(ctx context.Context, input CreateDisposalInput) (*model.DisposalLog, error) {
	mt := model.MaterialType(strings.ToLower(strings.TrimSpace(input.Material)))
	if !material.IsKnown(mt) {
		return nil, fmt.Errorf("%w: unknown material %q", ErrInvalidInput, input.Material)
	}

	if err := material.Validate(mt, input.Details); err != nil {
		return nil, err
	}
	details, err := material.BuildDetails(mt, input.Details)
	if err != nil {
		return nil, err
	}

	driver, err := s.resolveDriver(ctx, input.DriverID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	date := now
	if strings.TrimSpace(input.Date) != "" {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(input.Date))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
		}
		date = parsed
	}
	departure := strings.TrimSpace(input.DepartureTime)
	if departure == "" {
		departure = now.Format("15:04")
	}

	log := model.DisposalLog{
		Folio:             s.newFolio(),
		Date:              date,
		DepartureTime:     departure,
		Department:        defaultDepartment,
		Reason:            defaultReason,
		ContainerType:     strings.TrimSpace(input.ContainerType),
		AuthorizingPerson: authorizer(input),
		MaterialType:      mt,
		Details:           details,
	}
	if driver != nil {
		id := driver.ID
		log.Driver.ID = &id
	}

	row, err := material.Encode(log)
	if err != nil {
		return nil, err
	}

	saved, err := s.disposals.Insert(ctx, row)
	if err != nil {
		return nil, err
	}

	decoded, ok := material.Decode(model.StoredDisposal{Row: *saved, Driver: driver})
	if !ok {
		return nil, fmt.Errorf("stored row %s has no parseable date", saved.ID)
	}
	return &decoded, nil
}

// authorizer defaults to the submitting user; the form lets them override
// it when someone else signed off.
func authorizer(input CreateDisposalInput) string {
	if name := strings.TrimSpace(input.AuthorizingPerson); name != "" {
		return name
	}
	return input.Principal.FullName
}

type ListDisposalsInput struct {
	Principal model.Principal
	From      *time.Time
	To        *time.Time
	Material  string
	Search    string
	SortField string
	SortAsc   bool
}

func (s *DisposalService) List(ctx context.Context, input ListDisposalsInput) ([]model.DisposalLog, error) {
	stored, err := s.disposals.List(ctx)
	if err != nil {
		return nil, err
	}

	logs := material.DecodeAll(stored)
	logs = query.FilterByDateRange(logs, input.From, input.To)
	logs = query.FilterByMaterial(logs, input.Material)
	logs = query.Search(logs, input.Search)

	if input.SortField != "" {
		logs = query.SortBy(logs, input.SortField, input.SortAsc)
	} else {
		logs = query.SortBy(logs, query.SortByDate, false)
	}
	return logs, nil
}

func (s *DisposalService) Get(ctx context.Context, id uuid.UUID) (*model.DisposalLog, error) {
	stored, err := s.disposals.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	log, ok := material.Decode(*stored)
	if !ok {
		// Rows without a parseable date are invisible to the application.
		return nil, ErrNotFound
	}
	return &log, nil
}

type UpdateDisposalInput struct {
	Principal         model.Principal
	ID                uuid.UUID
	Material          string
	Details           material.Fields
	ContainerType     string
	AuthorizingPerson string
	DriverID          *uuid.UUID
	Date              string
	DepartureTime     string
}

// Update re-validates and re-encodes the record from the submitted material
// type. Changing the material type is allowed; the encoder nils out every
// column the new variant does not use.
func (s *DisposalService) Update(ctx context.Context, input UpdateDisposalInput) (*model.DisposalLog, error) {
	existing, err := s.disposals.GetByID(ctx, input.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	mt := model.MaterialType(strings.ToLower(strings.TrimSpace(input.Material)))
	if !material.IsKnown(mt) {
		return nil, fmt.Errorf("%w: unknown material %q", ErrInvalidInput, input.Material)
	}
	if err := material.Validate(mt, input.Details); err != nil {
		return nil, err
	}
	details, err := material.BuildDetails(mt, input.Details)
	if err != nil {
		return nil, err
	}

	driverID := input.DriverID
	if driverID == nil {
		driverID = existing.Row.DriverID
	}
	driver, err := s.resolveDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = existing.Row.LogDate
	}
	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}
	departure := strings.TrimSpace(input.DepartureTime)
	if departure == "" {
		departure = existing.Row.DepartureTime
	}

	log := model.DisposalLog{
		ID:                existing.Row.ID,
		Folio:             existing.Row.Folio,
		Date:              parsedDate,
		DepartureTime:     departure,
		Department:        existing.Row.Department,
		Reason:            existing.Row.Reason,
		ContainerType:     strings.TrimSpace(input.ContainerType),
		AuthorizingPerson: strings.TrimSpace(input.AuthorizingPerson),
		MaterialType:      mt,
		Details:           details,
		CreatedAt:         existing.Row.CreatedAt,
	}
	if driver != nil {
		id := driver.ID
		log.Driver.ID = &id
	}

	row, err := material.Encode(log)
	if err != nil {
		return nil, err
	}
	if err := s.disposals.Update(ctx, row); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	decoded, ok := material.Decode(model.StoredDisposal{Row: row, Driver: driver})
	if !ok {
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}
	return &decoded, nil
}

func (s *DisposalService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsManager() {
		return ErrPermissionDenied
	}
	if err := s.disposals.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type SummaryResult struct {
	Count       int
	TotalWeight float64
	ByMaterial  map[model.MaterialType]float64
}

func (s *DisposalService) Summary(ctx context.Context) (*SummaryResult, error) {
	stored, err := s.disposals.List(ctx)
	if err != nil {
		return nil, err
	}

	logs := material.DecodeAll(stored)
	return &SummaryResult{
		Count:       len(logs),
		TotalWeight: query.SumWeight(logs),
		ByMaterial:  query.SumWeightByMaterial(logs),
	}, nil
}

func (s *DisposalService) resolveDriver(ctx context.Context, id *uuid.UUID) (*model.Driver, error) {
	if id == nil {
		return nil, nil
	}
	driver, err := s.drivers.GetByID(ctx, *id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: driver", ErrNotFound)
		}
		return nil, err
	}
	return driver, nil
}
