package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eduardoceto/waste-logs-service/internal/material"
	"github.com/eduardoceto/waste-logs-service/internal/model"
)

// ── In-memory store stubs ───────────────────────────────────────────────────

type stubDriverStore struct {
	drivers map[uuid.UUID]model.Driver
}

func newStubDriverStore() *stubDriverStore {
	return &stubDriverStore{drivers: make(map[uuid.UUID]model.Driver)}
}

func (s *stubDriverStore) List(_ context.Context, includeInactive bool) ([]model.Driver, error) {
	var result []model.Driver
	for _, driver := range s.drivers {
		if driver.Active || includeInactive {
			result = append(result, driver)
		}
	}
	return result, nil
}

func (s *stubDriverStore) GetByID(_ context.Context, id uuid.UUID) (*model.Driver, error) {
	driver, ok := s.drivers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &driver, nil
}

func (s *stubDriverStore) Create(_ context.Context, driver model.Driver) (*model.Driver, error) {
	driver.ID = uuid.New()
	driver.Active = true
	s.drivers[driver.ID] = driver
	return &driver, nil
}

func (s *stubDriverStore) Update(_ context.Context, driver model.Driver) error {
	existing, ok := s.drivers[driver.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	driver.Active = existing.Active
	s.drivers[driver.ID] = driver
	return nil
}

func (s *stubDriverStore) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	driver, ok := s.drivers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	driver.Active = active
	s.drivers[id] = driver
	return nil
}

type stubDisposalStore struct {
	drivers *stubDriverStore
	rows    map[uuid.UUID]model.DisposalRow
	order   []uuid.UUID
}

func newStubDisposalStore(drivers *stubDriverStore) *stubDisposalStore {
	return &stubDisposalStore{drivers: drivers, rows: make(map[uuid.UUID]model.DisposalRow)}
}

func (s *stubDisposalStore) Insert(_ context.Context, row model.DisposalRow) (*model.DisposalRow, error) {
	row.ID = uuid.New()
	row.CreatedAt = time.Now()
	s.rows[row.ID] = row
	s.order = append(s.order, row.ID)
	return &row, nil
}

func (s *stubDisposalStore) List(_ context.Context) ([]model.StoredDisposal, error) {
	result := make([]model.StoredDisposal, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.joined(s.rows[id]))
	}
	return result, nil
}

func (s *stubDisposalStore) GetByID(_ context.Context, id uuid.UUID) (*model.StoredDisposal, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	stored := s.joined(row)
	return &stored, nil
}

func (s *stubDisposalStore) Update(_ context.Context, row model.DisposalRow) error {
	existing, ok := s.rows[row.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.CreatedAt = existing.CreatedAt
	s.rows[row.ID] = row
	return nil
}

func (s *stubDisposalStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.rows, id)
	for i, rowID := range s.order {
		if rowID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *stubDisposalStore) joined(row model.DisposalRow) model.StoredDisposal {
	stored := model.StoredDisposal{Row: row}
	if row.DriverID != nil {
		if driver, ok := s.drivers.drivers[*row.DriverID]; ok {
			stored.Driver = &driver
		}
	}
	return stored
}

type stubExcelGenerator struct {
	material model.MaterialType
	count    int
}

func (g *stubExcelGenerator) Generate(mt model.MaterialType, logs []model.DisposalLog) ([]byte, error) {
	g.material = mt
	g.count = len(logs)
	return []byte("xlsx"), nil
}

type stubPDFGenerator struct{}

func (g *stubPDFGenerator) Generate(model.DisposalLog) ([]byte, error) {
	return []byte("%PDF"), nil
}

// ─────────────────────────────────────────────────────────────────────────────

func newTestService() (*DisposalService, *stubDisposalStore, *stubDriverStore, *stubExcelGenerator) {
	drivers := newStubDriverStore()
	disposals := newStubDisposalStore(drivers)
	excel := &stubExcelGenerator{}
	svc := &DisposalService{
		disposals: disposals,
		drivers:   drivers,
		excel:     excel,
		pdf:       &stubPDFGenerator{},
		now:       func() time.Time { return time.Date(2025, 3, 14, 14, 30, 0, 0, time.UTC) },
		newFolio:  randomFolio,
	}
	return svc, disposals, drivers, excel
}

func manager() model.Principal {
	return model.Principal{UserID: uuid.New(), FullName: "G. Morales", Role: model.RoleManager}
}

func staff() model.Principal {
	return model.Principal{UserID: uuid.New(), FullName: "A. Torres", Role: model.RoleStaff}
}

func metalDetails() material.Fields {
	return material.Fields{
		material.FieldResidueType: "Ferroso",
		material.FieldItem:        "Aluminio",
		material.FieldQuantity:    "12.5",
		material.FieldUnit:        "kg",
	}
}

func TestCreateAppliesCaptureDefaults(t *testing.T) {
	svc, _, drivers, _ := newTestService()
	driver, err := drivers.Create(context.Background(), model.Driver{
		FirstName: "Juan", LastName: "Pérez", Company: "ACME Transport",
	})
	require.NoError(t, err)

	log, err := svc.Create(context.Background(), CreateDisposalInput{
		Principal: staff(),
		Material:  "metal",
		Details:   metalDetails(),
		DriverID:  &driver.ID,
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{5}$`), log.Folio)
	assert.Equal(t, "EHS", log.Department)
	assert.Equal(t, "Residuos", log.Reason)
	assert.Equal(t, "2025-03-14", log.Date.Format("2006-01-02"))
	assert.Equal(t, "14:30", log.DepartureTime)
	assert.Equal(t, "A. Torres", log.AuthorizingPerson, "authorizer defaults to the submitting user")
	assert.Equal(t, "Juan Pérez", log.Driver.Name)
	require.NotNil(t, log.Details.Metal)
	assert.Equal(t, 12.5, log.Details.Metal.Quantity)
}

func TestCreateSurfacesFieldErrors(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateDisposalInput{
		Principal: staff(),
		Material:  "destruidas",
		Details: material.Fields{
			material.FieldResidues: "Uretano",
			material.FieldWeight:   "40",
		},
	})

	var validationErr *material.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, material.FieldArea)
}

func TestCreateUnknownMaterial(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateDisposalInput{
		Principal: staff(),
		Material:  "plasma",
		Details:   material.Fields{},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateMissingDriver(t *testing.T) {
	svc, _, _, _ := newTestService()
	missing := uuid.New()

	_, err := svc.Create(context.Background(), CreateDisposalInput{
		Principal: staff(),
		Material:  "metal",
		Details:   metalDetails(),
		DriverID:  &missing,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMaterialChangeClearsStaleColumns(t *testing.T) {
	svc, disposals, _, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateDisposalInput{
		Principal: staff(),
		Material:  "lodos",
		Details: material.Fields{
			material.FieldResidueName:            "Lodos de pintura",
			material.FieldManifestNumber:         "MX-104",
			material.FieldArea:                   "Pintura",
			material.FieldTransportServiceNumber: "17",
			material.FieldWeightKg:               "120.5",
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), UpdateDisposalInput{
		Principal: staff(),
		ID:        created.ID,
		Material:  "destruidas",
		Details: material.Fields{
			material.FieldResidues: "Uretano",
			material.FieldArea:     "Ensamble",
			material.FieldWeight:   "42",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.MaterialDestruidas, updated.MaterialType)
	assert.Equal(t, created.Folio, updated.Folio, "folio survives edits")

	row := disposals.rows[created.ID]
	assert.Equal(t, 2, row.ExcelID)
	assert.Nil(t, row.ManifestNumber, "lodos-only columns are cleared on material change")
	assert.Nil(t, row.TransportNumServices)
}

func TestDeleteRequiresManager(t *testing.T) {
	svc, disposals, _, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateDisposalInput{
		Principal: staff(),
		Material:  "metal",
		Details:   metalDetails(),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), staff(), created.ID), ErrPermissionDenied)
	require.NoError(t, svc.Delete(context.Background(), manager(), created.ID))
	assert.Empty(t, disposals.rows, "delete is a real store-level delete")
}

func TestListDefaultsToNewestFirst(t *testing.T) {
	svc, _, _, _ := newTestService()

	for _, date := range []string{"2025-03-01", "2025-03-20", "2025-03-10"} {
		_, err := svc.Create(context.Background(), CreateDisposalInput{
			Principal: staff(),
			Material:  "metal",
			Details:   metalDetails(),
			Date:      date,
		})
		require.NoError(t, err)
	}

	logs, err := svc.List(context.Background(), ListDisposalsInput{Principal: staff()})
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "2025-03-20", logs[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-03-01", logs[2].Date.Format("2006-01-02"))
}

func TestSummaryExcludesPieceCounts(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateDisposalInput{
		Principal: staff(),
		Material:  "metal",
		Details:   metalDetails(),
	})
	require.NoError(t, err)

	pieces := metalDetails()
	pieces[material.FieldQuantity] = "5"
	pieces[material.FieldUnit] = "pza"
	_, err = svc.Create(context.Background(), CreateDisposalInput{
		Principal: staff(),
		Material:  "metal",
		Details:   pieces,
	})
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 12.5, summary.TotalWeight)
	assert.Equal(t, 12.5, summary.ByMaterial[model.MaterialMetal])
}

func TestExportExcelFiltersToOneMaterial(t *testing.T) {
	svc, _, _, excel := newTestService()

	_, err := svc.Create(context.Background(), CreateDisposalInput{
		Principal: staff(),
		Material:  "metal",
		Details:   metalDetails(),
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateDisposalInput{
		Principal: staff(),
		Material:  "destruidas",
		Details: material.Fields{
			material.FieldResidues: "Uretano",
			material.FieldArea:     "Ensamble",
			material.FieldWeight:   "42",
		},
	})
	require.NoError(t, err)

	result, err := svc.ExportExcel(context.Background(), ExportExcelInput{
		Principal: staff(),
		Material:  "metal",
	})
	require.NoError(t, err)
	assert.Equal(t, model.MaterialMetal, excel.material)
	assert.Equal(t, 1, excel.count, "only the requested material reaches the renderer")
	assert.Equal(t, "residuos-metal.xlsx", result.FileName)
}

func TestExportExcelNoRecords(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ExportExcel(context.Background(), ExportExcelInput{
		Principal: staff(),
		Material:  "lodos",
	})
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestExportPDF(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateDisposalInput{
		Principal: staff(),
		Material:  "metal",
		Details:   metalDetails(),
	})
	require.NoError(t, err)

	result, err := svc.ExportPDF(context.Background(), staff(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "registro-"+created.Folio+".pdf", result.FileName)
	assert.Equal(t, []byte("%PDF"), result.Content)
}
