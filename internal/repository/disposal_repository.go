package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduardoceto/waste-logs-service/internal/model"
)

type DisposalRepository struct {
	db *gorm.DB
}

func NewDisposalRepository(db *gorm.DB) *DisposalRepository {
	return &DisposalRepository{db: db}
}

const disposalSelect = `
	SELECT
		d.id,
		d.folio,
		d.log_date,
		d.departure_time,
		d.department,
		d.reason,
		d.container_type,
		d.authorizing_person,
		d.excel_id,
		d.quantity,
		d.quantity_type,
		d.waste_type,
		d.waste_name,
		d.area,
		d.transport_num_services,
		d.manifest_number,
		d.remission,
		d.driver_id,
		d.created_at,
		dr.id AS driver_row_id,
		dr.first_name AS driver_first_name,
		dr.last_name AS driver_last_name,
		dr.company AS driver_company,
		dr.origin AS driver_origin,
		dr.destination AS driver_destination,
		dr.plates AS driver_plates,
		dr.economic_number AS driver_economic_number,
		dr.active AS driver_active,
		dr.created_at AS driver_created_at
	FROM disposal_logs d
	LEFT JOIN drivers dr ON dr.id = d.driver_id
`

type disposalJoinRow struct {
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
	DriverRowID          *uuid.UUID
	DriverFirstName      *string
	DriverLastName       *string
	DriverCompany        *string
	DriverOrigin         *string
	DriverDestination    *string
	DriverPlates         *string
	DriverEconomicNumber *string
	DriverActive         *bool
	DriverCreatedAt      *time.Time
}

func (row disposalJoinRow) toStored() model.StoredDisposal {
	stored := model.StoredDisposal{
		Row: model.DisposalRow{
			ID:                   row.ID,
			Folio:                row.Folio,
			LogDate:              row.LogDate,
			DepartureTime:        row.DepartureTime,
			Department:           row.Department,
			Reason:               row.Reason,
			ContainerType:        row.ContainerType,
			AuthorizingPerson:    row.AuthorizingPerson,
			ExcelID:              row.ExcelID,
			Quantity:             row.Quantity,
			QuantityType:         row.QuantityType,
			WasteType:            row.WasteType,
			WasteName:            row.WasteName,
			Area:                 row.Area,
			TransportNumServices: row.TransportNumServices,
			ManifestNumber:       row.ManifestNumber,
			Remission:            row.Remission,
			DriverID:             row.DriverID,
			CreatedAt:            row.CreatedAt,
		},
	}
	if row.DriverRowID != nil {
		stored.Driver = &model.Driver{
			ID:             *row.DriverRowID,
			FirstName:      deref(row.DriverFirstName),
			LastName:       deref(row.DriverLastName),
			Company:        deref(row.DriverCompany),
			Origin:         deref(row.DriverOrigin),
			Destination:    deref(row.DriverDestination),
			Plates:         deref(row.DriverPlates),
			EconomicNumber: deref(row.DriverEconomicNumber),
			Active:         row.DriverActive != nil && *row.DriverActive,
		}
		if row.DriverCreatedAt != nil {
			stored.Driver.CreatedAt = *row.DriverCreatedAt
		}
	}
	return stored
}

func (r *DisposalRepository) Insert(ctx context.Context, row model.DisposalRow) (*model.DisposalRow, error) {
	var saved model.DisposalRow
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO disposal_logs (
			folio,
			log_date,
			departure_time,
			department,
			reason,
			container_type,
			authorizing_person,
			excel_id,
			quantity,
			quantity_type,
			waste_type,
			waste_name,
			area,
			transport_num_services,
			manifest_number,
			remission,
			driver_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING
			id,
			folio,
			log_date,
			departure_time,
			department,
			reason,
			container_type,
			authorizing_person,
			excel_id,
			quantity,
			quantity_type,
			waste_type,
			waste_name,
			area,
			transport_num_services,
			manifest_number,
			remission,
			driver_id,
			created_at
	`,
		row.Folio,
		row.LogDate,
		row.DepartureTime,
		row.Department,
		row.Reason,
		row.ContainerType,
		row.AuthorizingPerson,
		row.ExcelID,
		row.Quantity,
		row.QuantityType,
		row.WasteType,
		row.WasteName,
		row.Area,
		row.TransportNumServices,
		row.ManifestNumber,
		row.Remission,
		row.DriverID,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *DisposalRepository) List(ctx context.Context) ([]model.StoredDisposal, error) {
	var rows []disposalJoinRow
	if err := r.db.WithContext(ctx).Raw(disposalSelect + " ORDER BY d.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	stored := make([]model.StoredDisposal, 0, len(rows))
	for _, row := range rows {
		stored = append(stored, row.toStored())
	}
	return stored, nil
}

func (r *DisposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StoredDisposal, error) {
	var row disposalJoinRow
	if err := r.db.WithContext(ctx).Raw(disposalSelect+" WHERE d.id = ? LIMIT 1", id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	stored := row.toStored()
	return &stored, nil
}

// Update overwrites every encodable column of the row. Columns not used by
// the row's active variant arrive nil, so a material-type change clears the
// previous variant's values instead of leaving them stale.
func (r *DisposalRepository) Update(ctx context.Context, row model.DisposalRow) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE disposal_logs
		SET
			folio = ?,
			log_date = ?,
			departure_time = ?,
			department = ?,
			reason = ?,
			container_type = ?,
			authorizing_person = ?,
			excel_id = ?,
			quantity = ?,
			quantity_type = ?,
			waste_type = ?,
			waste_name = ?,
			area = ?,
			transport_num_services = ?,
			manifest_number = ?,
			remission = ?,
			driver_id = ?
		WHERE id = ?
	`,
		row.Folio,
		row.LogDate,
		row.DepartureTime,
		row.Department,
		row.Reason,
		row.ContainerType,
		row.AuthorizingPerson,
		row.ExcelID,
		row.Quantity,
		row.QuantityType,
		row.WasteType,
		row.WasteName,
		row.Area,
		row.TransportNumServices,
		row.ManifestNumber,
		row.Remission,
		row.DriverID,
		row.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DisposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM disposal_logs WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
