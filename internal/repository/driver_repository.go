package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduardoceto/waste-logs-service/internal/model"
)

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) List(ctx context.Context, includeInactive bool) ([]model.Driver, error) {
	query := `
		SELECT id, first_name, last_name, company, origin, destination, plates, economic_number, active, created_at
		FROM drivers
	`
	if !includeInactive {
		query += " WHERE active = TRUE"
	}
	query += " ORDER BY last_name ASC, first_name ASC"

	var drivers []model.Driver
	if err := r.db.WithContext(ctx).Raw(query).Scan(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *DriverRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	var driver model.Driver
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, first_name, last_name, company, origin, destination, plates, economic_number, active, created_at
		FROM drivers
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&driver).Error; err != nil {
		return nil, err
	}
	if driver.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &driver, nil
}

func (r *DriverRepository) Create(ctx context.Context, driver model.Driver) (*model.Driver, error) {
	var saved model.Driver
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO drivers (first_name, last_name, company, origin, destination, plates, economic_number, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, TRUE)
		RETURNING id, first_name, last_name, company, origin, destination, plates, economic_number, active, created_at
	`,
		driver.FirstName,
		driver.LastName,
		driver.Company,
		driver.Origin,
		driver.Destination,
		driver.Plates,
		driver.EconomicNumber,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *DriverRepository) Update(ctx context.Context, driver model.Driver) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE drivers
		SET
			first_name = ?,
			last_name = ?,
			company = ?,
			origin = ?,
			destination = ?,
			plates = ?,
			economic_number = ?
		WHERE id = ?
	`,
		driver.FirstName,
		driver.LastName,
		driver.Company,
		driver.Origin,
		driver.Destination,
		driver.Plates,
		driver.EconomicNumber,
		driver.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetActive toggles the soft-delete flag. Drivers are never hard-deleted so
// historical disposal rows keep resolving their join.
func (r *DriverRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).Exec(`UPDATE drivers SET active = ? WHERE id = ?`, active, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
