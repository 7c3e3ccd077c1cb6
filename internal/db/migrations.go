package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		company TEXT NOT NULL,
		origin TEXT NOT NULL DEFAULT '',
		destination TEXT NOT NULL DEFAULT '',
		plates TEXT NOT NULL DEFAULT '',
		economic_number TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS disposal_logs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		folio VARCHAR(16) NOT NULL,
		log_date TEXT NOT NULL DEFAULT '',
		departure_time TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL DEFAULT '',
		container_type TEXT NOT NULL DEFAULT '',
		authorizing_person TEXT NOT NULL DEFAULT '',
		excel_id INT NOT NULL,
		quantity NUMERIC(18,3) NOT NULL DEFAULT 0,
		quantity_type TEXT,
		waste_type TEXT,
		waste_name TEXT,
		area TEXT,
		transport_num_services TEXT,
		manifest_number TEXT,
		remission NUMERIC(18,2),
		driver_id UUID REFERENCES drivers(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_disposal_logs_folio ON disposal_logs (folio);`,
	`CREATE INDEX IF NOT EXISTS idx_disposal_logs_excel_id ON disposal_logs (excel_id);`,
	`CREATE INDEX IF NOT EXISTS idx_disposal_logs_driver_id ON disposal_logs (driver_id) WHERE driver_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_drivers_active ON drivers (active);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
