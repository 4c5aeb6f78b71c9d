package models

import (
	"github.com/shopspring/decimal"
)

// Lecturer represents a lecturer record as stored in the database.
type Lecturer struct {
	LecturerID string          `db:"lecturer_id"`
	FullName   string          `db:"full_name"`
	Email      string          `db:"email"`
	ModuleName string          `db:"module_name"`
	HourlyRate decimal.Decimal `db:"hourly_rate"`
	AuditFields
}
