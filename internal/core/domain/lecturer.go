package domain

import "github.com/shopspring/decimal"

// Lecturer is the owner of claims and the authoritative source of the hourly
// rate used to validate claim rate consistency.
type Lecturer struct {
	LecturerID string          `json:"lecturerID"` // Primary Key (UUID)
	FullName   string          `json:"fullName"`
	Email      string          `json:"email"`
	ModuleName string          `json:"moduleName"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	AuditFields
}
