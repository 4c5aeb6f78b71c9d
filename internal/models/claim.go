package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Claim represents a lecturer's monthly work claim as stored in the database.
// Status is persisted as its canonical string form.
type Claim struct {
	ClaimID            string          `db:"claim_id"`
	LecturerID         string          `db:"lecturer_id"`
	ModuleName         string          `db:"module_name"`
	Month              string          `db:"month"`
	HoursWorked        int             `db:"hours_worked"`
	HourlyRate         decimal.Decimal `db:"hourly_rate"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	Status             string          `db:"status"`
	SubmissionDate     time.Time       `db:"submission_date"`
	SupportingDocument sql.NullString  `db:"supporting_document"`
	RejectionReason    sql.NullString  `db:"rejection_reason"`
	AuditFields
}
