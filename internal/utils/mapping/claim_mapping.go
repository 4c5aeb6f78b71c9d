package mapping

import (
	"database/sql"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	"github.com/cmcs-dev/cmcs_backend/internal/models"
)

// ToModelClaim converts a domain Claim to a model Claim
func ToModelClaim(d domain.Claim) models.Claim {
	return models.Claim{
		ClaimID:            d.ClaimID,
		LecturerID:         d.LecturerID,
		ModuleName:         d.ModuleName,
		Month:              d.Month,
		HoursWorked:        d.HoursWorked,
		HourlyRate:         d.HourlyRate,
		TotalAmount:        d.TotalAmount,
		Status:             string(d.Status),
		SubmissionDate:     d.SubmissionDate,
		SupportingDocument: toNullString(d.SupportingDocument),
		RejectionReason:    toNullString(d.RejectionReason),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClaim converts a model Claim to a domain Claim
func ToDomainClaim(m models.Claim) domain.Claim {
	status, _ := domain.ParseClaimStatus(m.Status)
	return domain.Claim{
		ClaimID:            m.ClaimID,
		LecturerID:         m.LecturerID,
		ModuleName:         m.ModuleName,
		Month:              m.Month,
		HoursWorked:        m.HoursWorked,
		HourlyRate:         m.HourlyRate,
		TotalAmount:        m.TotalAmount,
		Status:             status,
		SubmissionDate:     m.SubmissionDate,
		SupportingDocument: fromNullString(m.SupportingDocument),
		RejectionReason:    fromNullString(m.RejectionReason),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClaimSlice converts a slice of model Claims to a slice of domain Claims
func ToDomainClaimSlice(ms []models.Claim) []domain.Claim {
	ds := make([]domain.Claim, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClaim(m)
	}
	return ds
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
