package mapping

import (
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	"github.com/cmcs-dev/cmcs_backend/internal/models"
)

// ToModelLecturer converts a domain Lecturer to a model Lecturer
func ToModelLecturer(d domain.Lecturer) models.Lecturer {
	return models.Lecturer{
		LecturerID:  d.LecturerID,
		FullName:    d.FullName,
		Email:       d.Email,
		ModuleName:  d.ModuleName,
		HourlyRate:  d.HourlyRate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLecturer converts a model Lecturer to a domain Lecturer
func ToDomainLecturer(m models.Lecturer) domain.Lecturer {
	return domain.Lecturer{
		LecturerID:  m.LecturerID,
		FullName:    m.FullName,
		Email:       m.Email,
		ModuleName:  m.ModuleName,
		HourlyRate:  m.HourlyRate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLecturerSlice converts a slice of model Lecturers to a slice of domain Lecturers
func ToDomainLecturerSlice(ms []models.Lecturer) []domain.Lecturer {
	ds := make([]domain.Lecturer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLecturer(m)
	}
	return ds
}
