package dto

import (
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLecturerRequest defines data for registering a new lecturer.
type CreateLecturerRequest struct {
	FullName   string          `json:"fullName" binding:"required"`
	Email      string          `json:"email" binding:"required,email"`
	ModuleName string          `json:"moduleName" binding:"required"`
	HourlyRate decimal.Decimal `json:"hourlyRate" binding:"required"`
}

// UpdateLecturerRequest defines the data allowed for updating a lecturer.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateLecturerRequest struct {
	FullName   *string          `json:"fullName"`
	Email      *string          `json:"email"`
	ModuleName *string          `json:"moduleName"`
	HourlyRate *decimal.Decimal `json:"hourlyRate"`
}

// LecturerResponse defines the data returned for a lecturer.
type LecturerResponse struct {
	LecturerID    string          `json:"lecturerID"`
	FullName      string          `json:"fullName"`
	Email         string          `json:"email"`
	ModuleName    string          `json:"moduleName"`
	HourlyRate    decimal.Decimal `json:"hourlyRate"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// CreateLecturerResponse returns the new lecturer plus the one-time
// initial password for the provisioned account.
type CreateLecturerResponse struct {
	Lecturer        LecturerResponse `json:"lecturer"`
	InitialPassword string           `json:"initialPassword"`
}

// ToLecturerResponse converts a domain.Lecturer to LecturerResponse DTO.
func ToLecturerResponse(l *domain.Lecturer) LecturerResponse {
	return LecturerResponse{
		LecturerID:    l.LecturerID,
		FullName:      l.FullName,
		Email:         l.Email,
		ModuleName:    l.ModuleName,
		HourlyRate:    l.HourlyRate,
		CreatedAt:     l.CreatedAt,
		LastUpdatedAt: l.LastUpdatedAt,
	}
}

// ListLecturersResponse wraps the list of lecturers.
type ListLecturersResponse struct {
	Lecturers []LecturerResponse `json:"lecturers"`
}

// ToListLecturersResponse converts a slice of domain.Lecturer to DTO.
func ToListLecturersResponse(lecturers []domain.Lecturer) ListLecturersResponse {
	list := make([]LecturerResponse, len(lecturers))
	for i := range lecturers {
		list[i] = ToLecturerResponse(&lecturers[i])
	}
	return ListLecturersResponse{Lecturers: list}
}
