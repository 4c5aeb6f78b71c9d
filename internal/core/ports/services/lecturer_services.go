package services

import (
	"context"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	"github.com/cmcs-dev/cmcs_backend/internal/dto"
)

// LecturerSvcFacade manages lecturer records (an HR responsibility).
type LecturerSvcFacade interface {
	// CreateLecturer adds a lecturer and provisions a linked user account.
	// The generated initial password is returned exactly once.
	CreateLecturer(ctx context.Context, req dto.CreateLecturerRequest, creatorUserID string) (*domain.Lecturer, string, error)

	// UpdateLecturer edits name, email, module and hourly rate.
	UpdateLecturer(ctx context.Context, lecturerID string, req dto.UpdateLecturerRequest, requestingUserID string) (*domain.Lecturer, error)

	GetLecturerByID(ctx context.Context, lecturerID string) (*domain.Lecturer, error)

	ListLecturers(ctx context.Context, limit int, offset int) ([]domain.Lecturer, error)
}
