package repositories

import (
	"context"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
)

// LecturerReader defines read operations for lecturer data
type LecturerReader interface {
	// FindLecturerByID retrieves a lecturer by its unique identifier.
	FindLecturerByID(ctx context.Context, lecturerID string) (*domain.Lecturer, error)

	// FindLecturerByEmail retrieves a lecturer by email address.
	FindLecturerByEmail(ctx context.Context, email string) (*domain.Lecturer, error)

	// ListLecturers retrieves lecturers ordered by full name.
	ListLecturers(ctx context.Context, limit int, offset int) ([]domain.Lecturer, error)
}

// LecturerWriter defines write operations for lecturer data
type LecturerWriter interface {
	// SaveLecturer inserts a new lecturer.
	SaveLecturer(ctx context.Context, lecturer domain.Lecturer) error

	// UpdateLecturer persists changes to name, email, module and rate.
	UpdateLecturer(ctx context.Context, lecturer domain.Lecturer) error
}

// LecturerRepositoryFacade combines all lecturer-related repository interfaces
type LecturerRepositoryFacade interface {
	LecturerReader
	LecturerWriter
}
