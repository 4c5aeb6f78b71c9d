package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portsrepo "github.com/cmcs-dev/cmcs_backend/internal/core/ports/repositories"
	"github.com/cmcs-dev/cmcs_backend/internal/models"
	"github.com/cmcs-dev/cmcs_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLecturerRepository struct {
	BaseRepository
}

func newPgxLecturerRepository(db *pgxpool.Pool) portsrepo.LecturerRepositoryFacade {
	return &PgxLecturerRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxLecturerRepository implements portsrepo.LecturerRepositoryFacade
var _ portsrepo.LecturerRepositoryFacade = (*PgxLecturerRepository)(nil)

func scanLecturer(row claimRow) (models.Lecturer, error) {
	var m models.Lecturer
	err := row.Scan(
		&m.LecturerID,
		&m.FullName,
		&m.Email,
		&m.ModuleName,
		&m.HourlyRate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxLecturerRepository) FindLecturerByID(ctx context.Context, lecturerID string) (*domain.Lecturer, error) {
	query := `
		SELECT lecturer_id, full_name, email, module_name, hourly_rate,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM lecturers
		WHERE lecturer_id = $1;
	`
	m, err := scanLecturer(r.Pool.QueryRow(ctx, query, lecturerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lecturer by ID %s: %w", lecturerID, err)
	}

	lecturer := mapping.ToDomainLecturer(m)
	return &lecturer, nil
}

func (r *PgxLecturerRepository) FindLecturerByEmail(ctx context.Context, email string) (*domain.Lecturer, error) {
	query := `
		SELECT lecturer_id, full_name, email, module_name, hourly_rate,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM lecturers
		WHERE email = $1;
	`
	m, err := scanLecturer(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lecturer by email: %w", err)
	}

	lecturer := mapping.ToDomainLecturer(m)
	return &lecturer, nil
}

func (r *PgxLecturerRepository) ListLecturers(ctx context.Context, limit int, offset int) ([]domain.Lecturer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT lecturer_id, full_name, email, module_name, hourly_rate,
               created_at, created_by, last_updated_at, last_updated_by
        FROM lecturers
        ORDER BY full_name
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query lecturers: %w", err)
	}
	defer rows.Close()

	modelLecturers := []models.Lecturer{}
	for rows.Next() {
		m, err := scanLecturer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lecturer row: %w", err)
		}
		modelLecturers = append(modelLecturers, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating lecturer rows: %w", rows.Err())
	}

	return mapping.ToDomainLecturerSlice(modelLecturers), nil
}

func (r *PgxLecturerRepository) SaveLecturer(ctx context.Context, lecturer domain.Lecturer) error {
	m := mapping.ToModelLecturer(lecturer)
	query := `
        INSERT INTO lecturers (
            lecturer_id, full_name, email, module_name, hourly_rate,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.LecturerID,
		m.FullName,
		m.Email,
		m.ModuleName,
		m.HourlyRate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save lecturer: %w", err)
	}
	return nil
}

func (r *PgxLecturerRepository) UpdateLecturer(ctx context.Context, lecturer domain.Lecturer) error {
	m := mapping.ToModelLecturer(lecturer)
	query := `
        UPDATE lecturers
        SET full_name = $1, email = $2, module_name = $3, hourly_rate = $4,
            last_updated_at = $5, last_updated_by = $6
        WHERE lecturer_id = $7;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.FullName,
		m.Email,
		m.ModuleName,
		m.HourlyRate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.LecturerID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update lecturer query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("lecturer not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
