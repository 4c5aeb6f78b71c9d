package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portsrepo "github.com/cmcs-dev/cmcs_backend/internal/core/ports/repositories"
	"github.com/cmcs-dev/cmcs_backend/internal/models"
	"github.com/cmcs-dev/cmcs_backend/internal/utils/mapping"
	"github.com/cmcs-dev/cmcs_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClaimRepository struct {
	BaseRepository
}

func newPgxClaimRepository(db *pgxpool.Pool) portsrepo.ClaimRepositoryFacade {
	return &PgxClaimRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxClaimRepository implements portsrepo.ClaimRepositoryFacade
var _ portsrepo.ClaimRepositoryFacade = (*PgxClaimRepository)(nil)

// claimSelectColumns lists claim columns joined with the owning lecturer.
const claimSelectColumns = `
	c.claim_id, c.lecturer_id, c.module_name, c.month, c.hours_worked,
	c.hourly_rate, c.total_amount, c.status, c.submission_date,
	c.supporting_document, c.rejection_reason,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by,
	l.lecturer_id, l.full_name, l.email, l.module_name, l.hourly_rate,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by`

type claimRow interface {
	Scan(dest ...any) error
}

func scanClaimWithLecturer(row claimRow) (domain.Claim, error) {
	var modelClaim models.Claim
	var modelLecturer models.Lecturer
	err := row.Scan(
		&modelClaim.ClaimID,
		&modelClaim.LecturerID,
		&modelClaim.ModuleName,
		&modelClaim.Month,
		&modelClaim.HoursWorked,
		&modelClaim.HourlyRate,
		&modelClaim.TotalAmount,
		&modelClaim.Status,
		&modelClaim.SubmissionDate,
		&modelClaim.SupportingDocument,
		&modelClaim.RejectionReason,
		&modelClaim.CreatedAt,
		&modelClaim.CreatedBy,
		&modelClaim.LastUpdatedAt,
		&modelClaim.LastUpdatedBy,
		&modelLecturer.LecturerID,
		&modelLecturer.FullName,
		&modelLecturer.Email,
		&modelLecturer.ModuleName,
		&modelLecturer.HourlyRate,
		&modelLecturer.CreatedAt,
		&modelLecturer.CreatedBy,
		&modelLecturer.LastUpdatedAt,
		&modelLecturer.LastUpdatedBy,
	)
	if err != nil {
		return domain.Claim{}, err
	}

	claim := mapping.ToDomainClaim(modelClaim)
	lecturer := mapping.ToDomainLecturer(modelLecturer)
	claim.Lecturer = &lecturer
	return claim, nil
}

func collectClaims(rows pgx.Rows) ([]domain.Claim, error) {
	defer rows.Close()
	claims := []domain.Claim{}
	for rows.Next() {
		claim, err := scanClaimWithLecturer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim row: %w", err)
		}
		claims = append(claims, claim)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating claim rows: %w", rows.Err())
	}
	return claims, nil
}

func (r *PgxClaimRepository) FindClaimByID(ctx context.Context, claimID string) (*domain.Claim, error) {
	query := `
		SELECT ` + claimSelectColumns + `
		FROM claims c
		JOIN lecturers l ON l.lecturer_id = c.lecturer_id
		WHERE c.claim_id = $1;
	`
	claim, err := scanClaimWithLecturer(r.Pool.QueryRow(ctx, query, claimID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find claim by ID %s: %w", claimID, err)
	}
	return &claim, nil
}

func (r *PgxClaimRepository) FindDuplicateClaim(ctx context.Context, lecturerID string, month string, excludeClaimID string) (*domain.Claim, error) {
	query := `
		SELECT ` + claimSelectColumns + `
		FROM claims c
		JOIN lecturers l ON l.lecturer_id = c.lecturer_id
		WHERE c.lecturer_id = $1
		  AND c.month = $2
		  AND c.claim_id <> $3
		  AND c.status NOT IN ($4, $5)
		ORDER BY c.submission_date
		LIMIT 1;
	`
	claim, err := scanClaimWithLecturer(r.Pool.QueryRow(ctx, query,
		lecturerID, month, excludeClaimID,
		string(domain.StatusRejectedByCoordinator), string(domain.StatusRejectedByManager),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find duplicate claim: %w", err)
	}
	return &claim, nil
}

func (r *PgxClaimRepository) FindClaimsByStatus(ctx context.Context, statuses []domain.ClaimStatus) ([]domain.Claim, error) {
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query := `
		SELECT ` + claimSelectColumns + `
		FROM claims c
		JOIN lecturers l ON l.lecturer_id = c.lecturer_id
		WHERE c.status = ANY($1)
		ORDER BY c.submission_date;
	`
	rows, err := r.Pool.Query(ctx, query, statusStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to query claims by status: %w", err)
	}
	return collectClaims(rows)
}

func (r *PgxClaimRepository) FindClaimsByMonth(ctx context.Context, month string) ([]domain.Claim, error) {
	query := `
		SELECT ` + claimSelectColumns + `
		FROM claims c
		JOIN lecturers l ON l.lecturer_id = c.lecturer_id
		WHERE c.month = $1
		ORDER BY c.submission_date;
	`
	rows, err := r.Pool.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query claims by month: %w", err)
	}
	return collectClaims(rows)
}

func (r *PgxClaimRepository) FindClaimsByLecturer(ctx context.Context, lecturerID string) ([]domain.Claim, error) {
	query := `
		SELECT ` + claimSelectColumns + `
		FROM claims c
		JOIN lecturers l ON l.lecturer_id = c.lecturer_id
		WHERE c.lecturer_id = $1
		ORDER BY c.submission_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, lecturerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query claims by lecturer: %w", err)
	}
	return collectClaims(rows)
}

func (r *PgxClaimRepository) FindAllClaims(ctx context.Context) ([]domain.Claim, error) {
	query := `
		SELECT ` + claimSelectColumns + `
		FROM claims c
		JOIN lecturers l ON l.lecturer_id = c.lecturer_id
		ORDER BY c.submission_date;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all claims: %w", err)
	}
	return collectClaims(rows)
}

func (r *PgxClaimRepository) ListClaims(ctx context.Context, limit int, nextToken *string) ([]domain.Claim, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + claimSelectColumns + `
		FROM claims c
		JOIN lecturers l ON l.lecturer_id = c.lecturer_id
	`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		submissionDate, claimID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` WHERE (c.submission_date, c.claim_id) < ($1, $2)`
		args = append(args, submissionDate, claimID)
	}
	// Fetch one extra row to detect whether another page exists
	query += fmt.Sprintf(` ORDER BY c.submission_date DESC, c.claim_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query claims page: %w", err)
	}
	claims, err := collectClaims(rows)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(claims) > limit {
		claims = claims[:limit]
		last := claims[len(claims)-1]
		token := pagination.EncodeToken(last.SubmissionDate, last.ClaimID)
		newNextToken = &token
	}
	return claims, newNextToken, nil
}

func (r *PgxClaimRepository) SaveClaim(ctx context.Context, claim domain.Claim) error {
	modelClaim := mapping.ToModelClaim(claim)
	query := `
        INSERT INTO claims (
            claim_id, lecturer_id, module_name, month, hours_worked,
            hourly_rate, total_amount, status, submission_date,
            supporting_document, rejection_reason,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.Pool.Exec(ctx, query,
		modelClaim.ClaimID,
		modelClaim.LecturerID,
		modelClaim.ModuleName,
		modelClaim.Month,
		modelClaim.HoursWorked,
		modelClaim.HourlyRate,
		modelClaim.TotalAmount,
		modelClaim.Status,
		modelClaim.SubmissionDate,
		modelClaim.SupportingDocument,
		modelClaim.RejectionReason,
		modelClaim.CreatedAt,
		modelClaim.CreatedBy,
		modelClaim.LastUpdatedAt,
		modelClaim.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save claim: %w", err)
	}
	return nil
}

func (r *PgxClaimRepository) UpdateClaim(ctx context.Context, claim domain.Claim) error {
	modelClaim := mapping.ToModelClaim(claim)
	query := `
        UPDATE claims
        SET status = $1, rejection_reason = $2, supporting_document = $3,
            last_updated_at = $4, last_updated_by = $5
        WHERE claim_id = $6;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelClaim.Status,
		modelClaim.RejectionReason,
		modelClaim.SupportingDocument,
		modelClaim.LastUpdatedAt,
		modelClaim.LastUpdatedBy,
		modelClaim.ClaimID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update claim query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("claim not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxClaimRepository) DeleteClaim(ctx context.Context, claimID string) error {
	query := `DELETE FROM claims WHERE claim_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, claimID)
	if err != nil {
		return fmt.Errorf("failed to delete claim: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("claim not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxClaimRepository) MarkClaimsPaid(ctx context.Context, claimIDs []string, updatedBy string, updatedAt time.Time) error {
	if len(claimIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        UPDATE claims
        SET status = $1, last_updated_at = $2, last_updated_by = $3
        WHERE claim_id = ANY($4) AND status = $5;
    `
	cmdTag, err := tx.Exec(ctx, query,
		string(domain.StatusPaymentProcessed),
		updatedAt,
		updatedBy,
		claimIDs,
		string(domain.StatusApprovedByManager),
	)
	if err != nil {
		return fmt.Errorf("failed to mark claims paid: %w", err)
	}
	// Every selected claim must still be verified; a partial match means a
	// concurrent update moved one of them, so nothing is paid.
	if cmdTag.RowsAffected() != int64(len(claimIDs)) {
		return fmt.Errorf("expected %d claims to update, got %d: %w", len(claimIDs), cmdTag.RowsAffected(), apperrors.ErrConflict)
	}

	return r.Commit(ctx, tx)
}
