package repositories

import (
	"context"
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
)

// ClaimReader defines read operations for claim data
type ClaimReader interface {
	// FindClaimByID retrieves a specific claim by its unique identifier.
	// The lecturer reference is populated.
	FindClaimByID(ctx context.Context, claimID string) (*domain.Claim, error)

	// FindDuplicateClaim retrieves another non-rejected claim for the same
	// lecturer and month, excluding the given claim ID. Returns
	// apperrors.ErrNotFound when no such claim exists.
	FindDuplicateClaim(ctx context.Context, lecturerID string, month string, excludeClaimID string) (*domain.Claim, error)

	// FindClaimsByStatus retrieves claims in any of the given statuses,
	// ordered by submission date.
	FindClaimsByStatus(ctx context.Context, statuses []domain.ClaimStatus) ([]domain.Claim, error)

	// FindClaimsByMonth retrieves all claims for an exact month label.
	FindClaimsByMonth(ctx context.Context, month string) ([]domain.Claim, error)

	// FindClaimsByLecturer retrieves all claims belonging to one lecturer.
	FindClaimsByLecturer(ctx context.Context, lecturerID string) ([]domain.Claim, error)

	// FindAllClaims retrieves the full claim set with lecturer references
	// populated, for statistics and report generation.
	FindAllClaims(ctx context.Context) ([]domain.Claim, error)

	// ListClaims retrieves a paginated list of claims using token-based
	// pagination, newest submissions first.
	ListClaims(ctx context.Context, limit int, nextToken *string) ([]domain.Claim, *string, error)
}

// ClaimWriter defines write operations for claim data
type ClaimWriter interface {
	// SaveClaim inserts a new claim.
	SaveClaim(ctx context.Context, claim domain.Claim) error

	// UpdateClaim persists status, rejection reason and audit changes.
	UpdateClaim(ctx context.Context, claim domain.Claim) error

	// DeleteClaim removes a claim permanently.
	DeleteClaim(ctx context.Context, claimID string) error

	// MarkClaimsPaid transitions the given claims to PAYMENT_PROCESSED in a
	// single database transaction; either every row is updated or none.
	MarkClaimsPaid(ctx context.Context, claimIDs []string, updatedBy string, updatedAt time.Time) error
}

// ClaimRepositoryFacade combines all claim-related repository interfaces
type ClaimRepositoryFacade interface {
	ClaimReader
	ClaimWriter
}
