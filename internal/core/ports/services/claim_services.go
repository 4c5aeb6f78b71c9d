package services

import (
	"context"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	"github.com/cmcs-dev/cmcs_backend/internal/dto"
)

// ClaimReaderSvc defines read operations for claim data
type ClaimReaderSvc interface {
	// GetClaimByID retrieves a specific claim by its ID.
	GetClaimByID(ctx context.Context, claimID string) (*domain.Claim, error)

	// ListClaims retrieves a paginated, optionally filtered list of claims.
	ListClaims(ctx context.Context, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error)

	// ListClaimsByLecturer retrieves every claim belonging to one lecturer.
	ListClaimsByLecturer(ctx context.Context, lecturerID string) ([]domain.Claim, error)
}

// ClaimWriterSvc defines workflow operations that create or mutate claims
type ClaimWriterSvc interface {
	// SubmitClaim creates a new claim for a lecturer. The hourly rate is
	// snapshotted from the lecturer record and the total is computed.
	SubmitClaim(ctx context.Context, lecturerID string, req dto.SubmitClaimRequest, creatorUserID string) (*domain.Claim, error)

	// ApproveClaim moves a submitted claim to coordinator approval.
	ApproveClaim(ctx context.Context, claimID string, actorUserID string) (*domain.Claim, error)

	// RejectClaim rejects a claim on behalf of the acting role. Coordinators
	// reject submitted claims; managers reject coordinator-approved claims.
	RejectClaim(ctx context.Context, claimID string, reason string, actingRole domain.Role, actorUserID string) (*domain.Claim, error)

	// VerifyClaim moves a coordinator-approved claim to manager approval.
	VerifyClaim(ctx context.Context, claimID string, actorUserID string) (*domain.Claim, error)

	// DeleteClaim removes a claim if the acting role may delete it in its
	// current status.
	DeleteClaim(ctx context.Context, claimID string, actingRole domain.Role, actorUserID string) error

	// ProcessBatchPayment transitions every manager-approved claim of the
	// month to PAYMENT_PROCESSED, all-or-nothing.
	ProcessBatchPayment(ctx context.Context, month string, actorUserID string) (*domain.BatchPaymentResult, error)
}

// ClaimSvcFacade combines all claim workflow service interfaces
type ClaimSvcFacade interface {
	ClaimReaderSvc
	ClaimWriterSvc
}
