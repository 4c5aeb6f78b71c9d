package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portsrepo "github.com/cmcs-dev/cmcs_backend/internal/core/ports/repositories"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/dto"
	"github.com/cmcs-dev/cmcs_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// claimService implements the claim workflow operations.
type claimService struct {
	claimRepo     portsrepo.ClaimRepositoryFacade
	lecturerRepo  portsrepo.LecturerReader
	automationSvc portssvc.AutomationSvcFacade

	// autoVerifyOnSubmit runs the automation engine on every new claim.
	autoVerifyOnSubmit bool
}

// NewClaimService creates a new claim workflow service.
func NewClaimService(claimRepo portsrepo.ClaimRepositoryFacade, lecturerRepo portsrepo.LecturerReader, automationSvc portssvc.AutomationSvcFacade, autoVerifyOnSubmit bool) portssvc.ClaimSvcFacade {
	return &claimService{
		claimRepo:          claimRepo,
		lecturerRepo:       lecturerRepo,
		automationSvc:      automationSvc,
		autoVerifyOnSubmit: autoVerifyOnSubmit,
	}
}

// Ensure claimService implements the portssvc.ClaimSvcFacade interface
var _ portssvc.ClaimSvcFacade = (*claimService)(nil)

func (s *claimService) GetClaimByID(ctx context.Context, claimID string) (*domain.Claim, error) {
	return s.claimRepo.FindClaimByID(ctx, claimID)
}

func (s *claimService) ListClaims(ctx context.Context, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error) {
	// Month and status filters return the full matching set; only the
	// unfiltered listing is token-paginated.
	if params.Month != nil && *params.Month != "" {
		claims, err := s.claimRepo.FindClaimsByMonth(ctx, *params.Month)
		if err != nil {
			return nil, err
		}
		resp := dto.ToListClaimsResponse(claims, nil)
		return &resp, nil
	}

	if params.Status != nil && *params.Status != "" {
		status, err := domain.ParseClaimStatus(*params.Status)
		if err != nil {
			return nil, err
		}
		claims, err := s.claimRepo.FindClaimsByStatus(ctx, []domain.ClaimStatus{status})
		if err != nil {
			return nil, err
		}
		resp := dto.ToListClaimsResponse(claims, nil)
		return &resp, nil
	}

	claims, nextToken, err := s.claimRepo.ListClaims(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListClaimsResponse(claims, nextToken)
	return &resp, nil
}

func (s *claimService) ListClaimsByLecturer(ctx context.Context, lecturerID string) ([]domain.Claim, error) {
	return s.claimRepo.FindClaimsByLecturer(ctx, lecturerID)
}

// SubmitClaim creates a new claim. The hourly rate is snapshotted from the
// lecturer's current record so later rate changes never alter submitted
// claims.
func (s *claimService) SubmitClaim(ctx context.Context, lecturerID string, req dto.SubmitClaimRequest, creatorUserID string) (*domain.Claim, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lecturer, err := s.lecturerRepo.FindLecturerByID(ctx, lecturerID)
	if err != nil {
		return nil, fmt.Errorf("lecturer lookup failed: %w", err)
	}

	now := time.Now()
	claim := domain.Claim{
		ClaimID:            uuid.NewString(),
		LecturerID:         lecturer.LecturerID,
		ModuleName:         req.ModuleName,
		Month:              req.Month,
		HoursWorked:        req.HoursWorked,
		HourlyRate:         lecturer.HourlyRate,
		Status:             domain.StatusSubmitted,
		SubmissionDate:     now,
		SupportingDocument: req.SupportingDocument,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	claim.TotalAmount = claim.CalculateTotal()

	if err := s.claimRepo.SaveClaim(ctx, claim); err != nil {
		return nil, err
	}
	logger.Info("Claim submitted",
		slog.String("claim_id", claim.ClaimID),
		slog.String("lecturer_id", lecturer.LecturerID),
		slog.String("month", claim.Month),
	)

	if s.autoVerifyOnSubmit {
		// Automation failures never fail the submission
		if _, err := s.automationSvc.AutoVerifyClaim(ctx, claim.ClaimID); err != nil {
			logger.Error("Auto-verification failed after submit", slog.String("claim_id", claim.ClaimID), slog.String("error", err.Error()))
		}
		return s.claimRepo.FindClaimByID(ctx, claim.ClaimID)
	}

	claim.Lecturer = lecturer
	return &claim, nil
}

// ApproveClaim records coordinator approval of a submitted claim.
func (s *claimService) ApproveClaim(ctx context.Context, claimID string, actorUserID string) (*domain.Claim, error) {
	return s.decide(ctx, claimID, domain.ActionApprove, domain.RoleCoordinator, "", actorUserID, "coordinator-approved")
}

// VerifyClaim records manager verification of a coordinator-approved claim.
func (s *claimService) VerifyClaim(ctx context.Context, claimID string, actorUserID string) (*domain.Claim, error) {
	return s.decide(ctx, claimID, domain.ActionVerify, domain.RoleManager, "", actorUserID, "approved")
}

// RejectClaim rejects a claim on behalf of the acting role with a mandatory
// reason.
func (s *claimService) RejectClaim(ctx context.Context, claimID string, reason string, actingRole domain.Role, actorUserID string) (*domain.Claim, error) {
	return s.decide(ctx, claimID, domain.ActionReject, actingRole, reason, actorUserID, "rejected")
}

func (s *claimService) decide(ctx context.Context, claimID string, action domain.ClaimAction, actingRole domain.Role, reason string, actorUserID string, notifyAction string) (*domain.Claim, error) {
	claim, err := s.claimRepo.FindClaimByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	if err := claim.Transition(action, actingRole, reason); err != nil {
		return nil, err
	}

	claim.LastUpdatedAt = time.Now()
	claim.LastUpdatedBy = actorUserID
	if err := s.claimRepo.UpdateClaim(ctx, *claim); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Claim decision recorded",
		slog.String("claim_id", claimID),
		slog.String("action", string(action)),
		slog.String("new_status", string(claim.Status)),
	)
	s.automationSvc.NotifyStakeholders(ctx, *claim, notifyAction)
	return claim, nil
}

// DeleteClaim removes a claim when the acting role may delete it in its
// current status.
func (s *claimService) DeleteClaim(ctx context.Context, claimID string, actingRole domain.Role, actorUserID string) error {
	claim, err := s.claimRepo.FindClaimByID(ctx, claimID)
	if err != nil {
		return err
	}

	if !claim.DeletableBy(actingRole) {
		return fmt.Errorf("%w: role %s may not delete a claim in status %s",
			apperrors.ErrForbidden, actingRole, claim.Status.Display())
	}

	if err := s.claimRepo.DeleteClaim(ctx, claimID); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Claim deleted",
		slog.String("claim_id", claimID),
		slog.String("deleted_by", actorUserID),
	)
	return nil
}

// ProcessBatchPayment pays every manager-approved claim of the month in a
// single transaction. Either all of them move to PAYMENT_PROCESSED or none do.
func (s *claimService) ProcessBatchPayment(ctx context.Context, month string, actorUserID string) (*domain.BatchPaymentResult, error) {
	claims, err := s.claimRepo.FindClaimsByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	payable := make([]domain.Claim, 0, len(claims))
	for _, c := range claims {
		if c.Status == domain.StatusApprovedByManager {
			payable = append(payable, c)
		}
	}
	if len(payable) == 0 {
		return nil, fmt.Errorf("%w: no verified claims for %s", apperrors.ErrNotFound, month)
	}

	claimIDs := make([]string, len(payable))
	total := decimal.Zero
	for i, c := range payable {
		claimIDs[i] = c.ClaimID
		total = total.Add(c.TotalAmount)
	}

	processedAt := time.Now()
	if err := s.claimRepo.MarkClaimsPaid(ctx, claimIDs, actorUserID, processedAt); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Batch payment processed",
		slog.String("month", month),
		slog.Int("claims_paid", len(claimIDs)),
		slog.String("total_amount", total.String()),
	)
	return &domain.BatchPaymentResult{
		Month:       month,
		ClaimsPaid:  len(claimIDs),
		TotalAmount: total,
		ProcessedAt: processedAt,
	}, nil
}
