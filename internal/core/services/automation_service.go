package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portsrepo "github.com/cmcs-dev/cmcs_backend/internal/core/ports/repositories"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/middleware"
)

// automationActorID is recorded in audit fields when the system itself
// decides a claim.
const automationActorID = "system"

// automationService composes the validation engine and the claim state
// machine to decide claims without human input.
type automationService struct {
	claimRepo     portsrepo.ClaimRepositoryFacade
	validationSvc portssvc.ValidationSvcFacade
	notifier      portssvc.NotificationSink
}

// NewAutomationService creates a new automation service.
func NewAutomationService(claimRepo portsrepo.ClaimRepositoryFacade, validationSvc portssvc.ValidationSvcFacade, notifier portssvc.NotificationSink) portssvc.AutomationSvcFacade {
	return &automationService{
		claimRepo:     claimRepo,
		validationSvc: validationSvc,
		notifier:      notifier,
	}
}

// Ensure automationService implements the portssvc.AutomationSvcFacade interface
var _ portssvc.AutomationSvcFacade = (*automationService)(nil)

// AutoVerifyClaim validates the claim and takes at most one automatic action:
// approve when eligible, reject when validation errors exist, or flag for
// manual review when only warnings remain. Only submitted claims are
// auto-actionable; a claim past coordinator review is left untouched.
func (s *automationService) AutoVerifyClaim(ctx context.Context, claimID string) (*domain.ValidationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	claim, err := s.claimRepo.FindClaimByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	result, err := s.validationSvc.ValidateClaim(ctx, *claim)
	if err != nil {
		return nil, err
	}

	switch {
	case result.CanAutoApprove && claim.Status == domain.StatusSubmitted:
		if err := claim.Transition(domain.ActionApprove, domain.RoleAutomation, ""); err != nil {
			return nil, err
		}
		if err := s.persistDecision(ctx, claim); err != nil {
			return nil, err
		}
		result.ActionTaken = "Auto-approved by system"
		logger.Info("Claim auto-approved", slog.String("claim_id", claimID))
		s.NotifyStakeholders(ctx, *claim, "auto-approved")

	case len(result.Errors) > 0 && claim.Status == domain.StatusSubmitted:
		reason := "Automatic rejection: " + strings.Join(result.Errors, "; ")
		if err := claim.Transition(domain.ActionReject, domain.RoleAutomation, reason); err != nil {
			return nil, err
		}
		if err := s.persistDecision(ctx, claim); err != nil {
			return nil, err
		}
		result.ActionTaken = "Auto-rejected due to validation errors"
		logger.Warn("Claim auto-rejected", slog.String("claim_id", claimID), slog.String("reason", reason))
		s.NotifyStakeholders(ctx, *claim, "auto-rejected")

	case len(result.Warnings) > 0:
		result.ActionTaken = "Flagged for manual review due to warnings"
		logger.Info("Claim flagged for manual review", slog.String("claim_id", claimID))
	}

	return result, nil
}

func (s *automationService) persistDecision(ctx context.Context, claim *domain.Claim) error {
	claim.LastUpdatedAt = time.Now()
	claim.LastUpdatedBy = automationActorID
	return s.claimRepo.UpdateClaim(ctx, *claim)
}

// GetClaimsRequiringAttention returns the claims awaiting action from the
// given role, oldest submissions first. Roles with no queue get an empty list.
func (s *automationService) GetClaimsRequiringAttention(ctx context.Context, role domain.Role) ([]domain.Claim, error) {
	var statuses []domain.ClaimStatus
	switch role {
	case domain.RoleCoordinator:
		statuses = []domain.ClaimStatus{domain.StatusSubmitted}
	case domain.RoleManager:
		statuses = []domain.ClaimStatus{domain.StatusApprovedByCoordinator}
	case domain.RoleHR:
		statuses = []domain.ClaimStatus{domain.StatusApprovedByManager}
	default:
		return []domain.Claim{}, nil
	}

	return s.claimRepo.FindClaimsByStatus(ctx, statuses)
}

// NotifyStakeholders delegates to the notification sink. Notification failures
// never fail the workflow; they are logged and swallowed.
func (s *automationService) NotifyStakeholders(ctx context.Context, claim domain.Claim, action string) {
	if err := s.notifier.Notify(ctx, claim, action); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to notify stakeholders",
			slog.String("claim_id", claim.ClaimID),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}
