package services

import (
	"context"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
)

// ValidationSvcFacade is the business-rule validation engine. Validation is
// deterministic and has no side effects; the result is returned as data,
// never raised as an error.
type ValidationSvcFacade interface {
	ValidateClaim(ctx context.Context, claim domain.Claim) (*domain.ValidationResult, error)
}

// AutomationSvcFacade composes validation and the status state machine to
// decide an automatic outcome for a claim.
type AutomationSvcFacade interface {
	// AutoVerifyClaim validates the claim and applies at most one automatic
	// decision: approve, reject, or flag for manual review.
	AutoVerifyClaim(ctx context.Context, claimID string) (*domain.ValidationResult, error)

	// GetClaimsRequiringAttention returns the claims awaiting action from
	// the given role. Unknown roles yield an empty result.
	GetClaimsRequiringAttention(ctx context.Context, role domain.Role) ([]domain.Claim, error)

	// NotifyStakeholders delegates to the notification sink. Best effort;
	// failures are logged and swallowed.
	NotifyStakeholders(ctx context.Context, claim domain.Claim, action string)
}

// StatisticsSvcFacade derives summary metrics from the full claim set.
type StatisticsSvcFacade interface {
	GenerateStatistics(ctx context.Context) (*domain.ClaimStatistics, error)
}
