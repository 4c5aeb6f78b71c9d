package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portsrepo "github.com/cmcs-dev/cmcs_backend/internal/core/ports/repositories"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/middleware"
	"github.com/cmcs-dev/cmcs_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// ValidationRules holds the thresholds the validation engine checks against.
type ValidationRules struct {
	MaxHoursPerMonth           int
	StandardWorkingHours       int
	MaxHourlyRate              decimal.Decimal
	AutoApproveThreshold       decimal.Decimal
	DocumentRecommendThreshold decimal.Decimal
}

// DefaultValidationRules returns the standard institutional thresholds.
func DefaultValidationRules() ValidationRules {
	return ValidationRules{
		MaxHoursPerMonth:           200,
		StandardWorkingHours:       160,
		MaxHourlyRate:              decimal.NewFromInt(1000),
		AutoApproveThreshold:       decimal.NewFromInt(10000),
		DocumentRecommendThreshold: decimal.NewFromInt(5000),
	}
}

// rateTolerance absorbs rounding noise in rate and total comparisons.
var rateTolerance = decimal.NewFromFloat(0.01)

// minHourlyRate is the smallest payable rate.
var minHourlyRate = decimal.NewFromFloat(0.01)

// validationService checks claims against the business rules.
type validationService struct {
	claimRepo    portsrepo.ClaimReader
	lecturerRepo portsrepo.LecturerReader
	rules        ValidationRules
}

// NewValidationService creates a new validation service.
func NewValidationService(claimRepo portsrepo.ClaimReader, lecturerRepo portsrepo.LecturerReader, rules ValidationRules) portssvc.ValidationSvcFacade {
	return &validationService{
		claimRepo:    claimRepo,
		lecturerRepo: lecturerRepo,
		rules:        rules,
	}
}

// Ensure validationService implements the portssvc.ValidationSvcFacade interface
var _ portssvc.ValidationSvcFacade = (*validationService)(nil)

// ValidateClaim runs every business rule against the claim. The outcome is
// returned as data; a non-nil error only means the rules could not be run.
func (s *validationService) ValidateClaim(ctx context.Context, claim domain.Claim) (*domain.ValidationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lecturer, err := s.lecturerRepo.FindLecturerByID(ctx, claim.LecturerID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to load lecturer during validation", slog.String("claim_id", claim.ClaimID), slog.String("error", err.Error()))
		return systemErrorResult(claim.ClaimID), nil
	}

	duplicate, err := s.claimRepo.FindDuplicateClaim(ctx, claim.LecturerID, claim.Month, claim.ClaimID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check duplicates during validation", slog.String("claim_id", claim.ClaimID), slog.String("error", err.Error()))
		return systemErrorResult(claim.ClaimID), nil
	}

	result := s.evaluate(claim, lecturer, duplicate)

	logger.Info("Claim validation completed",
		slog.String("claim_id", claim.ClaimID),
		slog.Bool("valid", result.IsValid),
		slog.Int("warnings", len(result.Warnings)),
		slog.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func systemErrorResult(claimID string) *domain.ValidationResult {
	return &domain.ValidationResult{
		ClaimID:         claimID,
		IsValid:         false,
		Errors:          []string{"System error during validation. Please contact support."},
		Warnings:        []string{},
		Recommendations: []string{},
	}
}

// evaluate applies the rules in order. Every rule runs; no rule short-circuits
// the ones after it.
func (s *validationService) evaluate(claim domain.Claim, lecturer *domain.Lecturer, duplicate *domain.Claim) *domain.ValidationResult {
	result := &domain.ValidationResult{
		ClaimID:         claim.ClaimID,
		IsValid:         true,
		Errors:          []string{},
		Warnings:        []string{},
		Recommendations: []string{},
	}

	// Rule 1: Check hours worked
	if claim.HoursWorked < 1 || claim.HoursWorked > s.rules.MaxHoursPerMonth {
		result.IsValid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Hours worked (%d) must be between 1 and %d", claim.HoursWorked, s.rules.MaxHoursPerMonth))
	} else if claim.HoursWorked > s.rules.StandardWorkingHours {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Hours worked (%d) exceeds standard monthly hours (%d). Requires justification.", claim.HoursWorked, s.rules.StandardWorkingHours))
	}

	// Rule 2: Check hourly rate
	if claim.HourlyRate.LessThan(minHourlyRate) || claim.HourlyRate.GreaterThan(s.rules.MaxHourlyRate) {
		result.IsValid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Hourly rate (R%s) must be between R0.01 and R%s", claim.HourlyRate.String(), s.rules.MaxHourlyRate.String()))
	}

	// Rule 3: Verify lecturer exists and rate matches
	if lecturer == nil {
		result.IsValid = false
		result.Errors = append(result.Errors, "Lecturer not found in system")
	} else if lecturer.HourlyRate.Sub(claim.HourlyRate).Abs().GreaterThan(rateTolerance) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Claim hourly rate (R%s) differs from lecturer's registered rate (R%s)", claim.HourlyRate.String(), lecturer.HourlyRate.String()))
	}

	// Rule 4: Check for duplicate claims
	if duplicate != nil {
		result.IsValid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Duplicate claim found for %s. Claim #%s already exists.", claim.Month, duplicate.ClaimID))
	}

	// Rule 5: Check total amount calculation
	calculatedTotal := claim.HourlyRate.Mul(decimal.NewFromInt(int64(claim.HoursWorked)))
	if claim.TotalAmount.Sub(calculatedTotal).Abs().GreaterThan(rateTolerance) {
		result.IsValid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Total amount mismatch. Expected: %s, Got: %s", utils.FormatRand(calculatedTotal), utils.FormatRand(claim.TotalAmount)))
	}

	// Rule 6: Supporting document recommendation
	if (claim.SupportingDocument == nil || *claim.SupportingDocument == "") && claim.TotalAmount.GreaterThan(s.rules.DocumentRecommendThreshold) {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("Supporting document recommended for claims over %s", utils.FormatRand(s.rules.DocumentRecommendThreshold)))
	}

	// Rule 7: Auto-approval eligibility
	if claim.TotalAmount.LessThanOrEqual(s.rules.AutoApproveThreshold) &&
		claim.HoursWorked <= s.rules.StandardWorkingHours &&
		len(result.Errors) == 0 &&
		len(result.Warnings) == 0 {
		result.CanAutoApprove = true
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("Claim eligible for automatic approval (under %s threshold)", utils.FormatRand(s.rules.AutoApproveThreshold)))
	}

	return result
}
