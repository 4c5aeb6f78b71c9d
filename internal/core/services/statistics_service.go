package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portsrepo "github.com/cmcs-dev/cmcs_backend/internal/core/ports/repositories"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// statisticsService derives summary metrics over the full claim set.
type statisticsService struct {
	claimRepo portsrepo.ClaimReader
}

// NewStatisticsService creates a new statistics service.
func NewStatisticsService(claimRepo portsrepo.ClaimReader) portssvc.StatisticsSvcFacade {
	return &statisticsService{claimRepo: claimRepo}
}

// Ensure statisticsService implements the portssvc.StatisticsSvcFacade interface
var _ portssvc.StatisticsSvcFacade = (*statisticsService)(nil)

// GenerateStatistics recomputes the aggregate from scratch on every call.
// The monetary buckets partition the claim set: every claim lands in exactly
// one of pending, approved, or rejected.
func (s *statisticsService) GenerateStatistics(ctx context.Context) (*domain.ClaimStatistics, error) {
	claims, err := s.claimRepo.FindAllClaims(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.ClaimStatistics{
		TotalClaims:         len(claims),
		TotalAmountClaimed:  decimal.Zero,
		TotalAmountApproved: decimal.Zero,
		TotalAmountPending:  decimal.Zero,
		TotalAmountRejected: decimal.Zero,
		AverageClaimAmount:  decimal.Zero,
		ClaimsByMonth:       map[string]int{},
		ClaimsByLecturer:    map[string]int{},
		GeneratedAt:         time.Now(),
	}

	totalHours := 0
	approvedCount := 0
	rejectedCount := 0
	decidedCount := 0
	processingDays := 0.0

	for i := range claims {
		c := &claims[i]

		switch c.Status {
		case domain.StatusSubmitted:
			stats.SubmittedClaims++
		case domain.StatusApprovedByCoordinator:
			stats.ApprovedByCoordinator++
		case domain.StatusApprovedByManager:
			stats.ApprovedByManager++
		case domain.StatusRejectedByCoordinator, domain.StatusRejectedByManager:
			stats.RejectedClaims++
		case domain.StatusPaymentProcessed:
			stats.PaymentProcessed++
		}

		stats.TotalAmountClaimed = stats.TotalAmountClaimed.Add(c.TotalAmount)
		switch {
		case c.Status == domain.StatusApprovedByManager || c.Status == domain.StatusPaymentProcessed:
			stats.TotalAmountApproved = stats.TotalAmountApproved.Add(c.TotalAmount)
		case c.Status.IsRejected():
			stats.TotalAmountRejected = stats.TotalAmountRejected.Add(c.TotalAmount)
		default:
			stats.TotalAmountPending = stats.TotalAmountPending.Add(c.TotalAmount)
		}

		totalHours += c.HoursWorked

		stats.ClaimsByMonth[c.Month]++
		lecturerName := "Unknown"
		if c.Lecturer != nil {
			lecturerName = c.Lecturer.FullName
		}
		stats.ClaimsByLecturer[lecturerName]++

		if c.Status.IsApproved() {
			approvedCount++
		}
		if c.Status.IsRejected() {
			rejectedCount++
		}
		if c.Status != domain.StatusSubmitted && c.LastUpdatedAt.After(c.SubmissionDate) {
			decidedCount++
			processingDays += c.LastUpdatedAt.Sub(c.SubmissionDate).Hours() / 24
		}
	}

	if len(claims) > 0 {
		count := decimal.NewFromInt(int64(len(claims)))
		stats.AverageClaimAmount = stats.TotalAmountClaimed.Div(count).Round(2)
		stats.AverageHoursPerClaim = float64(totalHours) / float64(len(claims))
		stats.ApprovalRate = float64(approvedCount) / float64(len(claims)) * 100
		stats.RejectionRate = float64(rejectedCount) / float64(len(claims)) * 100
	}
	if decidedCount > 0 {
		stats.AverageProcessingTime = processingDays / float64(decidedCount)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Statistics generated",
		slog.Int("total_claims", stats.TotalClaims),
		slog.String("total_amount_approved", stats.TotalAmountApproved.String()),
	)
	return stats, nil
}
