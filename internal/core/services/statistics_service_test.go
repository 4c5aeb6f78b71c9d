package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type StatisticsServiceTestSuite struct {
	suite.Suite
	mockClaimRepo *MockClaimRepository
	statisticsSvc portssvc.StatisticsSvcFacade
	ctx           context.Context
}

func (suite *StatisticsServiceTestSuite) SetupTest() {
	suite.mockClaimRepo = new(MockClaimRepository)
	suite.statisticsSvc = services.NewStatisticsService(suite.mockClaimRepo)
	suite.ctx = context.Background()
}

func statClaim(status domain.ClaimStatus, amount int64, hours int, month string, lecturer *domain.Lecturer) domain.Claim {
	return domain.Claim{
		ClaimID:     "claim-" + string(status),
		Status:      status,
		TotalAmount: decimal.NewFromInt(amount),
		HoursWorked: hours,
		Month:       month,
		Lecturer:    lecturer,
	}
}

func (suite *StatisticsServiceTestSuite) TestGenerateStatistics_EmptyClaimSet() {
	suite.mockClaimRepo.On("FindAllClaims", suite.ctx).Return([]domain.Claim{}, nil).Once()

	stats, err := suite.statisticsSvc.GenerateStatistics(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(0, stats.TotalClaims)
	suite.True(stats.TotalAmountClaimed.IsZero())
	suite.True(stats.AverageClaimAmount.IsZero())
	suite.Zero(stats.ApprovalRate)
	suite.Zero(stats.RejectionRate)
	suite.Empty(stats.ClaimsByMonth)
	suite.Empty(stats.ClaimsByLecturer)
	suite.WithinDuration(time.Now(), stats.GeneratedAt, time.Minute)
}

func (suite *StatisticsServiceTestSuite) TestGenerateStatistics_StatusCounts() {
	claims := []domain.Claim{
		statClaim(domain.StatusSubmitted, 100, 10, "January 2025", nil),
		statClaim(domain.StatusSubmitted, 100, 10, "January 2025", nil),
		statClaim(domain.StatusApprovedByCoordinator, 100, 10, "January 2025", nil),
		statClaim(domain.StatusApprovedByManager, 100, 10, "February 2025", nil),
		statClaim(domain.StatusRejectedByCoordinator, 100, 10, "February 2025", nil),
		statClaim(domain.StatusRejectedByManager, 100, 10, "February 2025", nil),
		statClaim(domain.StatusPaymentProcessed, 100, 10, "March 2025", nil),
	}
	suite.mockClaimRepo.On("FindAllClaims", suite.ctx).Return(claims, nil).Once()

	stats, err := suite.statisticsSvc.GenerateStatistics(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(7, stats.TotalClaims)
	suite.Equal(2, stats.SubmittedClaims)
	suite.Equal(1, stats.ApprovedByCoordinator)
	suite.Equal(1, stats.ApprovedByManager)
	suite.Equal(2, stats.RejectedClaims)
	suite.Equal(1, stats.PaymentProcessed)
}

func (suite *StatisticsServiceTestSuite) TestGenerateStatistics_MonetaryBucketsPartitionTotal() {
	claims := []domain.Claim{
		statClaim(domain.StatusSubmitted, 1000, 10, "January 2025", nil),
		statClaim(domain.StatusApprovedByCoordinator, 2000, 10, "January 2025", nil),
		statClaim(domain.StatusApprovedByManager, 4000, 10, "January 2025", nil),
		statClaim(domain.StatusPaymentProcessed, 8000, 10, "January 2025", nil),
		statClaim(domain.StatusRejectedByManager, 500, 10, "January 2025", nil),
	}
	suite.mockClaimRepo.On("FindAllClaims", suite.ctx).Return(claims, nil).Once()

	stats, err := suite.statisticsSvc.GenerateStatistics(suite.ctx)

	suite.Require().NoError(err)
	suite.True(stats.TotalAmountClaimed.Equal(decimal.NewFromInt(15500)))
	// Coordinator approval alone is still pending money
	suite.True(stats.TotalAmountPending.Equal(decimal.NewFromInt(3000)))
	suite.True(stats.TotalAmountApproved.Equal(decimal.NewFromInt(12000)))
	suite.True(stats.TotalAmountRejected.Equal(decimal.NewFromInt(500)))

	sum := stats.TotalAmountPending.Add(stats.TotalAmountApproved).Add(stats.TotalAmountRejected)
	suite.True(sum.Equal(stats.TotalAmountClaimed))
}

func (suite *StatisticsServiceTestSuite) TestGenerateStatistics_AveragesAndRates() {
	claims := []domain.Claim{
		statClaim(domain.StatusApprovedByCoordinator, 1000, 10, "January 2025", nil),
		statClaim(domain.StatusApprovedByManager, 2000, 20, "January 2025", nil),
		statClaim(domain.StatusRejectedByCoordinator, 3000, 30, "January 2025", nil),
		statClaim(domain.StatusSubmitted, 4001, 40, "January 2025", nil),
	}
	suite.mockClaimRepo.On("FindAllClaims", suite.ctx).Return(claims, nil).Once()

	stats, err := suite.statisticsSvc.GenerateStatistics(suite.ctx)

	suite.Require().NoError(err)
	// 10001 / 4 = 2500.25
	suite.True(stats.AverageClaimAmount.Equal(decimal.NewFromFloat(2500.25)))
	suite.InDelta(25.0, stats.AverageHoursPerClaim, 0.001)
	// Approved counts coordinator approval and onward
	suite.InDelta(50.0, stats.ApprovalRate, 0.001)
	suite.InDelta(25.0, stats.RejectionRate, 0.001)
}

func (suite *StatisticsServiceTestSuite) TestGenerateStatistics_AverageProcessingTime() {
	submitted := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	decidedAfterTwoDays := statClaim(domain.StatusApprovedByCoordinator, 100, 10, "January 2025", nil)
	decidedAfterTwoDays.SubmissionDate = submitted
	decidedAfterTwoDays.LastUpdatedAt = submitted.Add(48 * time.Hour)
	decidedAfterThreeDays := statClaim(domain.StatusRejectedByManager, 100, 10, "January 2025", nil)
	decidedAfterThreeDays.SubmissionDate = submitted
	decidedAfterThreeDays.LastUpdatedAt = submitted.Add(72 * time.Hour)
	awaitingDecision := statClaim(domain.StatusSubmitted, 100, 10, "January 2025", nil)
	awaitingDecision.SubmissionDate = submitted

	claims := []domain.Claim{decidedAfterTwoDays, decidedAfterThreeDays, awaitingDecision}
	suite.mockClaimRepo.On("FindAllClaims", suite.ctx).Return(claims, nil).Once()

	stats, err := suite.statisticsSvc.GenerateStatistics(suite.ctx)

	suite.Require().NoError(err)
	suite.InDelta(2.5, stats.AverageProcessingTime, 0.001)
}

func (suite *StatisticsServiceTestSuite) TestGenerateStatistics_Groupings() {
	lecturer := &domain.Lecturer{LecturerID: "lect-1", FullName: "Thandi Nkosi"}
	claims := []domain.Claim{
		statClaim(domain.StatusSubmitted, 100, 10, "January 2025", lecturer),
		statClaim(domain.StatusSubmitted, 100, 10, "January 2025", lecturer),
		statClaim(domain.StatusSubmitted, 100, 10, "February 2025", nil),
	}
	suite.mockClaimRepo.On("FindAllClaims", suite.ctx).Return(claims, nil).Once()

	stats, err := suite.statisticsSvc.GenerateStatistics(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(2, stats.ClaimsByMonth["January 2025"])
	suite.Equal(1, stats.ClaimsByMonth["February 2025"])
	suite.Equal(2, stats.ClaimsByLecturer["Thandi Nkosi"])
	suite.Equal(1, stats.ClaimsByLecturer["Unknown"])
}

func (suite *StatisticsServiceTestSuite) TestGenerateStatistics_RepositoryFailure() {
	suite.mockClaimRepo.On("FindAllClaims", suite.ctx).Return(nil, assert.AnError).Once()

	stats, err := suite.statisticsSvc.GenerateStatistics(suite.ctx)

	suite.Require().Error(err)
	suite.Nil(stats)
}

func TestStatisticsService(t *testing.T) {
	suite.Run(t, new(StatisticsServiceTestSuite))
}
