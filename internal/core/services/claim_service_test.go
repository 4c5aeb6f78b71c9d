package services_test

import (
	"context"
	"testing"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/core/services"
	"github.com/cmcs-dev/cmcs_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ClaimServiceTestSuite struct {
	suite.Suite
	mockClaimRepo     *MockClaimRepository
	mockLecturerRepo  *MockLecturerRepository
	mockAutomationSvc *MockAutomationService
	claimSvc          portssvc.ClaimSvcFacade
	ctx               context.Context
	lecturer          *domain.Lecturer
}

func (suite *ClaimServiceTestSuite) SetupTest() {
	suite.mockClaimRepo = new(MockClaimRepository)
	suite.mockLecturerRepo = new(MockLecturerRepository)
	suite.mockAutomationSvc = new(MockAutomationService)
	suite.claimSvc = services.NewClaimService(suite.mockClaimRepo, suite.mockLecturerRepo, suite.mockAutomationSvc, false)
	suite.ctx = context.Background()
	suite.lecturer = &domain.Lecturer{
		LecturerID: "lect-1",
		FullName:   "Thandi Nkosi",
		Email:      "thandi.nkosi@university.ac.za",
		ModuleName: "PROG6212",
		HourlyRate: decimal.NewFromFloat(450.50),
	}
}

func (suite *ClaimServiceTestSuite) TestSubmitClaim_SnapshotsLecturerRate() {
	req := dto.SubmitClaimRequest{
		ModuleName:  "PROG6212",
		Month:       "January 2025",
		HoursWorked: 100,
	}
	suite.mockLecturerRepo.On("FindLecturerByID", suite.ctx, "lect-1").Return(suite.lecturer, nil).Once()
	suite.mockClaimRepo.On("SaveClaim", suite.ctx, mock.MatchedBy(func(c domain.Claim) bool {
		return c.LecturerID == "lect-1" &&
			c.Status == domain.StatusSubmitted &&
			c.HourlyRate.Equal(decimal.NewFromFloat(450.50)) &&
			c.TotalAmount.Equal(decimal.NewFromInt(45050)) &&
			c.CreatedBy == "user-1"
	})).Return(nil).Once()

	claim, err := suite.claimSvc.SubmitClaim(suite.ctx, "lect-1", req, "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(claim.ClaimID)
	suite.Equal(domain.StatusSubmitted, claim.Status)
	suite.True(claim.TotalAmount.Equal(decimal.NewFromInt(45050)))
	suite.Equal(suite.lecturer, claim.Lecturer)
	suite.mockAutomationSvc.AssertNotCalled(suite.T(), "AutoVerifyClaim", mock.Anything, mock.Anything)
	suite.mockClaimRepo.AssertExpectations(suite.T())
}

func (suite *ClaimServiceTestSuite) TestSubmitClaim_AutoVerifyOnSubmit() {
	suite.claimSvc = services.NewClaimService(suite.mockClaimRepo, suite.mockLecturerRepo, suite.mockAutomationSvc, true)
	req := dto.SubmitClaimRequest{ModuleName: "PROG6212", Month: "January 2025", HoursWorked: 10}
	decided := &domain.Claim{ClaimID: "claim-1", Status: domain.StatusApprovedByCoordinator}

	suite.mockLecturerRepo.On("FindLecturerByID", suite.ctx, "lect-1").Return(suite.lecturer, nil).Once()
	suite.mockClaimRepo.On("SaveClaim", suite.ctx, mock.AnythingOfType("domain.Claim")).Return(nil).Once()
	suite.mockAutomationSvc.On("AutoVerifyClaim", suite.ctx, mock.AnythingOfType("string")).Return(cleanResult("claim-1"), nil).Once()
	suite.mockClaimRepo.On("FindClaimByID", suite.ctx, mock.AnythingOfType("string")).Return(decided, nil).Once()

	claim, err := suite.claimSvc.SubmitClaim(suite.ctx, "lect-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApprovedByCoordinator, claim.Status)
	suite.mockAutomationSvc.AssertExpectations(suite.T())
}

func (suite *ClaimServiceTestSuite) TestSubmitClaim_AutomationFailureDoesNotFailSubmission() {
	suite.claimSvc = services.NewClaimService(suite.mockClaimRepo, suite.mockLecturerRepo, suite.mockAutomationSvc, true)
	req := dto.SubmitClaimRequest{ModuleName: "PROG6212", Month: "January 2025", HoursWorked: 10}
	saved := &domain.Claim{ClaimID: "claim-1", Status: domain.StatusSubmitted}

	suite.mockLecturerRepo.On("FindLecturerByID", suite.ctx, "lect-1").Return(suite.lecturer, nil).Once()
	suite.mockClaimRepo.On("SaveClaim", suite.ctx, mock.AnythingOfType("domain.Claim")).Return(nil).Once()
	suite.mockAutomationSvc.On("AutoVerifyClaim", suite.ctx, mock.AnythingOfType("string")).Return(nil, assert.AnError).Once()
	suite.mockClaimRepo.On("FindClaimByID", suite.ctx, mock.AnythingOfType("string")).Return(saved, nil).Once()

	claim, err := suite.claimSvc.SubmitClaim(suite.ctx, "lect-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusSubmitted, claim.Status)
}

func (suite *ClaimServiceTestSuite) TestSubmitClaim_LecturerNotFound() {
	req := dto.SubmitClaimRequest{ModuleName: "PROG6212", Month: "January 2025", HoursWorked: 10}
	suite.mockLecturerRepo.On("FindLecturerByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	claim, err := suite.claimSvc.SubmitClaim(suite.ctx, "missing", req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(claim)
	suite.mockClaimRepo.AssertNotCalled(suite.T(), "SaveClaim", mock.Anything, mock.Anything)
}

func (suite *ClaimServiceTestSuite) TestApproveClaim() {
	claim := &domain.Claim{ClaimID: "claim-1", Status: domain.StatusSubmitted}
	suite.mockClaimRepo.On("FindClaimByID", suite.ctx, "claim-1").Return(claim, nil).Once()
	suite.mockClaimRepo.On("UpdateClaim", suite.ctx, mock.MatchedBy(func(c domain.Claim) bool {
		return c.Status == domain.StatusApprovedByCoordinator && c.LastUpdatedBy == "coord-1"
	})).Return(nil).Once()
	suite.mockAutomationSvc.On("NotifyStakeholders", suite.ctx, mock.AnythingOfType("domain.Claim"), "coordinator-approved").Once()

	got, err := suite.claimSvc.ApproveClaim(suite.ctx, "claim-1", "coord-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApprovedByCoordinator, got.Status)
	suite.mockClaimRepo.AssertExpectations(suite.T())
	suite.mockAutomationSvc.AssertExpectations(suite.T())
}

func (suite *ClaimServiceTestSuite) TestApproveClaim_InvalidTransition() {
	claim := &domain.Claim{ClaimID: "claim-1", Status: domain.StatusApprovedByManager}
	suite.mockClaimRepo.On("FindClaimByID", suite.ctx, "claim-1").Return(claim, nil).Once()

	got, err := suite.claimSvc.ApproveClaim(suite.ctx, "claim-1", "coord-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.Nil(got)
	suite.mockClaimRepo.AssertNotCalled(suite.T(), "UpdateClaim", mock.Anything, mock.Anything)
}

func (suite *ClaimServiceTestSuite) TestVerifyClaim() {
	claim := &domain.Claim{ClaimID: "claim-1", Status: domain.StatusApprovedByCoordinator}
	suite.mockClaimRepo.On("FindClaimByID", suite.ctx, "claim-1").Return(claim, nil).Once()
	suite.mockClaimRepo.On("UpdateClaim", suite.ctx, mock.MatchedBy(func(c domain.Claim) bool {
		return c.Status == domain.StatusApprovedByManager
	})).Return(nil).Once()
	suite.mockAutomationSvc.On("NotifyStakeholders", suite.ctx, mock.AnythingOfType("domain.Claim"), "approved").Once()

	got, err := suite.claimSvc.VerifyClaim(suite.ctx, "claim-1", "mgr-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApprovedByManager, got.Status)
}

func (suite *ClaimServiceTestSuite) TestVerifyClaim_SkippingCoordinatorIsInvalid() {
	claim := &domain.Claim{ClaimID: "claim-1", Status: domain.StatusSubmitted}
	suite.mockClaimRepo.On("FindClaimByID", suite.ctx, "claim-1").Return(claim, nil).Once()

	got, err := suite.claimSvc.VerifyClaim(suite.ctx, "claim-1", "mgr-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.Nil(got)
}

func (suite *ClaimServiceTestSuite) TestRejectClaim_CoordinatorWithReason() {
	claim := &domain.Claim{ClaimID: "claim-1", Status: domain.StatusSubmitted}
	suite.mockClaimRepo.On("FindClaimByID", suite.ctx, "claim-1").Return(claim, nil).Once()
	suite.mockClaimRepo.On("UpdateClaim", suite.ctx, mock.MatchedBy(func(c domain.Claim) bool {
		return c.Status == domain.StatusRejectedByCoordinator &&
			c.RejectionReason != nil && *c.RejectionReason == "Hours not plausible"
	})).Return(nil).Once()
	suite.mockAutomationSvc.On("NotifyStakeholders", suite.ctx, mock.AnythingOfType("domain.Claim"), "rejected").Once()

	got, err := suite.claimSvc.RejectClaim(suite.ctx, "claim-1", "Hours not plausible", domain.RoleCoordinator, "coord-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejectedByCoordinator, got.Status)
}

func (suite *ClaimServiceTestSuite) TestRejectClaim_MissingReason() {
	claim := &domain.Claim{ClaimID: "claim-1", Status: domain.StatusSubmitted}
	suite.mockClaimRepo.On("FindClaimByID", suite.ctx, "claim-1").Return(claim, nil).Once()

	got, err := suite.claimSvc.RejectClaim(suite.ctx, "claim-1", "", domain.RoleCoordinator, "coord-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(got)
	suite.mockClaimRepo.AssertNotCalled(suite.T(), "UpdateClaim", mock.Anything, mock.Anything)
}

func (suite *ClaimServiceTestSuite) TestRejectClaim_ManagerOnSubmittedIsForbidden() {
	claim := &domain.Claim{ClaimID: "claim-1", Status: domain.StatusSubmitted}
	suite.mockClaimRepo.On("FindClaimByID", suite.ctx, "claim-1").Return(claim, nil).Once()

	got, err := suite.claimSvc.RejectClaim(suite.ctx, "claim-1", "reason", domain.RoleManager, "mgr-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(got)
}

func (suite *ClaimServiceTestSuite) TestListClaims_MonthFilter() {
	month := "January 2025"
	params := dto.ListClaimsParams{Month: &month}
	claims := []domain.Claim{{ClaimID: "claim-1", Month: month}}
	suite.mockClaimRepo.On("FindClaimsByMonth", suite.ctx, month).Return(claims, nil).Once()

	resp, err := suite.claimSvc.ListClaims(suite.ctx, params)

	suite.Require().NoError(err)
	suite.Len(resp.Claims, 1)
	suite.Nil(resp.NextToken)
	suite.mockClaimRepo.AssertNotCalled(suite.T(), "ListClaims", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClaimServiceTestSuite) TestListClaims_StatusFilterFoldsLegacyPending() {
	status := "PENDING"
	params := dto.ListClaimsParams{Status: &status}
	suite.mockClaimRepo.On("FindClaimsByStatus", suite.ctx, []domain.ClaimStatus{domain.StatusSubmitted}).Return([]domain.Claim{}, nil).Once()

	_, err := suite.claimSvc.ListClaims(suite.ctx, params)

	suite.Require().NoError(err)
	suite.mockClaimRepo.AssertExpectations(suite.T())
}

func (suite *ClaimServiceTestSuite) TestListClaims_UnknownStatus() {
	status := "IN_REVIEW"
	params := dto.ListClaimsParams{Status: &status}

	resp, err := suite.claimSvc.ListClaims(suite.ctx, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
}

func (suite *ClaimServiceTestSuite) TestListClaims_Paginated() {
	params := dto.ListClaimsParams{Limit: 20}
	next := "token-abc"
	claims := []domain.Claim{{ClaimID: "claim-1"}, {ClaimID: "claim-2"}}
	suite.mockClaimRepo.On("ListClaims", suite.ctx, 20, (*string)(nil)).Return(claims, &next, nil).Once()

	resp, err := suite.claimSvc.ListClaims(suite.ctx, params)

	suite.Require().NoError(err)
	suite.Len(resp.Claims, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token-abc", *resp.NextToken)
}

func (suite *ClaimServiceTestSuite) TestDeleteClaim_LecturerDeletesSubmitted() {
	claim := &domain.Claim{ClaimID: "claim-1", Status: domain.StatusSubmitted}
	suite.mockClaimRepo.On("FindClaimByID", suite.ctx, "claim-1").Return(claim, nil).Once()
	suite.mockClaimRepo.On("DeleteClaim", suite.ctx, "claim-1").Return(nil).Once()

	err := suite.claimSvc.DeleteClaim(suite.ctx, "claim-1", domain.RoleLecturer, "user-1")

	suite.Require().NoError(err)
	suite.mockClaimRepo.AssertExpectations(suite.T())
}

func (suite *ClaimServiceTestSuite) TestDeleteClaim_ForbiddenAfterApproval() {
	claim := &domain.Claim{ClaimID: "claim-1", Status: domain.StatusApprovedByManager}
	suite.mockClaimRepo.On("FindClaimByID", suite.ctx, "claim-1").Return(claim, nil).Once()

	err := suite.claimSvc.DeleteClaim(suite.ctx, "claim-1", domain.RoleLecturer, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockClaimRepo.AssertNotCalled(suite.T(), "DeleteClaim", mock.Anything, mock.Anything)
}

func (suite *ClaimServiceTestSuite) TestProcessBatchPayment_PaysOnlyVerifiedClaims() {
	month := "January 2025"
	claims := []domain.Claim{
		{ClaimID: "claim-1", Status: domain.StatusApprovedByManager, TotalAmount: decimal.NewFromInt(8000)},
		{ClaimID: "claim-2", Status: domain.StatusSubmitted, TotalAmount: decimal.NewFromInt(5000)},
		{ClaimID: "claim-3", Status: domain.StatusApprovedByManager, TotalAmount: decimal.NewFromInt(12000)},
	}
	suite.mockClaimRepo.On("FindClaimsByMonth", suite.ctx, month).Return(claims, nil).Once()
	suite.mockClaimRepo.On("MarkClaimsPaid", suite.ctx, []string{"claim-1", "claim-3"}, "hr-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.claimSvc.ProcessBatchPayment(suite.ctx, month, "hr-1")

	suite.Require().NoError(err)
	suite.Equal(month, result.Month)
	suite.Equal(2, result.ClaimsPaid)
	suite.True(result.TotalAmount.Equal(decimal.NewFromInt(20000)))
	suite.mockClaimRepo.AssertExpectations(suite.T())
}

func (suite *ClaimServiceTestSuite) TestProcessBatchPayment_NoVerifiedClaims() {
	month := "January 2025"
	claims := []domain.Claim{{ClaimID: "claim-1", Status: domain.StatusSubmitted}}
	suite.mockClaimRepo.On("FindClaimsByMonth", suite.ctx, month).Return(claims, nil).Once()

	result, err := suite.claimSvc.ProcessBatchPayment(suite.ctx, month, "hr-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(result)
	suite.mockClaimRepo.AssertNotCalled(suite.T(), "MarkClaimsPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClaimServiceTestSuite) TestProcessBatchPayment_TransactionFailure() {
	month := "January 2025"
	claims := []domain.Claim{{ClaimID: "claim-1", Status: domain.StatusApprovedByManager, TotalAmount: decimal.NewFromInt(100)}}
	suite.mockClaimRepo.On("FindClaimsByMonth", suite.ctx, month).Return(claims, nil).Once()
	suite.mockClaimRepo.On("MarkClaimsPaid", suite.ctx, []string{"claim-1"}, "hr-1", mock.AnythingOfType("time.Time")).Return(apperrors.ErrConflict).Once()

	result, err := suite.claimSvc.ProcessBatchPayment(suite.ctx, month, "hr-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
}

func TestClaimService(t *testing.T) {
	suite.Run(t, new(ClaimServiceTestSuite))
}
