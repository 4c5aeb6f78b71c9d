package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/dto"
	"github.com/cmcs-dev/cmcs_backend/internal/handlers"
	"github.com/cmcs-dev/cmcs_backend/internal/middleware"
	"github.com/cmcs-dev/cmcs_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ClaimService ---
type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) GetClaimByID(ctx context.Context, claimID string) (*domain.Claim, error) {
	args := m.Called(ctx, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) ListClaims(ctx context.Context, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListClaimsResponse), args.Error(1)
}
func (m *MockClaimService) ListClaimsByLecturer(ctx context.Context, lecturerID string) ([]domain.Claim, error) {
	args := m.Called(ctx, lecturerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Claim), args.Error(1)
}
func (m *MockClaimService) SubmitClaim(ctx context.Context, lecturerID string, req dto.SubmitClaimRequest, creatorUserID string) (*domain.Claim, error) {
	args := m.Called(ctx, lecturerID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) ApproveClaim(ctx context.Context, claimID string, actorUserID string) (*domain.Claim, error) {
	args := m.Called(ctx, claimID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) RejectClaim(ctx context.Context, claimID string, reason string, actingRole domain.Role, actorUserID string) (*domain.Claim, error) {
	args := m.Called(ctx, claimID, reason, actingRole, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) VerifyClaim(ctx context.Context, claimID string, actorUserID string) (*domain.Claim, error) {
	args := m.Called(ctx, claimID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) DeleteClaim(ctx context.Context, claimID string, actingRole domain.Role, actorUserID string) error {
	args := m.Called(ctx, claimID, actingRole, actorUserID)
	return args.Error(0)
}
func (m *MockClaimService) ProcessBatchPayment(ctx context.Context, month string, actorUserID string) (*domain.BatchPaymentResult, error) {
	args := m.Called(ctx, month, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchPaymentResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ClaimSvcFacade = (*MockClaimService)(nil)

// --- Mock AutomationService ---
type MockAutomationService struct {
	mock.Mock
}

func (m *MockAutomationService) AutoVerifyClaim(ctx context.Context, claimID string) (*domain.ValidationResult, error) {
	args := m.Called(ctx, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationResult), args.Error(1)
}
func (m *MockAutomationService) GetClaimsRequiringAttention(ctx context.Context, role domain.Role) ([]domain.Claim, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Claim), args.Error(1)
}
func (m *MockAutomationService) NotifyStakeholders(ctx context.Context, claim domain.Claim, action string) {
	m.Called(ctx, claim, action)
}

// Ensure mock implements the interface
var _ portssvc.AutomationSvcFacade = (*MockAutomationService)(nil)

// --- Mock ValidationService ---
type MockValidationService struct {
	mock.Mock
}

func (m *MockValidationService) ValidateClaim(ctx context.Context, claim domain.Claim) (*domain.ValidationResult, error) {
	args := m.Called(ctx, claim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ValidationSvcFacade = (*MockValidationService)(nil)

// --- Test Suite ---
type ApprovalHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockClaimService      *MockClaimService
	mockAutomationService *MockAutomationService
	mockValidationService *MockValidationService
	jwtSecret             string
}

// generateTestToken creates a dummy JWT carrying the given role.
func (suite *ApprovalHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	token, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "cmcs-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *ApprovalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockClaimService = new(MockClaimService)
	suite.mockAutomationService = new(MockAutomationService)
	suite.mockValidationService = new(MockValidationService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterApprovalRoutes(v1, suite.mockClaimService, suite.mockAutomationService, suite.mockValidationService)
}

func (suite *ApprovalHandlerTestSuite) doRequest(method, url string, body []byte, role domain.Role) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString(), role))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ApprovalHandlerTestSuite) TestListAttention_Success() {
	expected := []domain.Claim{
		{ClaimID: uuid.NewString(), Status: domain.StatusSubmitted, TotalAmount: decimal.NewFromInt(8000)},
	}
	suite.mockAutomationService.On("GetClaimsRequiringAttention",
		mock.Anything,
		domain.RoleCoordinator,
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/approvals/attention", nil, domain.RoleCoordinator)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ListClaimsResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err)
	suite.Len(responseBody.Claims, 1)
	suite.Equal(expected[0].ClaimID, responseBody.Claims[0].ClaimID)
	suite.mockAutomationService.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestListAttention_LecturerForbidden() {
	w := suite.doRequest(http.MethodGet, "/api/v1/approvals/attention", nil, domain.RoleLecturer)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAutomationService.AssertNotCalled(suite.T(), "GetClaimsRequiringAttention", mock.Anything, mock.Anything)
}

func (suite *ApprovalHandlerTestSuite) TestApproveClaim_Success() {
	claimID := uuid.NewString()
	approved := &domain.Claim{ClaimID: claimID, Status: domain.StatusApprovedByCoordinator}
	suite.mockClaimService.On("ApproveClaim", mock.Anything, claimID, mock.AnythingOfType("string")).Return(approved, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/approvals/"+claimID+"/approve", nil, domain.RoleCoordinator)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ClaimResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal(string(domain.StatusApprovedByCoordinator), responseBody.Status)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestApproveClaim_ManagerForbiddenByRoute() {
	w := suite.doRequest(http.MethodPost, "/api/v1/approvals/"+uuid.NewString()+"/approve", nil, domain.RoleManager)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockClaimService.AssertNotCalled(suite.T(), "ApproveClaim", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalHandlerTestSuite) TestApproveClaim_NotFound() {
	claimID := uuid.NewString()
	suite.mockClaimService.On("ApproveClaim", mock.Anything, claimID, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/approvals/"+claimID+"/approve", nil, domain.RoleCoordinator)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ApprovalHandlerTestSuite) TestApproveClaim_InvalidTransitionConflict() {
	claimID := uuid.NewString()
	suite.mockClaimService.On("ApproveClaim", mock.Anything, claimID, mock.AnythingOfType("string")).Return(nil, apperrors.ErrInvalidTransition).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/approvals/"+claimID+"/approve", nil, domain.RoleCoordinator)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ApprovalHandlerTestSuite) TestVerifyClaim_Success() {
	claimID := uuid.NewString()
	verified := &domain.Claim{ClaimID: claimID, Status: domain.StatusApprovedByManager}
	suite.mockClaimService.On("VerifyClaim", mock.Anything, claimID, mock.AnythingOfType("string")).Return(verified, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/approvals/"+claimID+"/verify", nil, domain.RoleManager)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *ApprovalHandlerTestSuite) TestRejectClaim_PassesRoleAndReason() {
	claimID := uuid.NewString()
	rejected := &domain.Claim{ClaimID: claimID, Status: domain.StatusRejectedByManager}
	suite.mockClaimService.On("RejectClaim", mock.Anything, claimID, "Rate disputed", domain.RoleManager, mock.AnythingOfType("string")).Return(rejected, nil).Once()

	body, _ := json.Marshal(dto.RejectClaimRequest{Reason: "Rate disputed"})
	w := suite.doRequest(http.MethodPost, "/api/v1/approvals/"+claimID+"/reject", body, domain.RoleManager)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestRejectClaim_MissingReason() {
	claimID := uuid.NewString()

	w := suite.doRequest(http.MethodPost, "/api/v1/approvals/"+claimID+"/reject", []byte(`{}`), domain.RoleCoordinator)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClaimService.AssertNotCalled(suite.T(), "RejectClaim", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalHandlerTestSuite) TestAutoVerifyClaim_Success() {
	claimID := uuid.NewString()
	result := &domain.ValidationResult{
		ClaimID:         claimID,
		IsValid:         true,
		CanAutoApprove:  true,
		ActionTaken:     "Auto-approved by system",
		Errors:          []string{},
		Warnings:        []string{},
		Recommendations: []string{},
	}
	suite.mockAutomationService.On("AutoVerifyClaim", mock.Anything, claimID).Return(result, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/approvals/"+claimID+"/auto-verify", nil, domain.RoleCoordinator)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ValidationResultResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal("Auto-approved by system", responseBody.ActionTaken)
}

func (suite *ApprovalHandlerTestSuite) TestValidateClaim_Success() {
	claimID := uuid.NewString()
	claim := &domain.Claim{ClaimID: claimID, Status: domain.StatusSubmitted}
	result := &domain.ValidationResult{
		ClaimID:         claimID,
		IsValid:         true,
		Errors:          []string{},
		Warnings:        []string{},
		Recommendations: []string{},
	}
	suite.mockClaimService.On("GetClaimByID", mock.Anything, claimID).Return(claim, nil).Once()
	suite.mockValidationService.On("ValidateClaim", mock.Anything, *claim).Return(result, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/approvals/"+claimID+"/validation", nil, domain.RoleCoordinator)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockValidationService.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/approvals/attention", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestApprovalHandler(t *testing.T) {
	suite.Run(t, new(ApprovalHandlerTestSuite))
}
