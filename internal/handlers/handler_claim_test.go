package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/dto"
	"github.com/cmcs-dev/cmcs_backend/internal/handlers"
	"github.com/cmcs-dev/cmcs_backend/internal/middleware"
	"github.com/cmcs-dev/cmcs_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	args := m.Called(ctx, userID, requestingUserID)
	return args.Error(0)
}
func (m *MockUserService) UpdateRefreshTokenDetails(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}
func (m *MockUserService) GetOrCreateUserFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite ---
type ClaimHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockClaimService *MockClaimService
	mockUserService  *MockUserService
	uploadDir        string
	jwtSecret        string
	userID           string
	lecturerID       string
}

func (suite *ClaimHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = "user-1"
	suite.lecturerID = "lect-1"
	suite.uploadDir = suite.T().TempDir()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockClaimService = new(MockClaimService)
	suite.mockUserService = new(MockUserService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterClaimRoutes(v1, suite.mockClaimService, suite.mockUserService, suite.uploadDir)
}

// expectLecturerLookup resolves the test user to its linked lecturer record.
func (suite *ClaimHandlerTestSuite) expectLecturerLookup() {
	lecturerID := suite.lecturerID
	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).Return(&domain.User{
		UserID:     suite.userID,
		Role:       domain.RoleLecturer,
		LecturerID: &lecturerID,
		IsActive:   true,
	}, nil)
}

// doSubmitRequest posts a multipart claim submission, optionally attaching a
// document with the given filename and content.
func (suite *ClaimHandlerTestSuite) doSubmitRequest(filename string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	suite.Require().NoError(writer.WriteField("moduleName", "PROG6212"))
	suite.Require().NoError(writer.WriteField("month", "January 2025"))
	suite.Require().NoError(writer.WriteField("hoursWorked", "20"))
	if filename != "" {
		part, err := writer.CreateFormFile("document", filename)
		suite.Require().NoError(err)
		_, err = part.Write(content)
		suite.Require().NoError(err)
	}
	suite.Require().NoError(writer.Close())

	token, err := utils.GenerateJWT(suite.userID, string(domain.RoleLecturer), suite.jwtSecret, time.Hour, "cmcs-test")
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/claims", &body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ClaimHandlerTestSuite) submittedClaimResponse() *domain.Claim {
	return &domain.Claim{
		ClaimID:     "claim-1",
		LecturerID:  suite.lecturerID,
		ModuleName:  "PROG6212",
		Month:       "January 2025",
		HoursWorked: 20,
		HourlyRate:  decimal.NewFromInt(400),
		TotalAmount: decimal.NewFromInt(8000),
		Status:      domain.StatusSubmitted,
	}
}

// --- Test Cases ---

func (suite *ClaimHandlerTestSuite) TestSubmitClaim_WithoutDocument() {
	suite.expectLecturerLookup()
	suite.mockClaimService.On("SubmitClaim", mock.Anything, suite.lecturerID, mock.MatchedBy(func(req dto.SubmitClaimRequest) bool {
		return req.SupportingDocument == nil
	}), suite.userID).Return(suite.submittedClaimResponse(), nil).Once()

	w := suite.doSubmitRequest("", nil)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *ClaimHandlerTestSuite) TestSubmitClaim_StoresAllowedDocument() {
	suite.expectLecturerLookup()
	suite.mockClaimService.On("SubmitClaim", mock.Anything, suite.lecturerID, mock.MatchedBy(func(req dto.SubmitClaimRequest) bool {
		return req.SupportingDocument != nil && strings.HasSuffix(*req.SupportingDocument, ".pdf")
	}), suite.userID).Return(suite.submittedClaimResponse(), nil).Once()

	w := suite.doSubmitRequest("invoice.PDF", []byte("%PDF-1.4 timesheet"))

	suite.Equal(http.StatusCreated, w.Code)
	entries, err := os.ReadDir(suite.uploadDir)
	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *ClaimHandlerTestSuite) TestSubmitClaim_RejectsDisallowedDocumentType() {
	suite.expectLecturerLookup()

	w := suite.doSubmitRequest("payload.exe", []byte("MZ"))

	suite.Equal(http.StatusBadRequest, w.Code)

	var responseBody map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Contains(responseBody["error"], "PDF, DOCX or XLSX")
	suite.mockClaimService.AssertNotCalled(suite.T(), "SubmitClaim", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	entries, err := os.ReadDir(suite.uploadDir)
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *ClaimHandlerTestSuite) TestSubmitClaim_RejectsOversizedDocument() {
	suite.expectLecturerLookup()
	oversized := bytes.Repeat([]byte("a"), 5<<20+1)

	w := suite.doSubmitRequest("timesheet.pdf", oversized)

	suite.Equal(http.StatusBadRequest, w.Code)

	var responseBody map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Contains(responseBody["error"], "5MB limit")
	suite.mockClaimService.AssertNotCalled(suite.T(), "SubmitClaim", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClaimHandlerTestSuite) TestSubmitClaim_UnlinkedAccountForbidden() {
	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).Return(&domain.User{
		UserID:   suite.userID,
		Role:     domain.RoleLecturer,
		IsActive: true,
	}, nil).Once()

	w := suite.doSubmitRequest("", nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockClaimService.AssertNotCalled(suite.T(), "SubmitClaim", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestClaimHandler(t *testing.T) {
	suite.Run(t, new(ClaimHandlerTestSuite))
}
