package services_test

import (
	"context"
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock ClaimRepository ---

type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) FindClaimByID(ctx context.Context, claimID string) (*domain.Claim, error) {
	args := m.Called(ctx, claimID)
	var claim *domain.Claim
	if args.Get(0) != nil {
		claim = args.Get(0).(*domain.Claim)
	}
	return claim, args.Error(1)
}

func (m *MockClaimRepository) FindDuplicateClaim(ctx context.Context, lecturerID string, month string, excludeClaimID string) (*domain.Claim, error) {
	args := m.Called(ctx, lecturerID, month, excludeClaimID)
	var claim *domain.Claim
	if args.Get(0) != nil {
		claim = args.Get(0).(*domain.Claim)
	}
	return claim, args.Error(1)
}

func (m *MockClaimRepository) FindClaimsByStatus(ctx context.Context, statuses []domain.ClaimStatus) ([]domain.Claim, error) {
	args := m.Called(ctx, statuses)
	var claims []domain.Claim
	if args.Get(0) != nil {
		claims = args.Get(0).([]domain.Claim)
	}
	return claims, args.Error(1)
}

func (m *MockClaimRepository) FindClaimsByMonth(ctx context.Context, month string) ([]domain.Claim, error) {
	args := m.Called(ctx, month)
	var claims []domain.Claim
	if args.Get(0) != nil {
		claims = args.Get(0).([]domain.Claim)
	}
	return claims, args.Error(1)
}

func (m *MockClaimRepository) FindClaimsByLecturer(ctx context.Context, lecturerID string) ([]domain.Claim, error) {
	args := m.Called(ctx, lecturerID)
	var claims []domain.Claim
	if args.Get(0) != nil {
		claims = args.Get(0).([]domain.Claim)
	}
	return claims, args.Error(1)
}

func (m *MockClaimRepository) FindAllClaims(ctx context.Context) ([]domain.Claim, error) {
	args := m.Called(ctx)
	var claims []domain.Claim
	if args.Get(0) != nil {
		claims = args.Get(0).([]domain.Claim)
	}
	return claims, args.Error(1)
}

func (m *MockClaimRepository) ListClaims(ctx context.Context, limit int, nextToken *string) ([]domain.Claim, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var claims []domain.Claim
	if args.Get(0) != nil {
		claims = args.Get(0).([]domain.Claim)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return claims, token, args.Error(2)
}

func (m *MockClaimRepository) SaveClaim(ctx context.Context, claim domain.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockClaimRepository) UpdateClaim(ctx context.Context, claim domain.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockClaimRepository) DeleteClaim(ctx context.Context, claimID string) error {
	args := m.Called(ctx, claimID)
	return args.Error(0)
}

func (m *MockClaimRepository) MarkClaimsPaid(ctx context.Context, claimIDs []string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, claimIDs, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock LecturerRepository ---

type MockLecturerRepository struct {
	mock.Mock
}

func (m *MockLecturerRepository) FindLecturerByID(ctx context.Context, lecturerID string) (*domain.Lecturer, error) {
	args := m.Called(ctx, lecturerID)
	var lecturer *domain.Lecturer
	if args.Get(0) != nil {
		lecturer = args.Get(0).(*domain.Lecturer)
	}
	return lecturer, args.Error(1)
}

func (m *MockLecturerRepository) FindLecturerByEmail(ctx context.Context, email string) (*domain.Lecturer, error) {
	args := m.Called(ctx, email)
	var lecturer *domain.Lecturer
	if args.Get(0) != nil {
		lecturer = args.Get(0).(*domain.Lecturer)
	}
	return lecturer, args.Error(1)
}

func (m *MockLecturerRepository) ListLecturers(ctx context.Context, limit int, offset int) ([]domain.Lecturer, error) {
	args := m.Called(ctx, limit, offset)
	var lecturers []domain.Lecturer
	if args.Get(0) != nil {
		lecturers = args.Get(0).([]domain.Lecturer)
	}
	return lecturers, args.Error(1)
}

func (m *MockLecturerRepository) SaveLecturer(ctx context.Context, lecturer domain.Lecturer) error {
	args := m.Called(ctx, lecturer)
	return args.Error(0)
}

func (m *MockLecturerRepository) UpdateLecturer(ctx context.Context, lecturer domain.Lecturer) error {
	args := m.Called(ctx, lecturer)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deletedBy, deletedAt)
	return args.Error(0)
}

// --- Mock ValidationService ---

type MockValidationService struct {
	mock.Mock
}

func (m *MockValidationService) ValidateClaim(ctx context.Context, claim domain.Claim) (*domain.ValidationResult, error) {
	args := m.Called(ctx, claim)
	var result *domain.ValidationResult
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.ValidationResult)
	}
	return result, args.Error(1)
}

// --- Mock NotificationSink ---

type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) Notify(ctx context.Context, claim domain.Claim, action string) error {
	args := m.Called(ctx, claim, action)
	return args.Error(0)
}

// --- Mock AutomationService ---

type MockAutomationService struct {
	mock.Mock
}

func (m *MockAutomationService) AutoVerifyClaim(ctx context.Context, claimID string) (*domain.ValidationResult, error) {
	args := m.Called(ctx, claimID)
	var result *domain.ValidationResult
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.ValidationResult)
	}
	return result, args.Error(1)
}

func (m *MockAutomationService) GetClaimsRequiringAttention(ctx context.Context, role domain.Role) ([]domain.Claim, error) {
	args := m.Called(ctx, role)
	var claims []domain.Claim
	if args.Get(0) != nil {
		claims = args.Get(0).([]domain.Claim)
	}
	return claims, args.Error(1)
}

func (m *MockAutomationService) NotifyStakeholders(ctx context.Context, claim domain.Claim, action string) {
	m.Called(ctx, claim, action)
}
