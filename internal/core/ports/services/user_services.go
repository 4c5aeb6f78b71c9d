package services

import (
	"context"
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	"github.com/cmcs-dev/cmcs_backend/internal/dto"
)

// UserReaderSvc defines read operations for user accounts
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user accounts
type UserWriterSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error

	// UpdateRefreshTokenDetails stores the hash and expiry of the user's
	// current refresh token; empty values revoke it.
	UpdateRefreshTokenDetails(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error

	// GetOrCreateUserFromGoogle resolves a verified Google identity to a
	// local account, creating a lecturer-role account on first sign-in.
	GetOrCreateUserFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
