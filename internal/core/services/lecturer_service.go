package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portsrepo "github.com/cmcs-dev/cmcs_backend/internal/core/ports/repositories"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/dto"
	"github.com/cmcs-dev/cmcs_backend/internal/middleware"
	"github.com/cmcs-dev/cmcs_backend/internal/utils"
)

const initialPasswordLength = 12

// lecturerService manages lecturer records and their provisioned accounts.
type lecturerService struct {
	lecturerRepo portsrepo.LecturerRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade

	// rng generates initial passwords; injected so tests can seed it.
	rng *rand.Rand
}

// NewLecturerService creates a new lecturer service.
func NewLecturerService(lecturerRepo portsrepo.LecturerRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, rng *rand.Rand) portssvc.LecturerSvcFacade {
	return &lecturerService{
		lecturerRepo: lecturerRepo,
		userRepo:     userRepo,
		rng:          rng,
	}
}

// Ensure lecturerService implements the portssvc.LecturerSvcFacade interface
var _ portssvc.LecturerSvcFacade = (*lecturerService)(nil)

// CreateLecturer registers a lecturer and provisions a linked lecturer-role
// user account. The generated initial password is returned exactly once and
// never stored in plain text.
func (s *lecturerService) CreateLecturer(ctx context.Context, req dto.CreateLecturerRequest, creatorUserID string) (*domain.Lecturer, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.lecturerRepo.FindLecturerByEmail(ctx, req.Email); err == nil {
		return nil, "", fmt.Errorf("lecturer with email already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", err
	}

	// Hash before the first write so a bcrypt failure leaves no partial state
	initialPassword := utils.GeneratePassword(s.rng, initialPasswordLength)
	passwordHash, err := utils.HashPassword(initialPassword)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash initial password: %w", err)
	}

	now := time.Now()
	lecturer := domain.Lecturer{
		LecturerID: uuid.NewString(),
		FullName:   req.FullName,
		Email:      req.Email,
		ModuleName: req.ModuleName,
		HourlyRate: req.HourlyRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.lecturerRepo.SaveLecturer(ctx, lecturer); err != nil {
		return nil, "", err
	}

	lecturerID := lecturer.LecturerID
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     strings.Split(req.Email, "@")[0],
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         domain.RoleLecturer,
		PasswordHash: passwordHash,
		LecturerID:   &lecturerID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to provision lecturer account: %w", err)
	}

	logger.Info("Lecturer created",
		slog.String("lecturer_id", lecturer.LecturerID),
		slog.String("user_id", user.UserID),
	)
	return &lecturer, initialPassword, nil
}

func (s *lecturerService) UpdateLecturer(ctx context.Context, lecturerID string, req dto.UpdateLecturerRequest, requestingUserID string) (*domain.Lecturer, error) {
	lecturer, err := s.lecturerRepo.FindLecturerByID(ctx, lecturerID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		lecturer.FullName = *req.FullName
	}
	if req.Email != nil {
		lecturer.Email = *req.Email
	}
	if req.ModuleName != nil {
		lecturer.ModuleName = *req.ModuleName
	}
	if req.HourlyRate != nil {
		lecturer.HourlyRate = *req.HourlyRate
	}
	lecturer.LastUpdatedAt = time.Now()
	lecturer.LastUpdatedBy = requestingUserID

	if err := s.lecturerRepo.UpdateLecturer(ctx, *lecturer); err != nil {
		return nil, err
	}
	return lecturer, nil
}

func (s *lecturerService) GetLecturerByID(ctx context.Context, lecturerID string) (*domain.Lecturer, error) {
	return s.lecturerRepo.FindLecturerByID(ctx, lecturerID)
}

func (s *lecturerService) ListLecturers(ctx context.Context, limit int, offset int) ([]domain.Lecturer, error) {
	return s.lecturerRepo.ListLecturers(ctx, limit, offset)
}
