package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portsrepo "github.com/cmcs-dev/cmcs_backend/internal/core/ports/repositories"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/middleware"
	"github.com/cmcs-dev/cmcs_backend/internal/utils"
)

// loggingNotificationService renders stakeholder notifications and writes them
// to the structured log. A real mail or SMS sender can replace it behind the
// same interface.
type loggingNotificationService struct {
	lecturerRepo portsrepo.LecturerReader
}

// NewLoggingNotificationService creates a notification sink backed by the log.
func NewLoggingNotificationService(lecturerRepo portsrepo.LecturerReader) portssvc.NotificationSink {
	return &loggingNotificationService{lecturerRepo: lecturerRepo}
}

// Ensure loggingNotificationService implements the portssvc.NotificationSink interface
var _ portssvc.NotificationSink = (*loggingNotificationService)(nil)

func (s *loggingNotificationService) Notify(ctx context.Context, claim domain.Claim, action string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	lecturer, err := s.lecturerRepo.FindLecturerByID(ctx, claim.LecturerID)
	if err != nil {
		return fmt.Errorf("failed to resolve lecturer for notification: %w", err)
	}

	var message string
	switch action {
	case "auto-approved":
		message = fmt.Sprintf("Your claim #%s for %s (%s) has been automatically approved.", claim.ClaimID, claim.Month, utils.FormatRand(claim.TotalAmount))
	case "auto-rejected":
		reason := ""
		if claim.RejectionReason != nil {
			reason = *claim.RejectionReason
		}
		message = fmt.Sprintf("Your claim #%s for %s has been rejected. Reason: %s", claim.ClaimID, claim.Month, reason)
	case "approved":
		message = fmt.Sprintf("Your claim #%s for %s (%s) has been approved for payment.", claim.ClaimID, claim.Month, utils.FormatRand(claim.TotalAmount))
	case "rejected":
		message = fmt.Sprintf("Your claim #%s for %s has been rejected. Please review and resubmit if necessary.", claim.ClaimID, claim.Month)
	default:
		message = fmt.Sprintf("Status update for claim #%s: %s", claim.ClaimID, claim.Status.Display())
	}

	logger.Info("Notification sent",
		slog.String("recipient", lecturer.Email),
		slog.String("claim_id", claim.ClaimID),
		slog.String("action", action),
		slog.String("message", message),
	)
	return nil
}
