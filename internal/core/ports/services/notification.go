package services

import (
	"context"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
)

// NotificationSink receives fire-and-forget status messages for a claim.
// Implementations must not be relied on for delivery; callers swallow errors.
type NotificationSink interface {
	Notify(ctx context.Context, claim domain.Claim, action string) error
}
