package services

import (
	"math/rand"
	"time"

	portsrepo "github.com/cmcs-dev/cmcs_backend/internal/core/ports/repositories"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/platform/config"
	"github.com/shopspring/decimal"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	rules := validationRulesFromConfig(cfg)

	// Validation and notification come first since automation depends on both
	container.Validation = NewValidationService(repos.Claim, repos.Lecturer, rules)
	container.Notifier = NewLoggingNotificationService(repos.Lecturer)

	container.Automation = NewAutomationService(repos.Claim, container.Validation, container.Notifier)
	container.Claim = NewClaimService(repos.Claim, repos.Lecturer, container.Automation, cfg.AutoVerifyOnSubmit)
	container.Statistics = NewStatisticsService(repos.Claim)
	container.Report = NewReportService(repos.Claim, repos.Lecturer)

	container.User = NewUserService(repos.User)
	container.Lecturer = NewLecturerService(repos.Lecturer, repos.User, rand.New(rand.NewSource(time.Now().UnixNano())))

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}

// validationRulesFromConfig builds the rule thresholds, falling back to the
// defaults for any unset value.
func validationRulesFromConfig(cfg *config.Config) ValidationRules {
	rules := DefaultValidationRules()
	if cfg.MaxHoursPerMonth > 0 {
		rules.MaxHoursPerMonth = cfg.MaxHoursPerMonth
	}
	if cfg.StandardWorkingHours > 0 {
		rules.StandardWorkingHours = cfg.StandardWorkingHours
	}
	if cfg.MaxHourlyRate > 0 {
		rules.MaxHourlyRate = decimal.NewFromFloat(cfg.MaxHourlyRate)
	}
	if cfg.AutoApproveThreshold > 0 {
		rules.AutoApproveThreshold = decimal.NewFromFloat(cfg.AutoApproveThreshold)
	}
	if cfg.DocumentRecommendThreshold > 0 {
		rules.DocumentRecommendThreshold = decimal.NewFromFloat(cfg.DocumentRecommendThreshold)
	}
	return rules
}
