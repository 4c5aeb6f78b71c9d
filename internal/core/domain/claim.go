package domain

import (
	"fmt"
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ClaimStatus is the closed set of states a claim moves through.
type ClaimStatus string

const (
	StatusSubmitted             ClaimStatus = "SUBMITTED"
	StatusApprovedByCoordinator ClaimStatus = "APPROVED_BY_COORDINATOR"
	StatusApprovedByManager     ClaimStatus = "APPROVED_BY_MANAGER"
	StatusRejectedByCoordinator ClaimStatus = "REJECTED_BY_COORDINATOR"
	StatusRejectedByManager     ClaimStatus = "REJECTED_BY_MANAGER"
	StatusPaymentProcessed      ClaimStatus = "PAYMENT_PROCESSED" // Terminal
)

// ParseClaimStatus maps a stored status string to the enum.
// "PENDING" is a legacy alias of SUBMITTED and is folded into it.
func ParseClaimStatus(s string) (ClaimStatus, error) {
	switch ClaimStatus(s) {
	case StatusSubmitted, StatusApprovedByCoordinator, StatusApprovedByManager,
		StatusRejectedByCoordinator, StatusRejectedByManager, StatusPaymentProcessed:
		return ClaimStatus(s), nil
	case "PENDING":
		return StatusSubmitted, nil
	}
	return "", fmt.Errorf("%w: unknown claim status %q", apperrors.ErrValidation, s)
}

// IsApproved reports whether the claim has passed at least coordinator approval.
func (s ClaimStatus) IsApproved() bool {
	return s == StatusApprovedByCoordinator || s == StatusApprovedByManager || s == StatusPaymentProcessed
}

// IsRejected reports whether the claim was rejected at any stage.
func (s ClaimStatus) IsRejected() bool {
	return s == StatusRejectedByCoordinator || s == StatusRejectedByManager
}

// IsPending reports whether the claim still awaits a final decision
// (not manager-approved, not rejected, not paid).
func (s ClaimStatus) IsPending() bool {
	return s == StatusSubmitted || s == StatusApprovedByCoordinator
}

// IsTerminal reports whether no further transition is possible.
func (s ClaimStatus) IsTerminal() bool {
	return s == StatusPaymentProcessed
}

// Display returns the human-readable label used in reports and notifications.
func (s ClaimStatus) Display() string {
	switch s {
	case StatusSubmitted:
		return "Submitted"
	case StatusApprovedByCoordinator:
		return "Approved by Coordinator"
	case StatusApprovedByManager:
		return "Approved by Manager"
	case StatusRejectedByCoordinator:
		return "Rejected by Coordinator"
	case StatusRejectedByManager:
		return "Rejected by Manager"
	case StatusPaymentProcessed:
		return "Payment Processed"
	}
	return string(s)
}

// Role is the closed set of actors in the claims workflow.
// RoleAutomation is a system actor only; it never logs in.
type Role string

const (
	RoleLecturer    Role = "LECTURER"
	RoleCoordinator Role = "COORDINATOR"
	RoleManager     Role = "MANAGER"
	RoleHR          Role = "HR"
	RoleAutomation  Role = "AUTOMATION"
)

// ParseRole maps a stored role string to the enum. Automation is excluded:
// it is not a user role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleLecturer, RoleCoordinator, RoleManager, RoleHR:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, s)
}

// ClaimAction names a workflow operation that may change claim status.
type ClaimAction string

const (
	ActionApprove        ClaimAction = "APPROVE"
	ActionReject         ClaimAction = "REJECT"
	ActionVerify         ClaimAction = "VERIFY"
	ActionProcessPayment ClaimAction = "PROCESS_PAYMENT"
)

type transitionKey struct {
	from   ClaimStatus
	action ClaimAction
}

type transitionRule struct {
	to     ClaimStatus
	actors []Role
}

// claimTransitions is the complete transition table. Anything absent is illegal.
var claimTransitions = map[transitionKey]transitionRule{
	{StatusSubmitted, ActionApprove}:                {StatusApprovedByCoordinator, []Role{RoleCoordinator, RoleAutomation}},
	{StatusSubmitted, ActionReject}:                 {StatusRejectedByCoordinator, []Role{RoleCoordinator, RoleAutomation}},
	{StatusApprovedByCoordinator, ActionVerify}:     {StatusApprovedByManager, []Role{RoleManager}},
	{StatusApprovedByCoordinator, ActionReject}:     {StatusRejectedByManager, []Role{RoleManager}},
	{StatusApprovedByManager, ActionProcessPayment}: {StatusPaymentProcessed, []Role{RoleHR}},
}

// Claim is a lecturer's monthly hours-worked submission.
type Claim struct {
	ClaimID            string          `json:"claimID"`    // Primary Key (UUID)
	LecturerID         string          `json:"lecturerID"` // FK -> Lecturer (immutable after creation)
	ModuleName         string          `json:"moduleName"`
	Month              string          `json:"month"` // Free-text period label, matched exactly
	HoursWorked        int             `json:"hoursWorked"`
	HourlyRate         decimal.Decimal `json:"hourlyRate"` // Snapshot of the lecturer's rate at submission
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	Status             ClaimStatus     `json:"status"`
	SubmissionDate     time.Time       `json:"submissionDate"`
	SupportingDocument *string         `json:"supportingDocument,omitempty"`
	RejectionReason    *string         `json:"rejectionReason,omitempty"`
	Lecturer           *Lecturer       `json:"lecturer,omitempty"` // Populated on reads when requested
	AuditFields
}

// CalculateTotal computes hours multiplied by rate, rounded to cents.
func (c *Claim) CalculateTotal() decimal.Decimal {
	return c.HourlyRate.Mul(decimal.NewFromInt(int64(c.HoursWorked))).Round(2)
}

// CanTransition reports whether the action is legal from the claim's current
// status, ignoring the acting role.
func (c *Claim) CanTransition(action ClaimAction) bool {
	_, ok := claimTransitions[transitionKey{c.Status, action}]
	return ok
}

// Transition applies a workflow action on behalf of an actor. A transition
// into a rejection state requires a non-empty reason and records it; a
// transition into an approval state clears any prior reason. On any error the
// claim is left unchanged.
func (c *Claim) Transition(action ClaimAction, actor Role, reason string) error {
	rule, ok := claimTransitions[transitionKey{c.Status, action}]
	if !ok {
		return fmt.Errorf("%w: cannot %s a claim in status %s",
			apperrors.ErrInvalidTransition, action, c.Status.Display())
	}
	allowed := false
	for _, a := range rule.actors {
		if a == actor {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: role %s may not %s a claim in status %s",
			apperrors.ErrForbidden, actor, action, c.Status.Display())
	}
	if rule.to.IsRejected() {
		if reason == "" {
			return fmt.Errorf("%w: rejection requires a reason", apperrors.ErrValidation)
		}
		c.RejectionReason = &reason
	} else {
		c.RejectionReason = nil
	}
	c.Status = rule.to
	return nil
}

// DeletableBy reports whether the given role may delete the claim in its
// current status. Deletion is a permission check, not a transition.
func (c *Claim) DeletableBy(role Role) bool {
	switch role {
	case RoleLecturer, RoleCoordinator:
		return c.Status == StatusSubmitted
	case RoleManager:
		return c.Status == StatusApprovedByCoordinator || c.Status == StatusRejectedByManager
	}
	return false
}
