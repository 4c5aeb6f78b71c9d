package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimStatistics is a point-in-time aggregate over the full claim set.
// It has no persisted identity and is recomputed on each request.
type ClaimStatistics struct {
	TotalClaims           int `json:"totalClaims"`
	SubmittedClaims       int `json:"submittedClaims"`
	ApprovedByCoordinator int `json:"approvedByCoordinator"`
	ApprovedByManager     int `json:"approvedByManager"`
	RejectedClaims        int `json:"rejectedClaims"`
	PaymentProcessed      int `json:"paymentProcessed"`

	// Monetary buckets form an exhaustive partition of the claim set:
	// pending + approved + rejected always equals the grand total.
	TotalAmountClaimed  decimal.Decimal `json:"totalAmountClaimed"`
	TotalAmountApproved decimal.Decimal `json:"totalAmountApproved"`
	TotalAmountPending  decimal.Decimal `json:"totalAmountPending"`
	TotalAmountRejected decimal.Decimal `json:"totalAmountRejected"`

	AverageClaimAmount   decimal.Decimal `json:"averageClaimAmount"`
	AverageHoursPerClaim float64         `json:"averageHoursPerClaim"`

	// Days from submission to the latest recorded decision, averaged over
	// decided claims only.
	AverageProcessingTime float64 `json:"averageProcessingTime"`

	ClaimsByMonth    map[string]int `json:"claimsByMonth"`
	ClaimsByLecturer map[string]int `json:"claimsByLecturer"`

	ApprovalRate  float64 `json:"approvalRate"`  // Percent of claims in an approved state
	RejectionRate float64 `json:"rejectionRate"` // Percent of claims in a rejected state

	GeneratedAt time.Time `json:"generatedAt"`
}

// LecturerPerformanceReport summarises one lecturer's claim history.
type LecturerPerformanceReport struct {
	LecturerID     string          `json:"lecturerID"`
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	TotalClaims    int             `json:"totalClaims"`
	ApprovedClaims int             `json:"approvedClaims"`
	RejectedClaims int             `json:"rejectedClaims"`
	TotalHours     int             `json:"totalHours"`
	TotalEarned    decimal.Decimal `json:"totalEarned"` // Manager-approved and paid claims only
	AverageHours   float64         `json:"averageHours"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

// MonthlyFinancialReport summarises one month's financial position.
type MonthlyFinancialReport struct {
	Month          string          `json:"month"`
	TotalClaims    int             `json:"totalClaims"`
	ApprovedClaims int             `json:"approvedClaims"`
	PendingClaims  int             `json:"pendingClaims"`
	RejectedClaims int             `json:"rejectedClaims"`
	TotalApproved  decimal.Decimal `json:"totalApproved"`
	TotalPending   decimal.Decimal `json:"totalPending"`
	TotalRejected  decimal.Decimal `json:"totalRejected"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

// BatchPaymentResult reports the outcome of a batch payment run.
type BatchPaymentResult struct {
	Month       string          `json:"month"`
	ClaimsPaid  int             `json:"claimsPaid"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ProcessedAt time.Time       `json:"processedAt"`
}
