package dto

import (
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatisticsResponse defines the data returned for the claim statistics dashboard.
type StatisticsResponse struct {
	TotalClaims           int `json:"totalClaims"`
	SubmittedClaims       int `json:"submittedClaims"`
	ApprovedByCoordinator int `json:"approvedByCoordinator"`
	ApprovedByManager     int `json:"approvedByManager"`
	RejectedClaims        int `json:"rejectedClaims"`
	PaymentProcessed      int `json:"paymentProcessed"`

	TotalAmountClaimed  decimal.Decimal `json:"totalAmountClaimed"`
	TotalAmountApproved decimal.Decimal `json:"totalAmountApproved"`
	TotalAmountPending  decimal.Decimal `json:"totalAmountPending"`
	TotalAmountRejected decimal.Decimal `json:"totalAmountRejected"`

	AverageClaimAmount    decimal.Decimal `json:"averageClaimAmount"`
	AverageHoursPerClaim  float64         `json:"averageHoursPerClaim"`
	AverageProcessingTime float64         `json:"averageProcessingTime"`

	ClaimsByMonth    map[string]int `json:"claimsByMonth"`
	ClaimsByLecturer map[string]int `json:"claimsByLecturer"`

	ApprovalRate  float64 `json:"approvalRate"`
	RejectionRate float64 `json:"rejectionRate"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// ToStatisticsResponse converts domain.ClaimStatistics to DTO.
func ToStatisticsResponse(s *domain.ClaimStatistics) StatisticsResponse {
	return StatisticsResponse{
		TotalClaims:           s.TotalClaims,
		SubmittedClaims:       s.SubmittedClaims,
		ApprovedByCoordinator: s.ApprovedByCoordinator,
		ApprovedByManager:     s.ApprovedByManager,
		RejectedClaims:        s.RejectedClaims,
		PaymentProcessed:      s.PaymentProcessed,
		TotalAmountClaimed:    s.TotalAmountClaimed,
		TotalAmountApproved:   s.TotalAmountApproved,
		TotalAmountPending:    s.TotalAmountPending,
		TotalAmountRejected:   s.TotalAmountRejected,
		AverageClaimAmount:    s.AverageClaimAmount,
		AverageHoursPerClaim:  s.AverageHoursPerClaim,
		AverageProcessingTime: s.AverageProcessingTime,
		ClaimsByMonth:         s.ClaimsByMonth,
		ClaimsByLecturer:      s.ClaimsByLecturer,
		ApprovalRate:          s.ApprovalRate,
		RejectionRate:         s.RejectionRate,
		GeneratedAt:           s.GeneratedAt,
	}
}

// LecturerPerformanceResponse defines the data returned for a lecturer performance report.
type LecturerPerformanceResponse struct {
	LecturerID     string          `json:"lecturerID"`
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	TotalClaims    int             `json:"totalClaims"`
	ApprovedClaims int             `json:"approvedClaims"`
	RejectedClaims int             `json:"rejectedClaims"`
	TotalHours     int             `json:"totalHours"`
	TotalEarned    decimal.Decimal `json:"totalEarned"`
	AverageHours   float64         `json:"averageHours"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

// ToLecturerPerformanceResponse converts a domain report to DTO.
func ToLecturerPerformanceResponse(r *domain.LecturerPerformanceReport) LecturerPerformanceResponse {
	return LecturerPerformanceResponse{
		LecturerID:     r.LecturerID,
		FullName:       r.FullName,
		Email:          r.Email,
		TotalClaims:    r.TotalClaims,
		ApprovedClaims: r.ApprovedClaims,
		RejectedClaims: r.RejectedClaims,
		TotalHours:     r.TotalHours,
		TotalEarned:    r.TotalEarned,
		AverageHours:   r.AverageHours,
		GeneratedAt:    r.GeneratedAt,
	}
}

// MonthlyFinancialResponse defines the data returned for a monthly financial report.
type MonthlyFinancialResponse struct {
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

// ToMonthlyFinancialResponse converts a domain report to DTO.
func ToMonthlyFinancialResponse(r *domain.MonthlyFinancialReport) MonthlyFinancialResponse {
	return MonthlyFinancialResponse{
		Month:          r.Month,
		TotalClaims:    r.TotalClaims,
		ApprovedClaims: r.ApprovedClaims,
		PendingClaims:  r.PendingClaims,
		RejectedClaims: r.RejectedClaims,
		TotalApproved:  r.TotalApproved,
		TotalPending:   r.TotalPending,
		TotalRejected:  r.TotalRejected,
		GeneratedAt:    r.GeneratedAt,
	}
}
