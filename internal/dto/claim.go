package dto

import (
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitClaimRequest defines data for submitting a new claim.
// The hourly rate is snapshotted from the lecturer record server-side.
type SubmitClaimRequest struct {
	ModuleName  string `json:"moduleName" form:"moduleName" binding:"required"`
	Month       string `json:"month" form:"month" binding:"required"`
	HoursWorked int    `json:"hoursWorked" form:"hoursWorked" binding:"required,min=1"`

	// SupportingDocument is the stored filename of an uploaded document.
	// Set by the handler after persisting the upload, never bound from input.
	SupportingDocument *string `json:"-" form:"-"`
}

// RejectClaimRequest carries the mandatory rejection reason.
type RejectClaimRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// BatchPaymentRequest selects the month whose verified claims get paid.
type BatchPaymentRequest struct {
	Month string `json:"month" binding:"required"`
}

// ClaimResponse defines the data returned for a claim.
type ClaimResponse struct {
	ClaimID            string          `json:"claimID"`
	LecturerID         string          `json:"lecturerID"`
	LecturerName       string          `json:"lecturerName,omitempty"`
	ModuleName         string          `json:"moduleName"`
	Month              string          `json:"month"`
	HoursWorked        int             `json:"hoursWorked"`
	HourlyRate         decimal.Decimal `json:"hourlyRate"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	Status             string          `json:"status"`
	StatusDisplay      string          `json:"statusDisplay"`
	SubmissionDate     time.Time       `json:"submissionDate"`
	SupportingDocument *string         `json:"supportingDocument,omitempty"`
	RejectionReason    *string         `json:"rejectionReason,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy      string          `json:"lastUpdatedBy"`
}

// ToClaimResponse converts a domain.Claim to ClaimResponse DTO.
func ToClaimResponse(c *domain.Claim) ClaimResponse {
	resp := ClaimResponse{
		ClaimID:            c.ClaimID,
		LecturerID:         c.LecturerID,
		ModuleName:         c.ModuleName,
		Month:              c.Month,
		HoursWorked:        c.HoursWorked,
		HourlyRate:         c.HourlyRate,
		TotalAmount:        c.TotalAmount,
		Status:             string(c.Status),
		StatusDisplay:      c.Status.Display(),
		SubmissionDate:     c.SubmissionDate,
		SupportingDocument: c.SupportingDocument,
		RejectionReason:    c.RejectionReason,
		CreatedAt:          c.CreatedAt,
		CreatedBy:          c.CreatedBy,
		LastUpdatedAt:      c.LastUpdatedAt,
		LastUpdatedBy:      c.LastUpdatedBy,
	}
	if c.Lecturer != nil {
		resp.LecturerName = c.Lecturer.FullName
	}
	return resp
}

// ToClaimResponses converts a slice of domain.Claim to []ClaimResponse.
func ToClaimResponses(claims []domain.Claim) []ClaimResponse {
	responses := make([]ClaimResponse, len(claims))
	for i := range claims {
		responses[i] = ToClaimResponse(&claims[i])
	}
	return responses
}

// ListClaimsParams defines query parameters for listing claims.
type ListClaimsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"`
	Month     *string `form:"month"`
}

// ListClaimsResponse wraps a page of claims with the continuation token.
type ListClaimsResponse struct {
	Claims    []ClaimResponse `json:"claims"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToListClaimsResponse converts a page of domain claims to DTO.
func ToListClaimsResponse(claims []domain.Claim, nextToken *string) ListClaimsResponse {
	return ListClaimsResponse{
		Claims:    ToClaimResponses(claims),
		NextToken: nextToken,
	}
}

// BatchPaymentResponse reports the outcome of a batch payment run.
type BatchPaymentResponse struct {
	Month       string          `json:"month"`
	ClaimsPaid  int             `json:"claimsPaid"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ProcessedAt time.Time       `json:"processedAt"`
}

// ToBatchPaymentResponse converts a domain.BatchPaymentResult to DTO.
func ToBatchPaymentResponse(r *domain.BatchPaymentResult) BatchPaymentResponse {
	return BatchPaymentResponse{
		Month:       r.Month,
		ClaimsPaid:  r.ClaimsPaid,
		TotalAmount: r.TotalAmount,
		ProcessedAt: r.ProcessedAt,
	}
}
