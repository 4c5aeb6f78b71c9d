package dto

import (
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
)

// ValidationResultResponse defines the data returned for a claim validation run.
type ValidationResultResponse struct {
	ClaimID         string   `json:"claimID"`
	IsValid         bool     `json:"isValid"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
	CanAutoApprove  bool     `json:"canAutoApprove"`
	ActionTaken     string   `json:"actionTaken,omitempty"`
}

// ToValidationResultResponse converts a domain.ValidationResult to DTO.
func ToValidationResultResponse(v *domain.ValidationResult) ValidationResultResponse {
	return ValidationResultResponse{
		ClaimID:         v.ClaimID,
		IsValid:         v.IsValid,
		Errors:          v.Errors,
		Warnings:        v.Warnings,
		Recommendations: v.Recommendations,
		CanAutoApprove:  v.CanAutoApprove,
		ActionTaken:     v.ActionTaken,
	}
}
