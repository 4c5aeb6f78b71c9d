package domain

// ValidationResult is the outcome of checking one claim against the business
// rules. Errors block validity and force rejection; warnings disqualify
// auto-approval only; recommendations are informational.
type ValidationResult struct {
	ClaimID         string   `json:"claimID"`
	IsValid         bool     `json:"isValid"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
	CanAutoApprove  bool     `json:"canAutoApprove"`
	ActionTaken     string   `json:"actionTaken,omitempty"`
}
