package domain

import "time"

// User represents a login account. Lecturer accounts carry a reference to
// their lecturer record; coordinator/manager/HR accounts do not.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	FullName     string  `json:"fullName"`
	Role         Role    `json:"role"`
	PasswordHash string  `json:"-"`
	LecturerID   *string `json:"lecturerID,omitempty"` // FK -> Lecturer, set for lecturer accounts
	IsActive     bool    `json:"isActive"`
	AuditFields
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	DeletedAt              *time.Time `json:"deletedAt,omitempty"`
}

// GoogleUserInfo holds the subset of Google's userinfo payload we consume
// during OAuth sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
