package dto

import (
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
)

// UserResponse defines the data returned for a user account.
type UserResponse struct {
	UserID     string  `json:"userID"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FullName   string  `json:"fullName"`
	Role       string  `json:"role"`
	LecturerID *string `json:"lecturerID,omitempty"`
	IsActive   bool    `json:"isActive"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:     user.UserID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       string(user.Role),
		LecturerID: user.LecturerID,
		IsActive:   user.IsActive,
	}
}
