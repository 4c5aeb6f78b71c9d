package models

import (
	"database/sql"
	"time"
)

// User represents an application account as stored in the database.
// Includes username and password hash for authentication.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	FullName     string         `db:"full_name"`
	Role         string         `db:"role"`
	PasswordHash string         `db:"password_hash"`
	LecturerID   sql.NullString `db:"lecturer_id"`
	IsActive     bool           `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token
}
