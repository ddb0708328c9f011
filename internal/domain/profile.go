package domain

import "time"

// Role enumerates account roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// UserProfile is the per-account profile record. Profiles with the admin
// role double as technicians assignable to tickets.
type UserProfile struct {
	ID           string
	FullName     string
	Email        string
	Phone        string
	Company      string
	Role         Role
	AvatarURL    string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
