package dto

import (
	"time"

	"github.com/americanreliabletech/support-portal/internal/domain"
	"github.com/americanreliabletech/support-portal/internal/service"
)

// RegisterRequest is a signup payload.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Password string `json:"password" validate:"required,min=8"`
}

// ToInput converts to the service payload.
func (r RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput(r)
}

// LoginRequest is a credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileResponse is the public view of an account.
type ProfileResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

// SessionResponse pairs a profile with its access token.
type SessionResponse struct {
	Profile   ProfileResponse `json:"profile"`
	Token     string          `json:"token"`
	ExpiresAt string          `json:"expires_at"`
}

// UpdateProfileRequest carries editable profile fields.
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
}

// ToInput converts to the service payload.
func (r UpdateProfileRequest) ToInput() service.ProfileUpdateInput {
	return service.ProfileUpdateInput(r)
}

// NewProfileResponse maps a profile.
func NewProfileResponse(p *domain.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		Company:   p.Company,
		Role:      string(p.Role),
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// NewSessionResponse maps a login or signup result.
func NewSessionResponse(p *domain.UserProfile, s *service.Session) SessionResponse {
	return SessionResponse{
		Profile:   NewProfileResponse(p),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.Format(time.RFC3339),
	}
}

// TechnicianResponse lists assignable staff.
type TechnicianResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// NewTechnicianResponses maps profiles into the picker shape.
func NewTechnicianResponses(profiles []domain.UserProfile) []TechnicianResponse {
	out := make([]TechnicianResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, TechnicianResponse{ID: p.ID, FullName: p.FullName, Email: p.Email})
	}
	return out
}
