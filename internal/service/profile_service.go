package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/americanreliabletech/support-portal/internal/domain"
	"github.com/americanreliabletech/support-portal/internal/repository"
	"github.com/americanreliabletech/support-portal/internal/storage"
	apperrors "github.com/americanreliabletech/support-portal/pkg/util"
)

const maxAvatarBytes = 5 << 20

// ProfileService manages account profiles and avatar uploads.
type ProfileService struct {
	profiles repository.ProfileRepository
	avatars  *storage.AvatarStore
	logger   *zap.Logger
}

func NewProfileService(profiles repository.ProfileRepository, avatars *storage.AvatarStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, avatars: avatars, logger: logger}
}

// Get loads a profile by ID.
func (s *ProfileService) Get(ctx context.Context, profileID string) (*domain.UserProfile, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// ProfileUpdateInput carries the editable profile fields. Empty fields are
// left unchanged.
type ProfileUpdateInput struct {
	FullName string
	Phone    string
	Company  string
}

// Update applies the provided fields to the profile.
func (s *ProfileService) Update(ctx context.Context, profileID string, input ProfileUpdateInput) (*domain.UserProfile, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if name := strings.TrimSpace(input.FullName); name != "" {
		profile.FullName = name
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		profile.Phone = phone
	}
	if company := strings.TrimSpace(input.Company); company != "" {
		profile.Company = company
	}
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// SetAvatar validates and uploads a new avatar image, replacing any prior
// one. Only image content types up to 5MB are accepted.
func (s *ProfileService) SetAvatar(ctx context.Context, profileID, fileName, contentType string, body []byte) (*domain.UserProfile, error) {
	if s.avatars == nil {
		return nil, apperrors.NewValidationError("avatar uploads are not enabled", nil)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewValidationError("avatar must be an image", map[string]any{"content_type": contentType})
	}
	if len(body) == 0 || len(body) > maxAvatarBytes {
		return nil, apperrors.NewValidationError("avatar must be between 1 byte and 5MB", map[string]any{"size": len(body)})
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	url, err := s.avatars.Upload(ctx, profileID, fileName, contentType, body)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	previous := profile.AvatarURL
	profile.AvatarURL = url
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}

	if previous != "" {
		if err := s.avatars.Remove(ctx, previous); err != nil {
			s.logger.Warn("stale avatar cleanup failed", zap.String("url", previous), zap.Error(err))
		}
	}
	return profile, nil
}
