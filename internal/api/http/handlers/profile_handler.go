package handlers

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/americanreliabletech/support-portal/internal/api/dto"
	"github.com/americanreliabletech/support-portal/internal/auth"
	"github.com/americanreliabletech/support-portal/internal/service"
	apperrors "github.com/americanreliabletech/support-portal/pkg/util"
)

// ProfileHandler serves the signed-in account's profile endpoints.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: profileService}
}

// GetProfile GET /api/me/profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("account required")
	}
	profile, err := h.service.Get(c.Context(), principal.Profile.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile)})
}

// UpdateProfile PATCH /api/me/profile.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("account required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, err := h.service.Update(c.Context(), principal.Profile.ID, req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile)})
}

// UploadAvatar POST /api/me/profile/avatar. Multipart form with an "avatar"
// file field; images only, 5MB cap.
func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("account required")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return apperrors.NewValidationError("avatar file is required", nil)
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewValidationError("avatar must be an image", map[string]any{"content_type": contentType})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	profile, err := h.service.SetAvatar(c.Context(), principal.Profile.ID, fileHeader.Filename, contentType, body)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile)})
}
