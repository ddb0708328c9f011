package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/americanreliabletech/support-portal/internal/api/dto"
	"github.com/americanreliabletech/support-portal/internal/service"
	apperrors "github.com/americanreliabletech/support-portal/pkg/util"
)

// IntakeHandler serves the marketing site's contact, plan purchase and
// consultation forms.
type IntakeHandler struct {
	service *service.IntakeService
}

// NewIntakeHandler constructs handler.
func NewIntakeHandler(intakeService *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{service: intakeService}
}

// SubmitContact POST /api/contact.
func (h *IntakeHandler) SubmitContact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := h.service.SubmitContact(c.Context(), req.ToInput()); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"received": true}})
}

// SubmitServiceRequest POST /api/service-requests.
func (h *IntakeHandler) SubmitServiceRequest(c *fiber.Ctx) error {
	var req dto.ServiceRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticketNumber, err := h.service.SubmitServiceRequest(c.Context(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.ReferenceResponse{TicketNumber: ticketNumber}})
}

// ScheduleConsultation POST /api/consultations.
func (h *IntakeHandler) ScheduleConsultation(c *fiber.Ctx) error {
	var req dto.ConsultationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticketNumber, err := h.service.ScheduleConsultation(c.Context(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.ReferenceResponse{TicketNumber: ticketNumber}})
}
