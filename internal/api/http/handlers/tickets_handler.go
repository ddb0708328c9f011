package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/americanreliabletech/support-portal/internal/api/dto"
	"github.com/americanreliabletech/support-portal/internal/service"
	apperrors "github.com/americanreliabletech/support-portal/pkg/util"
)

// TicketsHandler serves the public intake and tracking endpoints. No
// authentication: anyone can open a ticket, and tracking requires knowing
// both the ticket number and the submitter email.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.CreateTicket(c.Context(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketSummary(*ticket)})
}

// TrackTicket GET /api/tickets/track?ticket=...&email=...
func (h *TicketsHandler) TrackTicket(c *fiber.Ctx) error {
	var query dto.TrackTicketQuery
	if err := c.QueryParser(&query); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	if err := dto.Validate(query); err != nil {
		return err
	}

	thread, err := h.service.TrackTicket(c.Context(), query.TicketNumber, query.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(thread)})
}
