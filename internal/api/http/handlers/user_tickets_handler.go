package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/americanreliabletech/support-portal/internal/api/dto"
	"github.com/americanreliabletech/support-portal/internal/auth"
	"github.com/americanreliabletech/support-portal/internal/service"
	apperrors "github.com/americanreliabletech/support-portal/pkg/util"
)

// UserTicketsHandler serves the signed-in customer dashboard. Tickets are
// matched by the account's email address since public intake does not
// require an account.
type UserTicketsHandler struct {
	service *service.TicketService
}

// NewUserTicketsHandler constructs handler.
func NewUserTicketsHandler(ticketService *service.TicketService) *UserTicketsHandler {
	return &UserTicketsHandler{service: ticketService}
}

// ListTickets GET /api/me/tickets.
func (h *UserTicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("account required")
	}
	tickets, err := h.service.ListTicketsForEmail(c.Context(), principal.Profile.Email,
		parseIntQuery(c, "limit", 50), parseIntQuery(c, "offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketSummaries(tickets)})
}

// GetTicket GET /api/me/tickets/:id. Internal notes are stripped.
func (h *UserTicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("account required")
	}
	thread, err := h.service.GetTicketForUser(c.Context(), c.Params("id"), principal.Profile.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(thread)})
}

// AddReply POST /api/me/tickets/:id/replies. Customer replies are always
// external.
func (h *UserTicketsHandler) AddReply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("account required")
	}
	if _, err := h.service.GetTicketForUser(c.Context(), c.Params("id"), principal.Profile.Email); err != nil {
		return err
	}

	var req dto.AddReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	reply, err := h.service.AddReply(c.Context(), c.Params("id"), service.ReplyInput{
		AuthorID:    &principal.Profile.ID,
		AuthorName:  principal.Profile.FullName,
		AuthorEmail: principal.Profile.Email,
		Body:        req.Body,
		IsInternal:  false,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"id": reply.ID}})
}
