package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/americanreliabletech/support-portal/internal/api/dto"
	"github.com/americanreliabletech/support-portal/internal/auth"
	"github.com/americanreliabletech/support-portal/internal/domain"
	"github.com/americanreliabletech/support-portal/internal/repository"
	"github.com/americanreliabletech/support-portal/internal/service"
	apperrors "github.com/americanreliabletech/support-portal/pkg/util"
)

// AdminTicketsHandler serves the staff dashboard endpoints.
type AdminTicketsHandler struct {
	service *service.TicketService
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(ticketService *service.TicketService) *AdminTicketsHandler {
	return &AdminTicketsHandler{service: ticketService}
}

// ListTickets GET /api/admin/tickets.
func (h *AdminTicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseAdminTicketQuery(c)
	tickets, err := h.service.ListTickets(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketSummaries(tickets)})
}

// GetTicket GET /api/admin/tickets/:id. Internal notes included.
func (h *AdminTicketsHandler) GetTicket(c *fiber.Ctx) error {
	thread, err := h.service.GetTicketForAdmin(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(thread)})
}

// UpdateStatus PATCH /api/admin/tickets/:id/status.
func (h *AdminTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.UpdateStatus(c.Context(), c.Params("id"), domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketSummary(*ticket)})
}

// AssignTech PATCH /api/admin/tickets/:id/assignee.
func (h *AdminTicketsHandler) AssignTech(c *fiber.Ctx) error {
	var req dto.AssignTechRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.AssignTechnician(c.Context(), c.Params("id"), req.TechID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketSummary(*ticket)})
}

// AddReply POST /api/admin/tickets/:id/replies. is_internal keeps the entry
// as a staff-only note.
func (h *AdminTicketsHandler) AddReply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("staff account required")
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
		IsInternal:  req.IsInternal,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"id":          reply.ID,
		"is_internal": reply.IsInternal,
	}})
}

// ListTechnicians GET /api/admin/technicians.
func (h *AdminTicketsHandler) ListTechnicians(c *fiber.Ctx) error {
	techs, err := h.service.ListTechnicians(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTechnicianResponses(techs)})
}

func parseAdminTicketQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		for _, s := range strings.Split(v, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(s)))
		}
	}
	if v := strings.TrimSpace(c.Query("priority")); v != "" {
		for _, p := range strings.Split(v, ",") {
			filter.Priorities = append(filter.Priorities, domain.TicketPriority(strings.TrimSpace(p)))
		}
	}
	if v := strings.TrimSpace(c.Query("category")); v != "" {
		filter.Category = &v
	}
	if v := strings.TrimSpace(c.Query("assigned_to")); v != "" {
		filter.AssignedTo = &v
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		filter.SearchTerm = &v
	}
	if t, ok := parseTimeQuery(c, "created_from"); ok {
		filter.CreatedFrom = &t
	}
	if t, ok := parseTimeQuery(c, "created_to"); ok {
		filter.CreatedTo = &t
	}
	return filter
}

func parseIntQuery(c *fiber.Ctx, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func parseTimeQuery(c *fiber.Ctx, name string) (time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
