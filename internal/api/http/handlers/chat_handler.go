package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/americanreliabletech/support-portal/internal/api/dto"
	"github.com/americanreliabletech/support-portal/internal/chat"
	"github.com/americanreliabletech/support-portal/internal/service"
	apperrors "github.com/americanreliabletech/support-portal/pkg/util"
)

// ChatAssistant runs one turn of the intake conversation.
type ChatAssistant interface {
	HandleTurn(ctx context.Context, history []chat.Message) (string, *chat.TicketDraft, error)
}

// ChatHandler drives the intake assistant widget and its phone
// verification step.
type ChatHandler struct {
	assistant ChatAssistant
	tickets   *service.TicketService
	otp       *service.OTPService
	logger    *zap.Logger
}

// NewChatHandler constructs handler.
func NewChatHandler(assistant ChatAssistant, tickets *service.TicketService, otp *service.OTPService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{assistant: assistant, tickets: tickets, otp: otp, logger: logger}
}

// HandleTurn POST /api/chat. Runs one assistant turn. A prepared draft is
// returned to the widget, which must verify the customer's phone number and
// submit the draft before any ticket exists.
func (h *ChatHandler) HandleTurn(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	reply, draft, err := h.assistant.HandleTurn(c.Context(), req.History())
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{"data": dto.ChatResponse{
		Reply: reply,
		Draft: dto.NewChatDraftPayload(draft),
	}})
}

// SubmitTicket POST /api/chat/submit. Creates the ticket from a prepared
// draft after the code sent to the draft's phone number checks out. The
// code is consumed on success, so a draft submits at most once per code.
func (h *ChatHandler) SubmitTicket(c *fiber.Ctx) error {
	var req dto.ChatSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.otp.VerifyCode(c.Context(), req.Draft.Phone, req.Code); err != nil {
		return err
	}

	draft := req.Draft.ToDraft()
	ticket, err := h.tickets.CreateTicket(c.Context(), service.ChatDraftToTicketInput(&draft, req.History()))
	if err != nil {
		return err
	}
	h.logger.Info("chat intake created ticket", zap.String("ticket_number", ticket.TicketNumber))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.ReferenceResponse{TicketNumber: ticket.TicketNumber}})
}

// SendOTP POST /api/otp/send.
func (h *ChatHandler) SendOTP(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := h.otp.SendCode(c.Context(), req.Phone, req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"sent": true}})
}

// VerifyOTP POST /api/otp/verify.
func (h *ChatHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := h.otp.VerifyCode(c.Context(), req.Phone, req.Code); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"verified": true}})
}
