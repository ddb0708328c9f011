package dto

import (
	"github.com/americanreliabletech/support-portal/internal/chat"
)

// ChatMessagePayload is one turn of the widget conversation.
type ChatMessagePayload struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest carries the full conversation so far.
type ChatRequest struct {
	Messages []ChatMessagePayload `json:"messages" validate:"required,min=1,dive"`
}

// History converts the wire payload into chat messages.
func (r ChatRequest) History() []chat.Message {
	return toHistory(r.Messages)
}

// ChatDraftPayload is an assistant-prepared ticket draft. The widget holds
// it client-side until the phone number is verified.
type ChatDraftPayload struct {
	Name                string            `json:"name" validate:"required"`
	Email               string            `json:"email" validate:"required,email"`
	Phone               string            `json:"phone" validate:"required,min=10"`
	Company             string            `json:"company"`
	Priority            string            `json:"priority" validate:"required,oneof=low medium high critical"`
	Description         string            `json:"description" validate:"required"`
	ConversationSummary string            `json:"conversation_summary" validate:"required"`
	Troubleshooting     map[string]string `json:"troubleshooting"`
}

// NewChatDraftPayload maps an assistant draft onto the wire.
func NewChatDraftPayload(d *chat.TicketDraft) *ChatDraftPayload {
	if d == nil {
		return nil
	}
	return &ChatDraftPayload{
		Name:                d.Name,
		Email:               d.Email,
		Phone:               d.Phone,
		Company:             d.Company,
		Priority:            d.Priority,
		Description:         d.Description,
		ConversationSummary: d.ConversationSummary,
		Troubleshooting:     d.Troubleshooting,
	}
}

// ToDraft converts the wire payload back into an assistant draft.
func (p ChatDraftPayload) ToDraft() chat.TicketDraft {
	return chat.TicketDraft{
		Name:                p.Name,
		Email:               p.Email,
		Phone:               p.Phone,
		Company:             p.Company,
		Priority:            p.Priority,
		Description:         p.Description,
		ConversationSummary: p.ConversationSummary,
		Troubleshooting:     p.Troubleshooting,
	}
}

// ChatResponse is the assistant's reply. Draft is set once the assistant
// gathered enough to prepare a ticket; the ticket itself is only created by
// the verified submission endpoint.
type ChatResponse struct {
	Reply string            `json:"reply"`
	Draft *ChatDraftPayload `json:"draft,omitempty"`
}

// ChatSubmitRequest submits a prepared draft together with the verification
// code sent to the draft's phone number.
type ChatSubmitRequest struct {
	Draft    ChatDraftPayload     `json:"draft" validate:"required"`
	Code     string               `json:"code" validate:"required,len=6,numeric"`
	Messages []ChatMessagePayload `json:"messages" validate:"dive"`
}

// History converts the submitted transcript into chat messages.
func (r ChatSubmitRequest) History() []chat.Message {
	return toHistory(r.Messages)
}

func toHistory(messages []ChatMessagePayload) []chat.Message {
	out := make([]chat.Message, 0, len(messages))
	for _, m := range messages {
		out = append(out, chat.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

// SendOTPRequest asks for a verification code.
type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=10"`
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest submits a code for checking.
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=10"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}
