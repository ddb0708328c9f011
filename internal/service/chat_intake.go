package service

import (
	"strings"

	"github.com/americanreliabletech/support-portal/internal/chat"
	"github.com/americanreliabletech/support-portal/internal/domain"
	"github.com/americanreliabletech/support-portal/internal/mail"
)

// ChatDraftToTicketInput converts an assistant-prepared draft into a ticket
// creation payload. The assistant assesses a single priority level, so the
// impact/urgency pair is back-filled with the combination that yields it.
func ChatDraftToTicketInput(draft *chat.TicketDraft, history []chat.Message) TicketCreateInput {
	impact, urgency := severityFor(draft.Priority)
	return TicketCreateInput{
		Name:            draft.Name,
		Email:           draft.Email,
		Phone:           draft.Phone,
		Company:         draft.Company,
		Subject:         draft.ConversationSummary,
		Description:     draft.Description,
		Category:        "Chat Intake",
		Impact:          impact,
		Urgency:         urgency,
		Conversation:    mail.ParseTranscript(renderTranscript(history)),
		Troubleshooting: draft.Troubleshooting,
	}
}

func severityFor(priority string) (domain.Impact, domain.Urgency) {
	switch strings.ToLower(priority) {
	case "critical":
		return domain.ImpactCritical, domain.UrgencyCritical
	case "high":
		return domain.ImpactHigh, domain.UrgencyHigh
	case "low":
		return domain.ImpactLow, domain.UrgencyLow
	default:
		return domain.ImpactMedium, domain.UrgencyMedium
	}
}

func renderTranscript(history []chat.Message) string {
	var b strings.Builder
	for _, m := range history {
		if m.Role == "assistant" {
			b.WriteString("AI Agent: ")
		} else {
			b.WriteString("Customer: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}
