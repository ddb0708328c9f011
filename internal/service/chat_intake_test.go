package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/americanreliabletech/support-portal/internal/chat"
	"github.com/americanreliabletech/support-portal/internal/domain"
)

func TestChatDraftToTicketInput(t *testing.T) {
	draft := &chat.TicketDraft{
		Name:                "Pat Doe",
		Email:               "pat@acme.com",
		Phone:               "9495551234",
		Company:             "Acme Corp",
		Priority:            "critical",
		Description:         "Whole office offline.",
		ConversationSummary: "Office-wide outage since 9am.",
		Troubleshooting:     map[string]string{"Router restarted": "Yes"},
	}
	history := []chat.Message{
		{Role: "assistant", Content: "What seems to be the problem?"},
		{Role: "user", Content: "The whole office is offline."},
	}

	input := ChatDraftToTicketInput(draft, history)
	assert.Equal(t, domain.ImpactCritical, input.Impact)
	assert.Equal(t, domain.UrgencyCritical, input.Urgency)
	assert.Equal(t, "Chat Intake", input.Category)
	assert.Equal(t, "Office-wide outage since 9am.", input.Subject)
	require.Len(t, input.Conversation, 1)
	assert.Equal(t, "The whole office is offline.", input.Conversation[0].Answer)
	assert.Equal(t, "Yes", input.Troubleshooting["Router restarted"])
}

func TestSeverityForUnknownDefaultsMedium(t *testing.T) {
	impact, urgency := severityFor("whatever")
	assert.Equal(t, domain.ImpactMedium, impact)
	assert.Equal(t, domain.UrgencyMedium, urgency)

	impact, urgency = severityFor("high")
	assert.Equal(t, domain.ImpactHigh, impact)
	assert.Equal(t, domain.UrgencyHigh, urgency)
}
