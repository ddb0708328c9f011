package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArgs() map[string]any {
	return map[string]any{
		"name":                 "Pat Doe",
		"email":                "pat@acme.com",
		"phone":                "(949) 555-1234",
		"company":              "Acme Corp",
		"priority":             "high",
		"description":          "Email has stopped syncing for the whole sales team.",
		"conversation_summary": "Sales team email outage since this morning, restart attempted.",
		"troubleshooting": map[string]any{
			"Restarted Outlook": "No change",
		},
	}
}

func TestPrepareTicketCapturesDraft(t *testing.T) {
	tool := &prepareTicketTool{}
	out, err := tool.Run(context.Background(), validArgs())
	require.NoError(t, err)
	assert.Equal(t, "ticket prepared", out["status"])

	draft := tool.Draft()
	require.NotNil(t, draft)
	assert.Equal(t, "Pat Doe", draft.Name)
	assert.Equal(t, "pat@acme.com", draft.Email)
	assert.Equal(t, "high", draft.Priority)
	assert.Equal(t, "No change", draft.Troubleshooting["Restarted Outlook"])
}

func TestPrepareTicketNoCallMeansNoDraft(t *testing.T) {
	tool := &prepareTicketTool{}
	assert.Nil(t, tool.Draft())
}

func TestPrepareTicketRejectsShortPhone(t *testing.T) {
	args := validArgs()
	args["phone"] = "555-1234"
	tool := &prepareTicketTool{}
	_, err := tool.Run(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 digits")
	assert.Nil(t, tool.Draft())
}

func TestPrepareTicketRejectsBadEmail(t *testing.T) {
	args := validArgs()
	args["email"] = "not-an-email"
	tool := &prepareTicketTool{}
	_, err := tool.Run(context.Background(), args)
	require.Error(t, err)
	assert.Nil(t, tool.Draft())
}

func TestPrepareTicketRejectsUnknownPriority(t *testing.T) {
	args := validArgs()
	args["priority"] = "urgent"
	tool := &prepareTicketTool{}
	_, err := tool.Run(context.Background(), args)
	require.Error(t, err)
}

func TestPrepareTicketNormalizesPriorityCase(t *testing.T) {
	args := validArgs()
	args["priority"] = "Critical"
	tool := &prepareTicketTool{}
	_, err := tool.Run(context.Background(), args)
	require.NoError(t, err)
	assert.Equal(t, "critical", tool.Draft().Priority)
}

func TestRenderHistory(t *testing.T) {
	got := renderHistory([]Message{
		{Role: "assistant", Content: "Hi! What can I help with?"},
		{Role: "user", Content: "My printer is on fire."},
	})
	assert.Equal(t, "AI Agent: Hi! What can I help with?\nCustomer: My printer is on fire.\nAI Agent:", got)
}
