package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTranscript(t *testing.T) {
	history := `AI Agent: Hi! What seems to be the problem?
Customer: My email stopped syncing this morning.
AI Agent: Have you tried restarting Outlook?
Customer: Yes, twice.
AI Agent: Preparing your ticket now.`

	qas := ParseTranscript(history)
	require.Len(t, qas, 3)
	assert.Equal(t, "Hi! What seems to be the problem?", qas[0].Question)
	assert.Equal(t, "My email stopped syncing this morning.", qas[0].Answer)
	assert.Equal(t, "Have you tried restarting Outlook?", qas[1].Question)
	assert.Equal(t, "Yes, twice.", qas[1].Answer)
	assert.Equal(t, "Preparing your ticket now.", qas[2].Question)
	assert.Empty(t, qas[2].Answer)
}

func TestParseTranscriptSkipsNoise(t *testing.T) {
	history := `--- session start ---

AI Agent: What company are you with?

Customer: Acme Corp
system: connection restored`

	qas := ParseTranscript(history)
	require.Len(t, qas, 1)
	assert.Equal(t, "What company are you with?", qas[0].Question)
	assert.Equal(t, "Acme Corp", qas[0].Answer)
}

func TestParseTranscriptEmpty(t *testing.T) {
	assert.Empty(t, ParseTranscript(""))
	assert.Empty(t, ParseTranscript("Customer: hello?\nCustomer: anyone there?"))
}
