package chat

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/m-mizutani/gollem"
	"go.uber.org/zap"
)

//go:embed system_prompt.md
var systemPrompt string

// Message is one turn of the customer-facing chat history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Service drives the intake assistant. Each HandleTurn call replays the full
// conversation so far, so the service itself holds no per-conversation state.
type Service struct {
	llm    gollem.LLMClient
	logger *zap.Logger
}

func NewService(llm gollem.LLMClient, logger *zap.Logger) *Service {
	return &Service{llm: llm, logger: logger}
}

// HandleTurn runs one assistant turn. It returns the assistant's reply and,
// when the assistant decided it has everything it needs, the prepared ticket
// draft.
func (s *Service) HandleTurn(ctx context.Context, history []Message) (string, *TicketDraft, error) {
	if s.llm == nil {
		return "", nil, fmt.Errorf("chat assistant is not configured")
	}
	if len(history) == 0 {
		return "", nil, fmt.Errorf("empty conversation")
	}

	tool := &prepareTicketTool{}
	agent := gollem.New(s.llm,
		gollem.WithSystemPrompt(systemPrompt),
		gollem.WithTools(tool),
	)

	resp, err := agent.Execute(ctx, gollem.Text(renderHistory(history)))
	if err != nil {
		return "", nil, fmt.Errorf("chat agent execution failed: %w", err)
	}

	reply := strings.Join(resp.Texts, "\n")
	if draft := tool.Draft(); draft != nil {
		s.logger.Info("chat assistant prepared ticket draft",
			zap.String("email", draft.Email),
			zap.String("priority", draft.Priority))
		return reply, draft, nil
	}
	return reply, nil, nil
}

// renderHistory flattens the conversation into the transcript shape the
// prompt describes, ending with an explicit cue for the next agent line.
func renderHistory(history []Message) string {
	var b strings.Builder
	for _, m := range history {
		switch m.Role {
		case "assistant":
			fmt.Fprintf(&b, "AI Agent: %s\n", m.Content)
		default:
			fmt.Fprintf(&b, "Customer: %s\n", m.Content)
		}
	}
	b.WriteString("AI Agent:")
	return b.String()
}
