package chat

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/m-mizutani/gollem"
)

// TicketDraft is the structured intake the assistant hands back once it has
// gathered enough information to open a ticket.
type TicketDraft struct {
	Name                string
	Email               string
	Phone               string
	Company             string
	Priority            string
	Description         string
	ConversationSummary string
	Troubleshooting     map[string]string
}

var draftPriorities = []string{"low", "medium", "high", "critical"}

// prepareTicketTool captures a single TicketDraft per conversation turn. The
// service reads the draft back after the agent run completes.
type prepareTicketTool struct {
	draft *TicketDraft
}

// Draft returns the captured draft, or nil when the agent never called the
// tool during this turn.
func (t *prepareTicketTool) Draft() *TicketDraft {
	return t.draft
}

func (t *prepareTicketTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "prepare_ticket",
		Description: "Prepare a support ticket once the customer's problem and contact details have been collected",
		Parameters: map[string]*gollem.Parameter{
			"name": {
				Type:        gollem.TypeString,
				Description: "Customer's full name",
				Required:    true,
			},
			"email": {
				Type:        gollem.TypeString,
				Description: "Customer's email address",
				Required:    true,
			},
			"phone": {
				Type:        gollem.TypeString,
				Description: "Customer's phone number, at least 10 digits",
				Required:    true,
			},
			"company": {
				Type:        gollem.TypeString,
				Description: "Customer's company name",
				Required:    true,
			},
			"priority": {
				Type:        gollem.TypeString,
				Description: "Assessed priority of the issue",
				Required:    true,
				Enum:        draftPriorities,
			},
			"description": {
				Type:        gollem.TypeString,
				Description: "Clear description of the problem for the assigned technician",
				Required:    true,
			},
			"conversation_summary": {
				Type:        gollem.TypeString,
				Description: "Short summary of the whole conversation",
				Required:    true,
			},
			"troubleshooting": {
				Type:        gollem.TypeObject,
				Description: "Troubleshooting steps already attempted, as step/result pairs",
				Required:    false,
			},
		},
	}
}

func (t *prepareTicketTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	draft := TicketDraft{
		Name:                strings.TrimSpace(stringArg(args, "name")),
		Email:               strings.TrimSpace(stringArg(args, "email")),
		Phone:               strings.TrimSpace(stringArg(args, "phone")),
		Company:             strings.TrimSpace(stringArg(args, "company")),
		Priority:            strings.ToLower(strings.TrimSpace(stringArg(args, "priority"))),
		Description:         strings.TrimSpace(stringArg(args, "description")),
		ConversationSummary: strings.TrimSpace(stringArg(args, "conversation_summary")),
	}

	if draft.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if _, err := mail.ParseAddress(draft.Email); err != nil {
		return nil, fmt.Errorf("invalid email address %q: ask the customer to confirm it", draft.Email)
	}
	if digitCount(draft.Phone) < 10 {
		return nil, fmt.Errorf("phone number %q has fewer than 10 digits: ask the customer to confirm it", draft.Phone)
	}
	if draft.Description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if !validDraftPriority(draft.Priority) {
		return nil, fmt.Errorf("invalid priority %q: must be one of low, medium, high, critical", draft.Priority)
	}

	if raw, ok := args["troubleshooting"].(map[string]any); ok {
		draft.Troubleshooting = make(map[string]string, len(raw))
		for step, result := range raw {
			if s, ok := result.(string); ok {
				draft.Troubleshooting[step] = s
			}
		}
	}

	t.draft = &draft
	return map[string]any{"status": "ticket prepared"}, nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func validDraftPriority(p string) bool {
	for _, v := range draftPriorities {
		if p == v {
			return true
		}
	}
	return false
}
