package events

import (
	"time"

	"github.com/americanreliabletech/support-portal/internal/domain"
	"github.com/americanreliabletech/support-portal/internal/mail"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketReplyAdded      EventType = "ticket_reply_added"
	EventContactSubmitted      EventType = "contact_submitted"
	EventServiceRequested      EventType = "service_requested"
	EventConsultationScheduled EventType = "consultation_scheduled"
	EventOTPIssued             EventType = "otp_issued"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload carries everything the notification handlers need to
// send the internal alert and customer confirmation without reloading state.
type TicketCreatedPayload struct {
	Ticket          domain.Ticket     `json:"ticket"`
	Conversation    []mail.QA         `json:"conversation,omitempty"`
	Troubleshooting map[string]string `json:"troubleshooting,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	Ticket    domain.Ticket       `json:"ticket"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Ticket         domain.Ticket `json:"ticket"`
	AssignedTechID *string       `json:"assigned_tech_id,omitempty"`
}

// TicketReplyAddedPayload payload.
type TicketReplyAddedPayload struct {
	Ticket domain.Ticket      `json:"ticket"`
	Reply  domain.TicketReply `json:"reply"`
}

// ContactSubmittedPayload payload.
type ContactSubmittedPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ServiceRequestedPayload payload.
type ServiceRequestedPayload struct {
	TicketNumber string `json:"ticket_number"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Company      string `json:"company"`
	PlanName     string `json:"plan_name"`
	Billing      string `json:"billing"`
	Quantity     int    `json:"quantity"`
	TotalPrice   string `json:"total_price"`
	Notes        string `json:"notes,omitempty"`
}

// ConsultationScheduledPayload payload.
type ConsultationScheduledPayload struct {
	TicketNumber string    `json:"ticket_number"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Company      string    `json:"company,omitempty"`
	Topic        string    `json:"topic,omitempty"`
	StartsAt     time.Time `json:"starts_at"`
	Timezone     string    `json:"timezone"`
}

// OTPIssuedPayload payload.
type OTPIssuedPayload struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
	Code  string `json:"code"`
}
