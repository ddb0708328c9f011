package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/americanreliabletech/support-portal/internal/domain"
	"github.com/americanreliabletech/support-portal/internal/events"
	apperrors "github.com/americanreliabletech/support-portal/pkg/util"
)

// IntakeService handles the marketing-side intake flows: contact form
// submissions, managed-plan service requests and consultation bookings.
// These flows do not persist anything; they mint a reference number and
// hand off to the notification pipeline.
type IntakeService struct {
	dispatcher events.Dispatcher
	now        func() time.Time
}

func NewIntakeService(dispatcher events.Dispatcher) *IntakeService {
	return &IntakeService{dispatcher: dispatcher, now: time.Now}
}

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Subject string
	Body    string
}

// ServiceRequestInput is a managed-plan purchase request.
type ServiceRequestInput struct {
	Name       string
	Email      string
	Phone      string
	Company    string
	PlanName   string
	Billing    string
	Quantity   int
	TotalPrice string
	Notes      string
}

// ConsultationInput books a free consultation call.
type ConsultationInput struct {
	Name     string
	Email    string
	Phone    string
	Company  string
	Topic    string
	StartsAt time.Time
	Timezone string
}

// SubmitContact forwards a contact form message to the admin inbox.
func (s *IntakeService) SubmitContact(ctx context.Context, input ContactInput) error {
	s.publish(ctx, events.Event{
		Type: events.EventContactSubmitted,
		Payload: events.ContactSubmittedPayload{
			Name:    strings.TrimSpace(input.Name),
			Email:   strings.ToLower(strings.TrimSpace(input.Email)),
			Phone:   strings.TrimSpace(input.Phone),
			Company: strings.TrimSpace(input.Company),
			Subject: strings.TrimSpace(input.Subject),
			Body:    strings.TrimSpace(input.Body),
		},
	})
	return nil
}

// SubmitServiceRequest records a plan purchase request and returns its
// reference number.
func (s *IntakeService) SubmitServiceRequest(ctx context.Context, input ServiceRequestInput) (string, error) {
	if input.Quantity <= 0 {
		return "", apperrors.NewValidationError("quantity must be positive", map[string]any{"quantity": input.Quantity})
	}
	ticketNumber := domain.NewTicketNumber(s.now())
	s.publish(ctx, events.Event{
		Type: events.EventServiceRequested,
		Payload: events.ServiceRequestedPayload{
			TicketNumber: ticketNumber,
			Name:         strings.TrimSpace(input.Name),
			Email:        strings.ToLower(strings.TrimSpace(input.Email)),
			Phone:        strings.TrimSpace(input.Phone),
			Company:      strings.TrimSpace(input.Company),
			PlanName:     strings.TrimSpace(input.PlanName),
			Billing:      strings.TrimSpace(input.Billing),
			Quantity:     input.Quantity,
			TotalPrice:   strings.TrimSpace(input.TotalPrice),
			Notes:        strings.TrimSpace(input.Notes),
		},
	})
	return ticketNumber, nil
}

// ScheduleConsultation books a consultation slot and returns its reference
// number. Slots in the past are rejected.
func (s *IntakeService) ScheduleConsultation(ctx context.Context, input ConsultationInput) (string, error) {
	if input.StartsAt.Before(s.now()) {
		return "", apperrors.NewValidationError("consultation slot is in the past", nil)
	}
	ticketNumber := domain.NewTicketNumber(s.now())
	s.publish(ctx, events.Event{
		Type: events.EventConsultationScheduled,
		Payload: events.ConsultationScheduledPayload{
			TicketNumber: ticketNumber,
			Name:         strings.TrimSpace(input.Name),
			Email:        strings.ToLower(strings.TrimSpace(input.Email)),
			Phone:        strings.TrimSpace(input.Phone),
			Company:      strings.TrimSpace(input.Company),
			Topic:        strings.TrimSpace(input.Topic),
			StartsAt:     input.StartsAt,
			Timezone:     input.Timezone,
		},
	})
	return ticketNumber, nil
}

func (s *IntakeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}
