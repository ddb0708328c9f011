package dto

import (
	"time"

	"github.com/americanreliabletech/support-portal/internal/service"
)

// ContactRequest is a contact form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

// ToInput converts to the service payload.
func (r ContactRequest) ToInput() service.ContactInput {
	return service.ContactInput(r)
}

// ServiceRequestRequest is a managed-plan purchase request.
type ServiceRequestRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=10"`
	Company    string `json:"company" validate:"required"`
	PlanName   string `json:"plan_name" validate:"required"`
	Billing    string `json:"billing" validate:"required,oneof=monthly yearly"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	TotalPrice string `json:"total_price" validate:"required"`
	Notes      string `json:"notes"`
}

// ToInput converts to the service payload.
func (r ServiceRequestRequest) ToInput() service.ServiceRequestInput {
	return service.ServiceRequestInput(r)
}

// ConsultationRequest books a consultation slot.
type ConsultationRequest struct {
	Name     string    `json:"name" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	Phone    string    `json:"phone" validate:"required,min=10"`
	Company  string    `json:"company"`
	Topic    string    `json:"topic"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	Timezone string    `json:"timezone" validate:"required"`
}

// ToInput converts to the service payload.
func (r ConsultationRequest) ToInput() service.ConsultationInput {
	return service.ConsultationInput(r)
}

// ReferenceResponse returns a minted reference number.
type ReferenceResponse struct {
	TicketNumber string `json:"ticket_number"`
}
