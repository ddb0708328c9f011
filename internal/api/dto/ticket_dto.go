package dto

import (
	"time"

	"github.com/americanreliabletech/support-portal/internal/domain"
	"github.com/americanreliabletech/support-portal/internal/service"
)

// AttachmentPayload mirrors a stored file reference on the wire.
type AttachmentPayload struct {
	FileName string `json:"file_name" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
}

// CreateTicketRequest is the public intake payload.
type CreateTicketRequest struct {
	Name        string              `json:"name" validate:"required"`
	Email       string              `json:"email" validate:"required,email"`
	Phone       string              `json:"phone" validate:"omitempty,min=10"`
	Company     string              `json:"company"`
	Subject     string              `json:"subject"`
	Description string              `json:"description" validate:"required"`
	Category    string              `json:"category"`
	Impact      string              `json:"impact" validate:"required,oneof=Critical High Medium Low"`
	Urgency     string              `json:"urgency" validate:"required,oneof=Critical High Medium Low"`
	Attachments []AttachmentPayload `json:"attachments" validate:"dive"`
}

// ToInput converts the request into the service payload.
func (r CreateTicketRequest) ToInput() service.TicketCreateInput {
	return service.TicketCreateInput{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Company:     r.Company,
		Subject:     r.Subject,
		Description: r.Description,
		Category:    r.Category,
		Impact:      domain.Impact(r.Impact),
		Urgency:     domain.Urgency(r.Urgency),
		Attachments: toAttachments(r.Attachments),
	}
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignTechRequest payload. A null tech_id clears the assignment.
type AssignTechRequest struct {
	TechID *string `json:"tech_id"`
}

// AddReplyRequest payload for both replies and internal notes.
type AddReplyRequest struct {
	Body        string              `json:"body" validate:"required"`
	IsInternal  bool                `json:"is_internal"`
	Attachments []AttachmentPayload `json:"attachments" validate:"dive"`
}

// TrackTicketQuery captures the public tracking lookup.
type TrackTicketQuery struct {
	TicketNumber string `query:"ticket" validate:"required"`
	Email        string `query:"email" validate:"required,email"`
}

// TicketSummary response.
type TicketSummary struct {
	ID              string  `json:"id"`
	TicketNumber    string  `json:"ticket_number"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Company         string  `json:"company"`
	Subject         string  `json:"subject"`
	Category        string  `json:"category"`
	Priority        string  `json:"priority"`
	SLAResponseTime string  `json:"sla_response_time"`
	Status          string  `json:"status"`
	AssignedTechID  *string `json:"assigned_tech_id"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// TicketDetailResponse provides the full ticket with its thread.
type TicketDetailResponse struct {
	TicketSummary
	Phone       string              `json:"phone"`
	Description string              `json:"description"`
	Impact      string              `json:"impact"`
	Urgency     string              `json:"urgency"`
	Attachments []AttachmentPayload `json:"attachments"`
	Replies     []ReplyResponse     `json:"replies"`
}

// ReplyResponse represents one thread entry.
type ReplyResponse struct {
	ID          string              `json:"id"`
	AuthorID    *string             `json:"author_id"`
	AuthorName  string              `json:"author_name"`
	Body        string              `json:"body"`
	IsInternal  bool                `json:"is_internal"`
	Attachments []AttachmentPayload `json:"attachments"`
	CreatedAt   string              `json:"created_at"`
}

// NewTicketSummary maps the domain aggregate.
func NewTicketSummary(t domain.Ticket) TicketSummary {
	return TicketSummary{
		ID:              t.ID,
		TicketNumber:    t.TicketNumber,
		Name:            t.Name,
		Email:           t.Email,
		Company:         t.Company,
		Subject:         t.Subject,
		Category:        t.Category,
		Priority:        string(t.Priority),
		SLAResponseTime: t.SLAResponseTime,
		Status:          string(t.Status),
		AssignedTechID:  t.AssignedTechID,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.Format(time.RFC3339),
	}
}

// NewTicketSummaries maps a list.
func NewTicketSummaries(tickets []domain.Ticket) []TicketSummary {
	out := make([]TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, NewTicketSummary(t))
	}
	return out
}

// NewTicketDetail maps a thread.
func NewTicketDetail(thread *service.TicketThread) TicketDetailResponse {
	t := thread.Ticket
	replies := make([]ReplyResponse, 0, len(thread.Replies))
	for _, r := range thread.Replies {
		replies = append(replies, ReplyResponse{
			ID:          r.ID,
			AuthorID:    r.AuthorID,
			AuthorName:  r.AuthorName,
			Body:        r.Body,
			IsInternal:  r.IsInternal,
			Attachments: fromAttachments(r.Attachments),
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		})
	}
	return TicketDetailResponse{
		TicketSummary: NewTicketSummary(*t),
		Phone:         t.Phone,
		Description:   t.Description,
		Impact:        string(t.Impact),
		Urgency:       string(t.Urgency),
		Attachments:   fromAttachments(t.Attachments),
		Replies:       replies,
	}
}

func toAttachments(in []AttachmentPayload) []domain.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, domain.Attachment{FileName: a.FileName, URL: a.URL})
	}
	return out
}

func fromAttachments(in []domain.Attachment) []AttachmentPayload {
	out := make([]AttachmentPayload, 0, len(in))
	for _, a := range in {
		out = append(out, AttachmentPayload{FileName: a.FileName, URL: a.URL})
	}
	return out
}
