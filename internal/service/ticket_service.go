package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/americanreliabletech/support-portal/internal/domain"
	"github.com/americanreliabletech/support-portal/internal/events"
	"github.com/americanreliabletech/support-portal/internal/mail"
	"github.com/americanreliabletech/support-portal/internal/repository"
	apperrors "github.com/americanreliabletech/support-portal/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	replies    repository.ReplyRepository
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	ReplyRepo   repository.ReplyRepository
	ProfileRepo repository.ProfileRepository
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Name            string
	Email           string
	Phone           string
	Company         string
	Subject         string
	Description     string
	Category        string
	Impact          domain.Impact
	Urgency         domain.Urgency
	Attachments     []domain.Attachment
	Conversation    []mail.QA
	Troubleshooting map[string]string
}

// ReplyInput describes a new thread entry.
type ReplyInput struct {
	AuthorID    *string
	AuthorName  string
	AuthorEmail string
	Body        string
	IsInternal  bool
	Attachments []domain.Attachment
}

// TicketThread pairs a ticket with its visible replies.
type TicketThread struct {
	Ticket  *domain.Ticket
	Replies []domain.TicketReply
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		replies:    deps.ReplyRepo,
		profiles:   deps.ProfileRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// CreateTicket derives priority from the reported impact and urgency,
// persists the ticket and emits a creation event for the notifiers.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	priority := domain.PriorityFor(input.Impact, input.Urgency)
	createdAt := s.now()

	ticket := &domain.Ticket{
		ID:              uuid.NewString(),
		TicketNumber:    domain.NewTicketNumber(createdAt),
		Name:            strings.TrimSpace(input.Name),
		Email:           strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:           strings.TrimSpace(input.Phone),
		Company:         strings.TrimSpace(input.Company),
		Subject:         strings.TrimSpace(input.Subject),
		Description:     strings.TrimSpace(input.Description),
		Category:        strings.TrimSpace(input.Category),
		Impact:          input.Impact,
		Urgency:         input.Urgency,
		Priority:        priority,
		SLAResponseTime: domain.SLAResponseTime(priority),
		Status:          domain.TicketStatusOpen,
		Attachments:     input.Attachments,
	}
	if ticket.Subject == "" {
		ticket.Subject = summarize(ticket.Description)
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			Ticket:          *ticket,
			Conversation:    input.Conversation,
			Troubleshooting: input.Troubleshooting,
		},
	})
	return ticket, nil
}

// TrackTicket looks a ticket up by number and submitter email. Internal
// notes are stripped before the thread leaves the service.
func (s *TicketService) TrackTicket(ctx context.Context, ticketNumber, email string) (*TicketThread, error) {
	ticket, err := s.tickets.GetByNumberAndEmail(ctx, strings.TrimSpace(ticketNumber), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	replies, err := s.replies.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &TicketThread{Ticket: ticket, Replies: externalOnly(replies)}, nil
}

// ListTickets returns tickets matching an admin filter.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListTicketsForEmail returns the tickets a signed-in customer submitted.
func (s *TicketService) ListTicketsForEmail(ctx context.Context, email string, limit, offset int) ([]domain.Ticket, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return s.ListTickets(ctx, repository.TicketFilter{
		Email:  &normalized,
		Limit:  limit,
		Offset: offset,
	})
}

// GetTicketForAdmin fetches a ticket with its full thread, notes included.
func (s *TicketService) GetTicketForAdmin(ctx context.Context, ticketID string) (*TicketThread, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	replies, err := s.replies.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &TicketThread{Ticket: ticket, Replies: replies}, nil
}

// GetTicketForUser fetches a ticket owned by the given email, with internal
// notes stripped.
func (s *TicketService) GetTicketForUser(ctx context.Context, ticketID, email string) (*TicketThread, error) {
	thread, err := s.GetTicketForAdmin(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(thread.Ticket.Email, strings.TrimSpace(email)) {
		return nil, apperrors.NewForbidden("ticket belongs to another account")
	}
	thread.Replies = externalOnly(thread.Replies)
	return thread, nil
}

// UpdateStatus moves a ticket to a new lifecycle state.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.ValidStatus(status) {
		return nil, apperrors.NewValidationError("unknown ticket status", map[string]any{"status": string(status)})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	oldStatus := ticket.Status
	if err := s.tickets.SetStatus(ctx, ticketID, status); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Status = status

	s.publish(ctx, events.Event{
		Type: events.EventTicketStatusChanged,
		Payload: events.TicketStatusChangedPayload{
			Ticket:    *ticket,
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return ticket, nil
}

// AssignTechnician assigns a technician to a ticket, or clears the
// assignment when techID is nil.
func (s *TicketService) AssignTechnician(ctx context.Context, ticketID string, techID *string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if techID != nil {
		if _, err := s.profiles.GetByID(ctx, *techID); err != nil {
			return nil, apperrors.NewValidationError("unknown technician", map[string]any{"tech_id": *techID})
		}
	}
	if err := s.tickets.SetAssignee(ctx, ticketID, techID); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.AssignedTechID = techID

	s.publish(ctx, events.Event{
		Type: events.EventTicketAssigned,
		Payload: events.TicketAssignedPayload{
			Ticket:         *ticket,
			AssignedTechID: techID,
		},
	})
	return ticket, nil
}

// AddReply appends a reply or internal note to the thread and bumps the
// ticket's updated_at so it surfaces in recently-active views.
func (s *TicketService) AddReply(ctx context.Context, ticketID string, input ReplyInput) (*domain.TicketReply, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, apperrors.NewValidationError("reply body is required", nil)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	reply := &domain.TicketReply{
		ID:          uuid.NewString(),
		TicketID:    ticket.ID,
		AuthorID:    input.AuthorID,
		AuthorName:  strings.TrimSpace(input.AuthorName),
		AuthorEmail: strings.ToLower(strings.TrimSpace(input.AuthorEmail)),
		Body:        body,
		IsInternal:  input.IsInternal,
		Attachments: input.Attachments,
	}
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.tickets.Touch(ctx, ticket.ID); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type: events.EventTicketReplyAdded,
		Payload: events.TicketReplyAddedPayload{
			Ticket: *ticket,
			Reply:  *reply,
		},
	})
	return reply, nil
}

// ListTechnicians returns assignable staff profiles.
func (s *TicketService) ListTechnicians(ctx context.Context) ([]domain.UserProfile, error) {
	techs, err := s.profiles.ListTechnicians(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return techs, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}

func externalOnly(replies []domain.TicketReply) []domain.TicketReply {
	visible := make([]domain.TicketReply, 0, len(replies))
	for _, r := range replies {
		if !r.IsInternal {
			visible = append(visible, r)
		}
	}
	return visible
}

func summarize(description string) string {
	const maxLen = 80
	s := strings.TrimSpace(description)
	if len(s) <= maxLen {
		return s
	}
	return strings.TrimSpace(s[:maxLen]) + "..."
}
