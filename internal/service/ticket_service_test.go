package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/americanreliabletech/support-portal/internal/domain"
	"github.com/americanreliabletech/support-portal/internal/events"
	"github.com/americanreliabletech/support-portal/internal/repository"
)

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	copied := *t
	r.tickets[t.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTicketRepo) GetByNumberAndEmail(ctx context.Context, number, email string) (*domain.Ticket, error) {
	for _, t := range r.tickets {
		if t.TicketNumber == number && t.Email == email {
			copied := *t
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range r.tickets {
		if filter.Email != nil && t.Email != *filter.Email {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTicketRepo) SetStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	t, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.Status = status
	return nil
}

func (r *fakeTicketRepo) SetAssignee(ctx context.Context, id string, techID *string) error {
	t, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.AssignedTechID = techID
	return nil
}

func (r *fakeTicketRepo) Touch(ctx context.Context, id string) error {
	t, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.UpdatedAt = time.Now()
	return nil
}

type fakeReplyRepo struct {
	replies map[string][]domain.TicketReply
}

func newFakeReplyRepo() *fakeReplyRepo {
	return &fakeReplyRepo{replies: map[string][]domain.TicketReply{}}
}

func (r *fakeReplyRepo) Create(ctx context.Context, reply *domain.TicketReply) error {
	reply.CreatedAt = time.Now()
	r.replies[reply.TicketID] = append(r.replies[reply.TicketID], *reply)
	return nil
}

func (r *fakeReplyRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketReply, error) {
	return r.replies[ticketID], nil
}

type fakeProfileRepo struct {
	profiles map[string]*domain.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.UserProfile{}}
}

func (r *fakeProfileRepo) Create(ctx context.Context, p *domain.UserProfile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	copied := *p
	r.profiles[p.ID] = &copied
	return nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, p *domain.UserProfile) error {
	if _, ok := r.profiles[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *p
	r.profiles[p.ID] = &copied
	return nil
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProfileRepo) ListTechnicians(ctx context.Context) ([]domain.UserProfile, error) {
	var out []domain.UserProfile
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

type capturingDispatcher struct {
	published []events.Event
}

func (d *capturingDispatcher) Publish(ctx context.Context, e events.Event) error {
	d.published = append(d.published, e)
	return nil
}

func (d *capturingDispatcher) Subscribe(t events.EventType, h events.EventHandler) {}

func (d *capturingDispatcher) byType(t events.EventType) []events.Event {
	var out []events.Event
	for _, e := range d.published {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func newTicketServiceForTest() (*TicketService, *fakeTicketRepo, *fakeReplyRepo, *fakeProfileRepo, *capturingDispatcher) {
	tickets := newFakeTicketRepo()
	replies := newFakeReplyRepo()
	profiles := newFakeProfileRepo()
	dispatcher := &capturingDispatcher{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo:  tickets,
		ReplyRepo:   replies,
		ProfileRepo: profiles,
		Dispatcher:  dispatcher,
	})
	return svc, tickets, replies, profiles, dispatcher
}

func TestCreateTicketDerivesPriorityAndSLA(t *testing.T) {
	svc, _, _, _, dispatcher := newTicketServiceForTest()
	svc.now = func() time.Time { return time.Date(2025, 3, 7, 9, 5, 2, 0, time.UTC) }

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Name:        "Pat Doe",
		Email:       "Pat@Acme.com",
		Phone:       "9495551234",
		Subject:     "Office network down",
		Description: "Everything is offline.",
		Impact:      domain.ImpactCritical,
		Urgency:     domain.UrgencyCritical,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityCritical, ticket.Priority)
	assert.Equal(t, "1 hour", ticket.SLAResponseTime)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, "ART-030725090502", ticket.TicketNumber)
	assert.Equal(t, "pat@acme.com", ticket.Email)
	require.Len(t, dispatcher.byType(events.EventTicketCreated), 1)
}

func TestCreateTicketLowSeverity(t *testing.T) {
	svc, _, _, _, _ := newTicketServiceForTest()

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Name:        "Pat Doe",
		Email:       "pat@acme.com",
		Description: "The login page logo looks blurry.",
		Impact:      domain.ImpactLow,
		Urgency:     domain.UrgencyLow,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, ticket.Priority)
	assert.Equal(t, "48 hours", ticket.SLAResponseTime)
}

func TestCreateTicketFillsSubjectFromDescription(t *testing.T) {
	svc, _, _, _, _ := newTicketServiceForTest()

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Name:        "Pat Doe",
		Email:       "pat@acme.com",
		Description: "Printer jams on every duplex job.",
		Impact:      domain.ImpactMedium,
		Urgency:     domain.UrgencyMedium,
	})
	require.NoError(t, err)
	assert.Equal(t, "Printer jams on every duplex job.", ticket.Subject)
}

func TestTrackTicketHidesInternalNotes(t *testing.T) {
	svc, _, replies, _, _ := newTicketServiceForTest()

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Name:        "Pat Doe",
		Email:       "pat@acme.com",
		Description: "VPN drops hourly.",
		Impact:      domain.ImpactMedium,
		Urgency:     domain.UrgencyHigh,
	})
	require.NoError(t, err)

	replies.replies[ticket.ID] = []domain.TicketReply{
		{ID: "r1", TicketID: ticket.ID, Body: "We are looking into it.", IsInternal: false},
		{ID: "r2", TicketID: ticket.ID, Body: "Customer sounded frustrated.", IsInternal: true},
	}

	thread, err := svc.TrackTicket(context.Background(), ticket.TicketNumber, "pat@acme.com")
	require.NoError(t, err)
	require.Len(t, thread.Replies, 1)
	assert.Equal(t, "r1", thread.Replies[0].ID)
}

func TestTrackTicketWrongEmail(t *testing.T) {
	svc, _, _, _, _ := newTicketServiceForTest()

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Name:        "Pat Doe",
		Email:       "pat@acme.com",
		Description: "VPN drops hourly.",
		Impact:      domain.ImpactMedium,
		Urgency:     domain.UrgencyMedium,
	})
	require.NoError(t, err)

	_, err = svc.TrackTicket(context.Background(), ticket.TicketNumber, "other@acme.com")
	require.Error(t, err)
}

func TestUpdateStatusRejectsUnknownState(t *testing.T) {
	svc, _, _, _, _ := newTicketServiceForTest()

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Name:        "Pat Doe",
		Email:       "pat@acme.com",
		Description: "x",
		Impact:      domain.ImpactLow,
		Urgency:     domain.UrgencyLow,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatus("Archived"))
	require.Error(t, err)

	updated, err := svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
}

func TestAssignTechnicianValidatesProfile(t *testing.T) {
	svc, _, _, profiles, dispatcher := newTicketServiceForTest()

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Name:        "Pat Doe",
		Email:       "pat@acme.com",
		Description: "x",
		Impact:      domain.ImpactLow,
		Urgency:     domain.UrgencyLow,
	})
	require.NoError(t, err)

	unknown := "no-such-tech"
	_, err = svc.AssignTechnician(context.Background(), ticket.ID, &unknown)
	require.Error(t, err)

	profiles.profiles["tech-1"] = &domain.UserProfile{ID: "tech-1", FullName: "Sam Tech", Role: domain.RoleAdmin}
	techID := "tech-1"
	updated, err := svc.AssignTechnician(context.Background(), ticket.ID, &techID)
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTechID)
	assert.Equal(t, "tech-1", *updated.AssignedTechID)
	require.Len(t, dispatcher.byType(events.EventTicketAssigned), 1)

	cleared, err := svc.AssignTechnician(context.Background(), ticket.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.AssignedTechID)
}

func TestAddReplyPublishesEventAndTouchesTicket(t *testing.T) {
	svc, tickets, _, _, dispatcher := newTicketServiceForTest()

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Name:        "Pat Doe",
		Email:       "pat@acme.com",
		Description: "x",
		Impact:      domain.ImpactLow,
		Urgency:     domain.UrgencyLow,
	})
	require.NoError(t, err)
	before := tickets.tickets[ticket.ID].UpdatedAt

	_, err = svc.AddReply(context.Background(), ticket.ID, ReplyInput{
		AuthorName:  "Sam Tech",
		AuthorEmail: "sam@americanreliabletech.com",
		Body:        "Working on it.",
		IsInternal:  false,
	})
	require.NoError(t, err)
	assert.False(t, tickets.tickets[ticket.ID].UpdatedAt.Before(before))

	published := dispatcher.byType(events.EventTicketReplyAdded)
	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.TicketReplyAddedPayload)
	require.True(t, ok)
	assert.False(t, payload.Reply.IsInternal)

	_, err = svc.AddReply(context.Background(), ticket.ID, ReplyInput{
		AuthorName: "Sam Tech",
		Body:       "   ",
	})
	require.Error(t, err)
}
