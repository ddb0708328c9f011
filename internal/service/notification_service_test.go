package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/americanreliabletech/support-portal/internal/config"
	"github.com/americanreliabletech/support-portal/internal/domain"
	"github.com/americanreliabletech/support-portal/internal/events"
	"github.com/americanreliabletech/support-portal/internal/mail"
)

type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		FromAddress:  "support@americanreliabletech.com",
		SupportInbox: "support@americanreliabletech.freshdesk.com",
		AdminInbox:   "admin@americanreliabletech.com",
		SalesInbox:   "sales@americanreliabletech.com",
	}
}

func newNotificationHarness(t *testing.T, sender mail.Sender) events.Dispatcher {
	t.Helper()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, sender, zap.NewNop(), testMailConfig(), "https://americanreliabletech.com")
	svc.RegisterHandlers()
	return dispatcher
}

func sampleTicket() domain.Ticket {
	return domain.Ticket{
		ID:              "t1",
		TicketNumber:    "ART-030725090502",
		Name:            "Pat Doe",
		Email:           "pat@acme.com",
		Subject:         "Office network down",
		Description:     "Everything is offline.",
		Priority:        domain.PriorityCritical,
		SLAResponseTime: "1 hour",
		Status:          domain.TicketStatusOpen,
	}
}

func TestTicketCreatedSendsInternalAndConfirmation(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := newNotificationHarness(t, sender)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventTicketCreated,
		Timestamp: time.Now(),
		Payload:   events.TicketCreatedPayload{Ticket: sampleTicket()},
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"support@americanreliabletech.freshdesk.com"}, sender.sent[0].To)
	assert.Equal(t, []string{"pat@acme.com"}, sender.sent[1].To)
}

func TestSendFailureDoesNotFailPublish(t *testing.T) {
	sender := &fakeSender{err: errors.New("resend is down")}
	dispatcher := newNotificationHarness(t, sender)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{Ticket: sampleTicket()},
	})
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestInternalReplyNeverNotifiesCustomer(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := newNotificationHarness(t, sender)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventTicketReplyAdded,
		Payload: events.TicketReplyAddedPayload{
			Ticket: sampleTicket(),
			Reply:  domain.TicketReply{ID: "r1", Body: "internal note", IsInternal: true, AuthorEmail: "sam@americanreliabletech.com"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestExternalReplySendsExactlyOneEmail(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := newNotificationHarness(t, sender)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventTicketReplyAdded,
		Payload: events.TicketReplyAddedPayload{
			Ticket: sampleTicket(),
			Reply:  domain.TicketReply{ID: "r1", AuthorName: "Sam Tech", AuthorEmail: "sam@americanreliabletech.com", Body: "Fixed."},
		},
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"pat@acme.com"}, sender.sent[0].To)
	assert.Contains(t, sender.sent[0].HTML, "support/track")
}

func TestCustomerOwnReplyNotEchoed(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := newNotificationHarness(t, sender)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventTicketReplyAdded,
		Payload: events.TicketReplyAddedPayload{
			Ticket: sampleTicket(),
			Reply:  domain.TicketReply{ID: "r1", AuthorName: "Pat Doe", AuthorEmail: "pat@acme.com", Body: "Any update?"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestServiceRequestSendsAdminAndCustomerEmails(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := newNotificationHarness(t, sender)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventServiceRequested,
		Payload: events.ServiceRequestedPayload{
			TicketNumber: "ART-060125140000",
			Name:         "Pat Doe",
			Email:        "pat@acme.com",
			PlanName:     "Managed IT Pro",
			Billing:      "monthly",
			Quantity:     25,
			TotalPrice:   "$2,475.00/mo",
		},
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"sales@americanreliabletech.com"}, sender.sent[0].To)
	assert.Equal(t, []string{"pat@acme.com"}, sender.sent[1].To)
}

func TestOTPIssuedEmailsCode(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := newNotificationHarness(t, sender)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventOTPIssued,
		Payload: events.OTPIssuedPayload{Phone: "9495551234", Email: "pat@acme.com", Code: "482913"},
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, "482913")
}
