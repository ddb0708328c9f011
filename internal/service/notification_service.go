package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/americanreliabletech/support-portal/internal/config"
	"github.com/americanreliabletech/support-portal/internal/events"
	"github.com/americanreliabletech/support-portal/internal/mail"
)

// NotificationService turns domain events into transactional emails. Every
// send is best effort: a failed email is logged and the event is considered
// handled, it never fails the request that produced it.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     mail.Sender
	logger     *zap.Logger
	mailCfg    config.MailConfig
	siteURL    string
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender mail.Sender, logger *zap.Logger, mailCfg config.MailConfig, siteURL string) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
		mailCfg:    mailCfg,
		siteURL:    siteURL,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketReplyAdded, n.handleTicketReplyAdded)
	n.dispatcher.Subscribe(events.EventContactSubmitted, n.handleContactSubmitted)
	n.dispatcher.Subscribe(events.EventServiceRequested, n.handleServiceRequested)
	n.dispatcher.Subscribe(events.EventConsultationScheduled, n.handleConsultationScheduled)
	n.dispatcher.Subscribe(events.EventOTPIssued, n.handleOTPIssued)
}

// handleTicketCreated sends the internal alert to the support inbox and the
// confirmation to the customer. One attempt each.
func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	t := payload.Ticket

	attachments := make([]string, 0, len(t.Attachments))
	for _, a := range t.Attachments {
		attachments = append(attachments, a.URL)
	}

	subject, html, err := mail.RenderTicketInternal(mail.TicketInternalData{
		TicketNumber:    t.TicketNumber,
		Name:            t.Name,
		Email:           t.Email,
		Phone:           t.Phone,
		Company:         t.Company,
		Priority:        string(t.Priority),
		SLAResponseTime: t.SLAResponseTime,
		Category:        t.Category,
		Subject:         t.Subject,
		Description:     t.Description,
		Conversation:    payload.Conversation,
		Troubleshooting: payload.Troubleshooting,
		Attachments:     attachments,
	})
	if err == nil {
		n.send(ctx, mail.Message{
			From:    n.mailCfg.FromAddress,
			To:      []string{n.mailCfg.SupportInbox},
			ReplyTo: t.Email,
			Subject: subject,
			HTML:    html,
		}, "ticket_internal", t.TicketNumber)
	} else {
		n.logger.Error("render ticket internal email failed", zap.Error(err))
	}

	subject, html, err = mail.RenderTicketConfirmation(mail.TicketConfirmationData{
		TicketNumber:    t.TicketNumber,
		Name:            t.Name,
		Email:           t.Email,
		Priority:        string(t.Priority),
		IssueSummary:    t.Subject,
		SLAResponseTime: t.SLAResponseTime,
	})
	if err == nil {
		n.send(ctx, mail.Message{
			From:    n.mailCfg.FromAddress,
			To:      []string{t.Email},
			Subject: subject,
			HTML:    html,
		}, "ticket_confirmation", t.TicketNumber)
	} else {
		n.logger.Error("render ticket confirmation email failed", zap.Error(err))
	}
	return nil
}

// handleTicketReplyAdded notifies the customer of staff replies. Internal
// notes never leave the building.
func (n *NotificationService) handleTicketReplyAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketReplyAddedPayload)
	if !ok {
		return nil
	}
	if payload.Reply.IsInternal {
		return nil
	}
	// The customer does not need a copy of their own reply.
	if strings.EqualFold(payload.Reply.AuthorEmail, payload.Ticket.Email) {
		return nil
	}

	subject, html, err := mail.RenderReplyNotification(mail.ReplyNotificationData{
		TicketNumber: payload.Ticket.TicketNumber,
		Subject:      payload.Ticket.Subject,
		CustomerName: payload.Ticket.Name,
		AuthorName:   payload.Reply.AuthorName,
		ReplyText:    payload.Reply.Body,
		TrackURL:     n.trackURL(payload.Ticket.TicketNumber, payload.Ticket.Email),
	})
	if err != nil {
		n.logger.Error("render reply notification failed", zap.Error(err))
		return nil
	}
	n.send(ctx, mail.Message{
		From:    n.mailCfg.FromAddress,
		To:      []string{payload.Ticket.Email},
		Subject: subject,
		HTML:    html,
	}, "reply_notification", payload.Ticket.TicketNumber)
	return nil
}

func (n *NotificationService) handleContactSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactSubmittedPayload)
	if !ok {
		return nil
	}
	subject, html, err := mail.RenderContact(mail.ContactData{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Company: payload.Company,
		Subject: payload.Subject,
		Body:    payload.Body,
	})
	if err != nil {
		n.logger.Error("render contact email failed", zap.Error(err))
		return nil
	}
	n.send(ctx, mail.Message{
		From:    n.mailCfg.FromAddress,
		To:      []string{n.mailCfg.AdminInbox},
		ReplyTo: payload.Email,
		Subject: subject,
		HTML:    html,
	}, "contact", payload.Email)
	return nil
}

func (n *NotificationService) handleServiceRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ServiceRequestedPayload)
	if !ok {
		return nil
	}
	data := mail.ServiceRequestData{
		TicketNumber: payload.TicketNumber,
		Name:         payload.Name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Company:      payload.Company,
		PlanName:     payload.PlanName,
		Billing:      payload.Billing,
		Quantity:     payload.Quantity,
		TotalPrice:   payload.TotalPrice,
		Notes:        payload.Notes,
	}

	if subject, html, err := mail.RenderServiceRequestAdmin(data); err == nil {
		n.send(ctx, mail.Message{
			From:    n.mailCfg.FromAddress,
			To:      []string{n.mailCfg.SalesInbox},
			ReplyTo: payload.Email,
			Subject: subject,
			HTML:    html,
		}, "service_request_admin", payload.TicketNumber)
	} else {
		n.logger.Error("render service request admin email failed", zap.Error(err))
	}

	if subject, html, err := mail.RenderServiceRequestCustomer(data); err == nil {
		n.send(ctx, mail.Message{
			From:    n.mailCfg.FromAddress,
			To:      []string{payload.Email},
			Subject: subject,
			HTML:    html,
		}, "service_request_customer", payload.TicketNumber)
	} else {
		n.logger.Error("render service request customer email failed", zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleConsultationScheduled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ConsultationScheduledPayload)
	if !ok {
		return nil
	}
	data := mail.ConsultationData{
		TicketNumber: payload.TicketNumber,
		Name:         payload.Name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Company:      payload.Company,
		Topic:        payload.Topic,
		StartsAt:     payload.StartsAt,
		Timezone:     payload.Timezone,
	}

	if subject, html, err := mail.RenderConsultationAdmin(data); err == nil {
		n.send(ctx, mail.Message{
			From:    n.mailCfg.FromAddress,
			To:      []string{n.mailCfg.SalesInbox},
			ReplyTo: payload.Email,
			Subject: subject,
			HTML:    html,
		}, "consultation_admin", payload.TicketNumber)
	} else {
		n.logger.Error("render consultation admin email failed", zap.Error(err))
	}

	if subject, html, err := mail.RenderConsultationCustomer(data); err == nil {
		n.send(ctx, mail.Message{
			From:    n.mailCfg.FromAddress,
			To:      []string{payload.Email},
			Subject: subject,
			HTML:    html,
		}, "consultation_customer", payload.TicketNumber)
	} else {
		n.logger.Error("render consultation customer email failed", zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleOTPIssued(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OTPIssuedPayload)
	if !ok {
		return nil
	}
	subject, html, err := mail.RenderOTPCode(payload.Code)
	if err != nil {
		n.logger.Error("render otp email failed", zap.Error(err))
		return nil
	}
	n.send(ctx, mail.Message{
		From:    n.mailCfg.FromAddress,
		To:      []string{payload.Email},
		Subject: subject,
		HTML:    html,
	}, "otp_code", payload.Phone)
	return nil
}

func (n *NotificationService) send(ctx context.Context, msg mail.Message, kind, ref string) {
	if n.sender == nil {
		return
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		n.logger.Error("email send failed",
			zap.String("kind", kind),
			zap.String("ref", ref),
			zap.Error(err))
		return
	}
	n.logger.Info("email sent", zap.String("kind", kind), zap.String("ref", ref))
}

func (n *NotificationService) trackURL(ticketNumber, email string) string {
	q := url.Values{}
	q.Set("ticket", ticketNumber)
	q.Set("email", email)
	return fmt.Sprintf("%s/support/track?%s", n.siteURL, q.Encode())
}
