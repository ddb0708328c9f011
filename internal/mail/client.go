package mail

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/americanreliabletech/support-portal/internal/config"
)

// Attachment is a file sent along with an email.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a single outbound email.
type Message struct {
	From        string
	To          []string
	ReplyTo     string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Sender delivers transactional email. Implementations make exactly one
// attempt; callers decide whether failure is fatal.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ResendClient sends email through the Resend HTTP API.
type ResendClient struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewResendClient builds a client from mail configuration.
func NewResendClient(cfg config.MailConfig, logger *zap.Logger) *ResendClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	return &ResendClient{http: client, logger: logger}
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type resendRequest struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	ReplyTo     string             `json:"reply_to,omitempty"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html,omitempty"`
	Text        string             `json:"text,omitempty"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// Send posts the message to the Resend API. One attempt, no retries.
func (c *ResendClient) Send(ctx context.Context, msg Message) error {
	req := resendRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
	for _, att := range msg.Attachments {
		req.Attachments = append(req.Attachments, resendAttachment{
			Filename: att.Filename,
			Content:  base64.StdEncoding.EncodeToString(att.Content),
		})
	}

	var out resendResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("send email: status %d: %s", resp.StatusCode(), resp.String())
	}

	c.logger.Debug("email sent",
		zap.String("id", out.ID),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
