package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/americanreliabletech/support-portal/internal/events"
	"github.com/americanreliabletech/support-portal/internal/otp"
	apperrors "github.com/americanreliabletech/support-portal/pkg/util"
)

// OTPService issues and checks phone verification codes used by the chat
// intake flow. Codes are delivered by email through the notification
// pipeline.
type OTPService struct {
	store      *otp.Store
	dispatcher events.Dispatcher
	now        func() time.Time
}

func NewOTPService(store *otp.Store, dispatcher events.Dispatcher) *OTPService {
	return &OTPService{store: store, dispatcher: dispatcher, now: time.Now}
}

// SendCode issues a fresh code for the phone number and emits the event
// that emails it to the customer. Re-sending replaces any earlier code.
func (s *OTPService) SendCode(ctx context.Context, phone, email string) error {
	code, err := s.store.Issue(ctx, phone)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOTPIssued,
			Timestamp: s.now(),
			Payload: events.OTPIssuedPayload{
				Phone: phone,
				Email: email,
				Code:  code,
			},
		})
	}
	return nil
}

// VerifyCode checks a submitted code, translating store sentinels into the
// messages the chat widget shows verbatim.
func (s *OTPService) VerifyCode(ctx context.Context, phone, code string) error {
	err := s.store.Verify(ctx, phone, code)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, otp.ErrCodeNotFound):
		return apperrors.NewValidationError("No verification code found. Please request a new one.", nil)
	case errors.Is(err, otp.ErrCodeExpired):
		return apperrors.NewValidationError("Verification code expired. Please request a new one.", nil)
	case errors.Is(err, otp.ErrCodeMismatch):
		return apperrors.NewValidationError("Invalid verification code. Please try again.", nil)
	default:
		return apperrors.NewInternalError(err)
	}
}
