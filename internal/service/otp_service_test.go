package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/americanreliabletech/support-portal/internal/events"
	"github.com/americanreliabletech/support-portal/internal/otp"
	apperrors "github.com/americanreliabletech/support-portal/pkg/util"
)

func newOTPServiceForTest(t *testing.T) (*OTPService, *capturingDispatcher) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	dispatcher := &capturingDispatcher{}
	return NewOTPService(otp.NewStore(client, 5*time.Minute), dispatcher), dispatcher
}

func TestSendCodePublishesEmailEvent(t *testing.T) {
	svc, dispatcher := newOTPServiceForTest(t)

	require.NoError(t, svc.SendCode(context.Background(), "9495551234", "pat@acme.com"))

	published := dispatcher.byType(events.EventOTPIssued)
	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.OTPIssuedPayload)
	require.True(t, ok)
	assert.Equal(t, "pat@acme.com", payload.Email)
	assert.Len(t, payload.Code, 6)

	require.NoError(t, svc.VerifyCode(context.Background(), "9495551234", payload.Code))
}

func TestVerifyCodeErrorMessages(t *testing.T) {
	svc, dispatcher := newOTPServiceForTest(t)

	err := svc.VerifyCode(context.Background(), "9495551234", "000000")
	require.Error(t, err)
	assert.Equal(t, "No verification code found. Please request a new one.", apperrors.ToDomainError(err).Message)

	require.NoError(t, svc.SendCode(context.Background(), "9495551234", "pat@acme.com"))
	err = svc.VerifyCode(context.Background(), "9495551234", "999999")
	require.Error(t, err)
	assert.Equal(t, "Invalid verification code. Please try again.", apperrors.ToDomainError(err).Message)

	// A mismatch does not burn the code.
	payload := dispatcher.byType(events.EventOTPIssued)[0].Payload.(events.OTPIssuedPayload)
	if payload.Code == "999999" {
		t.Skip("generated code collided with the test's wrong guess")
	}
	require.NoError(t, svc.VerifyCode(context.Background(), "9495551234", payload.Code))
}
