package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/americanreliabletech/support-portal/internal/events"
)

func TestSubmitServiceRequestMintsReference(t *testing.T) {
	dispatcher := &capturingDispatcher{}
	svc := NewIntakeService(dispatcher)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC) }

	ref, err := svc.SubmitServiceRequest(context.Background(), ServiceRequestInput{
		Name:       "Pat Doe",
		Email:      "Pat@Acme.com",
		Phone:      "9495551234",
		Company:    "Acme Corp",
		PlanName:   "Managed IT Pro",
		Billing:    "monthly",
		Quantity:   25,
		TotalPrice: "$2,475.00/mo",
	})
	require.NoError(t, err)
	assert.Equal(t, "ART-060125140000", ref)

	published := dispatcher.byType(events.EventServiceRequested)
	require.Len(t, published, 1)
	payload := published[0].Payload.(events.ServiceRequestedPayload)
	assert.Equal(t, "pat@acme.com", payload.Email)
	assert.Equal(t, ref, payload.TicketNumber)
}

func TestSubmitServiceRequestRejectsZeroQuantity(t *testing.T) {
	svc := NewIntakeService(&capturingDispatcher{})
	_, err := svc.SubmitServiceRequest(context.Background(), ServiceRequestInput{Quantity: 0})
	require.Error(t, err)
}

func TestScheduleConsultationRejectsPastSlot(t *testing.T) {
	dispatcher := &capturingDispatcher{}
	svc := NewIntakeService(dispatcher)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC) }

	_, err := svc.ScheduleConsultation(context.Background(), ConsultationInput{
		Name:     "Pat Doe",
		Email:    "pat@acme.com",
		StartsAt: time.Date(2025, 5, 31, 10, 0, 0, 0, time.UTC),
		Timezone: "America/Los_Angeles",
	})
	require.Error(t, err)

	ref, err := svc.ScheduleConsultation(context.Background(), ConsultationInput{
		Name:     "Pat Doe",
		Email:    "pat@acme.com",
		StartsAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		Timezone: "America/Los_Angeles",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "ART-"))
	require.Len(t, dispatcher.byType(events.EventConsultationScheduled), 1)
}

func TestSubmitContactPublishes(t *testing.T) {
	dispatcher := &capturingDispatcher{}
	svc := NewIntakeService(dispatcher)

	require.NoError(t, svc.SubmitContact(context.Background(), ContactInput{
		Name:    "Pat Doe",
		Email:   "pat@acme.com",
		Subject: "Question about onboarding",
		Body:    "How fast can you onboard 30 seats?",
	}))
	require.Len(t, dispatcher.byType(events.EventContactSubmitted), 1)
}
