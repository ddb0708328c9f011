package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityForMatrix(t *testing.T) {
	cases := []struct {
		impact  Impact
		urgency Urgency
		want    TicketPriority
	}{
		{ImpactCritical, UrgencyCritical, PriorityCritical},
		{ImpactCritical, UrgencyHigh, PriorityHigh},
		{ImpactCritical, UrgencyMedium, PriorityHigh},
		{ImpactCritical, UrgencyLow, PriorityMedium},
		{ImpactHigh, UrgencyCritical, PriorityHigh},
		{ImpactHigh, UrgencyHigh, PriorityHigh},
		{ImpactHigh, UrgencyMedium, PriorityMedium},
		{ImpactHigh, UrgencyLow, PriorityMedium},
		{ImpactMedium, UrgencyCritical, PriorityHigh},
		{ImpactMedium, UrgencyHigh, PriorityMedium},
		{ImpactMedium, UrgencyMedium, PriorityMedium},
		{ImpactMedium, UrgencyLow, PriorityLow},
		{ImpactLow, UrgencyCritical, PriorityMedium},
		{ImpactLow, UrgencyHigh, PriorityMedium},
		{ImpactLow, UrgencyMedium, PriorityLow},
		{ImpactLow, UrgencyLow, PriorityLow},
	}

	for _, tc := range cases {
		got := PriorityFor(tc.impact, tc.urgency)
		assert.Equalf(t, tc.want, got, "impact=%s urgency=%s", tc.impact, tc.urgency)
	}
}

func TestPriorityForIsSymmetric(t *testing.T) {
	levels := []string{"Critical", "High", "Medium", "Low"}
	for _, a := range levels {
		for _, b := range levels {
			assert.Equal(t,
				PriorityFor(Impact(a), Urgency(b)),
				PriorityFor(Impact(b), Urgency(a)),
				"matrix must be symmetric for %s/%s", a, b)
		}
	}
}

func TestPriorityForUnknownInputs(t *testing.T) {
	assert.Equal(t, PriorityMedium, PriorityFor("Unknown", UrgencyCritical))
	assert.Equal(t, PriorityMedium, PriorityFor(ImpactCritical, "Whatever"))
	assert.Equal(t, PriorityMedium, PriorityFor("", ""))
}

func TestSLAResponseTime(t *testing.T) {
	assert.Equal(t, "1 hour", SLAResponseTime(PriorityCritical))
	assert.Equal(t, "4 hours", SLAResponseTime(PriorityHigh))
	assert.Equal(t, "24 hours", SLAResponseTime(PriorityMedium))
	assert.Equal(t, "48 hours", SLAResponseTime(PriorityLow))
	assert.Equal(t, "24 hours", SLAResponseTime("Urgent"))
	assert.Equal(t, "24 hours", SLAResponseTime(""))
}
