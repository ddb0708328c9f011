package domain

// Impact describes how widely an issue affects the business.
type Impact string

const (
	ImpactCritical Impact = "Critical"
	ImpactHigh     Impact = "High"
	ImpactMedium   Impact = "Medium"
	ImpactLow      Impact = "Low"
)

// Urgency describes how quickly an issue needs attention.
type Urgency string

const (
	UrgencyCritical Urgency = "Critical"
	UrgencyHigh     Urgency = "High"
	UrgencyMedium   Urgency = "Medium"
	UrgencyLow      Urgency = "Low"
)

// TicketPriority is the single severity level derived from impact and urgency.
type TicketPriority string

const (
	PriorityCritical TicketPriority = "Critical"
	PriorityHigh     TicketPriority = "High"
	PriorityMedium   TicketPriority = "Medium"
	PriorityLow      TicketPriority = "Low"
)

// priorityMatrix maps impact then urgency to a priority. Rows and columns
// escalate symmetrically; Critical impact with Low urgency lands on Medium.
var priorityMatrix = map[Impact]map[Urgency]TicketPriority{
	ImpactCritical: {
		UrgencyCritical: PriorityCritical,
		UrgencyHigh:     PriorityHigh,
		UrgencyMedium:   PriorityHigh,
		UrgencyLow:      PriorityMedium,
	},
	ImpactHigh: {
		UrgencyCritical: PriorityHigh,
		UrgencyHigh:     PriorityHigh,
		UrgencyMedium:   PriorityMedium,
		UrgencyLow:      PriorityMedium,
	},
	ImpactMedium: {
		UrgencyCritical: PriorityHigh,
		UrgencyHigh:     PriorityMedium,
		UrgencyMedium:   PriorityMedium,
		UrgencyLow:      PriorityLow,
	},
	ImpactLow: {
		UrgencyCritical: PriorityMedium,
		UrgencyHigh:     PriorityMedium,
		UrgencyMedium:   PriorityLow,
		UrgencyLow:      PriorityLow,
	},
}

// PriorityFor derives the ticket priority from impact and urgency.
// Unknown values fall back to Medium.
func PriorityFor(impact Impact, urgency Urgency) TicketPriority {
	row, ok := priorityMatrix[impact]
	if !ok {
		return PriorityMedium
	}
	priority, ok := row[urgency]
	if !ok {
		return PriorityMedium
	}
	return priority
}

// slaResponseTimes maps priority to the promised first-response window.
var slaResponseTimes = map[TicketPriority]string{
	PriorityCritical: "1 hour",
	PriorityHigh:     "4 hours",
	PriorityMedium:   "24 hours",
	PriorityLow:      "48 hours",
}

// SLAResponseTime returns the response window for a priority.
// Unrecognized priorities fall back to the Medium window.
func SLAResponseTime(priority TicketPriority) string {
	if sla, ok := slaResponseTimes[priority]; ok {
		return sla
	}
	return "24 hours"
}
