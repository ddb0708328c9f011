package domain

import (
	"fmt"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Attachment is a named file reference stored alongside tickets and replies.
type Attachment struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID              string
	TicketNumber    string
	Name            string
	Email           string
	Phone           string
	Company         string
	Subject         string
	Description     string
	Category        string
	Impact          Impact
	Urgency         Urgency
	Priority        TicketPriority
	SLAResponseTime string
	Status          TicketStatus
	AssignedTechID  *string
	Attachments     []Attachment
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewTicketNumber formats a human-readable ticket number from wall-clock
// time: ART- followed by zero-padded MMDDYY and HHMMSS. Two tickets created
// within the same second receive the same number; callers accept this as a
// known limitation of the format.
func NewTicketNumber(t time.Time) string {
	return fmt.Sprintf("ART-%02d%02d%02d%02d%02d%02d",
		int(t.Month()), t.Day(), t.Year()%100,
		t.Hour(), t.Minute(), t.Second())
}
