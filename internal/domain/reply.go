package domain

import "time"

// TicketReply is one entry in a ticket thread. Replies flagged internal are
// staff-only notes and are never transmitted to the customer.
type TicketReply struct {
	ID          string
	TicketID    string
	AuthorID    *string
	AuthorName  string
	AuthorEmail string
	Body        string
	IsInternal  bool
	Attachments []Attachment
	CreatedAt   time.Time
}
