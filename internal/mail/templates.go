package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// TicketInternalData feeds the internal notification sent to the support inbox
// when a new ticket is opened.
type TicketInternalData struct {
	TicketNumber    string
	Name            string
	Email           string
	Phone           string
	Company         string
	Priority        string
	SLAResponseTime string
	Category        string
	Subject         string
	Description     string
	Conversation    []QA
	Troubleshooting map[string]string
	Attachments     []string
}

func RenderTicketInternal(data TicketInternalData) (string, string, error) {
	subject := fmt.Sprintf("[%s] New %s Priority Ticket - %s", data.TicketNumber, data.Priority, data.Subject)
	html, err := render("ticket_internal.html", data)
	return subject, html, err
}

type TicketConfirmationData struct {
	TicketNumber    string
	Name            string
	Email           string
	Priority        string
	IssueSummary    string
	SLAResponseTime string
}

func RenderTicketConfirmation(data TicketConfirmationData) (string, string, error) {
	subject := fmt.Sprintf("Support Ticket Created - %s", data.TicketNumber)
	html, err := render("ticket_confirmation.html", data)
	return subject, html, err
}

type OTPCodeData struct {
	Code string
}

func RenderOTPCode(code string) (string, string, error) {
	html, err := render("otp_code.html", OTPCodeData{Code: code})
	return "Your American Reliable Tech Verification Code", html, err
}

type ReplyNotificationData struct {
	TicketNumber string
	Subject      string
	CustomerName string
	AuthorName   string
	ReplyText    string
	TrackURL     string
}

func RenderReplyNotification(data ReplyNotificationData) (string, string, error) {
	subject := fmt.Sprintf("New Reply on Ticket %s", data.TicketNumber)
	html, err := render("reply_notification.html", data)
	return subject, html, err
}

type ContactData struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Subject string
	Body    string
}

func RenderContact(data ContactData) (string, string, error) {
	subject := fmt.Sprintf("Contact Form: %s", data.Subject)
	html, err := render("contact_admin.html", data)
	return subject, html, err
}

type ServiceRequestData struct {
	TicketNumber string
	Name         string
	Email        string
	Phone        string
	Company      string
	PlanName     string
	Billing      string
	Quantity     int
	TotalPrice   string
	Notes        string
}

func RenderServiceRequestAdmin(data ServiceRequestData) (string, string, error) {
	subject := fmt.Sprintf("[%s] New Service Request - %s", data.TicketNumber, data.PlanName)
	html, err := render("service_request_admin.html", data)
	return subject, html, err
}

func RenderServiceRequestCustomer(data ServiceRequestData) (string, string, error) {
	subject := fmt.Sprintf("Service Request Received - %s", data.TicketNumber)
	html, err := render("service_request.html", data)
	return subject, html, err
}

type ConsultationData struct {
	TicketNumber string
	Name         string
	Email        string
	Phone        string
	Company      string
	Topic        string
	StartsAt     time.Time
	Timezone     string
}

// When formats the consultation slot for display in the customer's timezone
// when it can be resolved, otherwise in the stored time's own location.
func (d ConsultationData) When() string {
	t := d.StartsAt
	if loc, err := time.LoadLocation(d.Timezone); err == nil {
		t = t.In(loc)
	}
	return t.Format("Monday, January 2, 2006 at 3:04 PM")
}

// CalendarURL builds a Google Calendar prefill link for a 45 minute slot.
func (d ConsultationData) CalendarURL() string {
	const slotLen = 45 * time.Minute
	start := d.StartsAt.UTC().Format("20060102T150405Z")
	end := d.StartsAt.UTC().Add(slotLen).Format("20060102T150405Z")
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", "IT Consultation - American Reliable Tech")
	q.Set("dates", start+"/"+end)
	q.Set("details", "Free IT consultation call with American Reliable Tech. Ref: "+d.TicketNumber)
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

func RenderConsultationAdmin(data ConsultationData) (string, string, error) {
	subject := fmt.Sprintf("[%s] New Consultation Booking - %s", data.TicketNumber, data.Name)
	html, err := render("consultation_admin.html", data)
	return subject, html, err
}

func RenderConsultationCustomer(data ConsultationData) (string, string, error) {
	subject := fmt.Sprintf("Consultation Scheduled - %s", data.TicketNumber)
	html, err := render("consultation_customer.html", data)
	return subject, html, err
}
