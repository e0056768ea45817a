package notifications

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

// Mailer sends an email copy of a notification. Implementations must be
// safe for concurrent use.
type Mailer interface {
	SendStatusUpdate(to string, n Notification) error
}

// SMTPMailer delivers notification emails over SMTP.
type SMTPMailer struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Configured reports whether the mailer has enough settings to send.
func (m *SMTPMailer) Configured() bool {
	return m != nil && m.Host != "" && m.From != ""
}

// SendStatusUpdate emails the applicant about a status change.
func (m *SMTPMailer) SendStatusUpdate(to string, n Notification) error {
	if !m.Configured() {
		return fmt.Errorf("smtp mailer not configured")
	}
	if to == "" {
		return fmt.Errorf("empty recipient")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", statusUpdateSubject(n))
	msg.SetBody("text/html", statusUpdateBody(n))

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Password)
	return d.DialAndSend(msg)
}

func statusUpdateSubject(n Notification) string {
	return fmt.Sprintf("Update on your application for %s at %s", n.JobTitle, n.Company)
}

// statusUpdateBody renders the HTML body. Job titles and company names are
// free text from job postings, so they are escaped before interpolation.
func statusUpdateBody(n Notification) string {
	return fmt.Sprintf(
		"<p>Your application for <b>%s</b> at <b>%s</b> is now <b>%s</b>.</p>",
		html.EscapeString(n.JobTitle), html.EscapeString(n.Company), html.EscapeString(n.Status),
	)
}

var _ Mailer = (*SMTPMailer)(nil)
