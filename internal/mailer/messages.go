package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/manosay/manosay/backend/go-services/internal/models"
)

// ContactMessage formats a contact form submission.
func ContactMessage(name, email, subject, message string) Message {
	var b strings.Builder
	b.WriteString("New contact form submission from Manosay website:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Email: %s\n", email)
	fmt.Fprintf(&b, "Subject: %s\n\n", subject)
	fmt.Fprintf(&b, "Message:\n%s\n\n", message)
	b.WriteString("---\nThis email was sent from the Manosay contact form.")
	return Message{
		Kind:    KindContact,
		Subject: "New Contact Form: " + oneLine(subject),
		Body:    b.String(),
		ReplyTo: email,
	}
}

// LeadMessage formats a captured quote request.
func LeadMessage(l *models.Lead) Message {
	var b strings.Builder
	b.WriteString("New lead received from Manosay website:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", l.Name)
	fmt.Fprintf(&b, "Email: %s\n", l.Email)
	fmt.Fprintf(&b, "Company: %s\n", l.Company)
	fmt.Fprintf(&b, "Platform: %s\n", l.Platform)
	fmt.Fprintf(&b, "Budget: %s\n", l.Budget)
	fmt.Fprintf(&b, "Timeline: %s\n\n", l.Timeline)
	fmt.Fprintf(&b, "Message:\n%s\n\n", l.Message)
	if l.Browser != "" {
		fmt.Fprintf(&b, "Client: %s on %s (%s), IP %s\n", l.Browser, l.OS, l.Device, l.IP)
	}
	fmt.Fprintf(&b, "Received at: %s\n", l.CreatedAt.UTC().Format(time.RFC3339))
	if !l.ID.IsZero() {
		fmt.Fprintf(&b, "Lead ID: %s\n", l.ID.Hex())
	}
	return Message{
		Kind:    KindLead,
		Subject: "New Quote Request from " + oneLine(l.Name),
		Body:    b.String(),
		ReplyTo: l.Email,
	}
}

// subjects are single header lines
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
