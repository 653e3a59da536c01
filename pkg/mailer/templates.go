package mailer

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// Template names
const (
	TemplateContactAck          = "contact_ack"
	TemplateLeadNotification    = "lead_notification"
	TemplateBookingConfirmation = "booking_confirmation"
	TemplateWelcome             = "welcome"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates renders named messages. Each name has a NAME.txt.tmpl defining
// a "subject" block and the text body, and a NAME.html.tmpl for the HTML part.
type Templates struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

func LoadTemplates() (*Templates, error) {
	text, err := texttemplate.New("").ParseFS(templateFS, "templates/*.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}
	html, err := htmltemplate.New("").ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html templates: %w", err)
	}
	return &Templates{text: text, html: html}, nil
}

// Render builds a message for name addressed to the given recipients
func (t *Templates) Render(name string, data any, to ...string) (Message, error) {
	var subject, text, html bytes.Buffer

	if err := t.text.ExecuteTemplate(&subject, name+"_subject", data); err != nil {
		return Message{}, fmt.Errorf("render %s subject: %w", name, err)
	}
	if err := t.text.ExecuteTemplate(&text, name+".txt.tmpl", data); err != nil {
		return Message{}, fmt.Errorf("render %s text: %w", name, err)
	}
	if err := t.html.ExecuteTemplate(&html, name+".html.tmpl", data); err != nil {
		return Message{}, fmt.Errorf("render %s html: %w", name, err)
	}

	return Message{
		Template: name,
		To:       to,
		Subject:  strings.TrimSpace(subject.String()),
		Text:     strings.TrimSpace(text.String()) + "\n",
		HTML:     html.String(),
	}, nil
}

// ContactAck acknowledges a contact form submission
type ContactAck struct {
	Name    string
	Subject string
	Message string
}

// LeadNotification tells the sales inbox about a new lead
type LeadNotification struct {
	LeadID  uint
	Name    string
	Email   string
	Phone   string
	Source  string
	Package string
	Subject string
	Message string
}

// BookingConfirmation confirms a paid booking
type BookingConfirmation struct {
	Name         string
	Reference    string
	OrderRef     string
	PackageTitle string
	Destination  string
	TravelDate   string
	Travellers   int
	DurationDays int
	Amount       string
	Currency     string
}

// Welcome greets a newly registered user
type Welcome struct {
	Name     string
	LoginURL string
}
