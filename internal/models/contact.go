package models

import "time"

// ContactSubmission is the transient enquiry built from the contact form at submit time.
// It is never persisted.
type ContactSubmission struct {
	ReferenceID string    `json:"reference_id"`
	SessionID   string    `json:"-"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ContactFields holds the values currently shown in the contact form inputs.
type ContactFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// IsEmpty reports whether every input is blank.
func (f ContactFields) IsEmpty() bool {
	return f.Name == "" && f.Email == "" && f.Message == ""
}

// NotificationLevel is the severity of a user-visible notification.
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a fire-and-forget message shown to the visitor.
type Notification struct {
	Level       NotificationLevel `json:"level"`
	Message     string            `json:"message"`
	ReferenceID string            `json:"reference_id,omitempty"`
	At          time.Time         `json:"at"`
}

// Service describes one of the studio offerings shown on the page.
type Service struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// NavItem is a link in the page header.
type NavItem struct {
	Name   string `json:"name"`
	Anchor string `json:"anchor"`
}
