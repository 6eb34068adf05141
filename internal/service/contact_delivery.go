package service

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aoa-site/internal/models"
)

// RelayIdentifiers are the fixed EmailJS service, template and key the site sends with.
type RelayIdentifiers struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// TemplateParams are the variables substituted into the email template.
type TemplateParams struct {
	FromName  string
	FromEmail string
	Message   string
}

var templateSanitizer = bluemonday.StrictPolicy()

// NewTemplateParams builds template variables from a submission, stripping any markup.
func NewTemplateParams(submission models.ContactSubmission) TemplateParams {
	return TemplateParams{
		FromName:  sanitizeParam(submission.Name),
		FromEmail: sanitizeParam(submission.Email),
		Message:   sanitizeParam(submission.Message),
	}
}

// Map returns the params keyed by their template variable names.
func (p TemplateParams) Map() map[string]string {
	return map[string]string{
		"from_name":  p.FromName,
		"from_email": p.FromEmail,
		"message":    p.Message,
	}
}

// sanitizeParam drops markup but keeps the visible text; the relay escapes variables itself.
func sanitizeParam(value string) string {
	return strings.TrimSpace(html.UnescapeString(templateSanitizer.Sanitize(value)))
}

// ContactRelay delivers a templated contact email through a third-party mail relay.
type ContactRelay interface {
	Send(ctx context.Context, serviceID, templateID string, params TemplateParams, publicKey string) error
}

// TemplateSender is the transport behind EmailRelay, satisfied by *emailjs.Client.
type TemplateSender interface {
	Send(ctx context.Context, serviceID, templateID string, params map[string]string, publicKey string) error
}

// EmailRelay adapts a template sender to ContactRelay.
type EmailRelay struct {
	sender TemplateSender
}

// NewEmailRelay constructs a relay backed by the given sender.
func NewEmailRelay(sender TemplateSender) *EmailRelay {
	return &EmailRelay{sender: sender}
}

// Send forwards the submission to the underlying sender.
func (r *EmailRelay) Send(ctx context.Context, serviceID, templateID string, params TemplateParams, publicKey string) error {
	return r.sender.Send(ctx, serviceID, templateID, params.Map(), publicKey)
}

// LogRelay is a dry-run relay that logs submissions and reports success.
type LogRelay struct {
	logger zerolog.Logger
}

// NewLogRelay constructs a logging relay.
func NewLogRelay(logger zerolog.Logger) *LogRelay {
	return &LogRelay{logger: logger.With().Str("component", "contact_delivery").Logger()}
}

// Send logs the submission and returns nil to indicate success.
func (l *LogRelay) Send(ctx context.Context, serviceID, templateID string, params TemplateParams, publicKey string) error {
	l.logger.Info().
		Str("service_id", serviceID).
		Str("template_id", templateID).
		Str("from_email", maskEmail(params.FromEmail)).
		Int("message_length", len(params.Message)).
		Msg("contact submission delivered to log relay")
	return nil
}
