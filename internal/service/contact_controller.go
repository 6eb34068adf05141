package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/aoa-site/internal/dto"
	"github.com/noah-isme/aoa-site/internal/models"
	"github.com/noah-isme/aoa-site/internal/observability"
)

const (
	// MessageContactSent is shown after the relay accepted a submission.
	MessageContactSent = "Message sent successfully! We'll get back to you soon."
	// MessageContactFailed is shown for every delivery failure.
	MessageContactFailed = "Failed to send message. Please try again or contact us directly."
)

var (
	// ErrSubmissionInFlight indicates a submit arrived while a previous one was still being relayed.
	ErrSubmissionInFlight = errors.New("contact submission already in flight")
	// ErrDeliveryFailed wraps any failure reported by the mail relay.
	ErrDeliveryFailed = errors.New("contact delivery failed")
)

// ContactOutcome is the settled result of a submit action.
type ContactOutcome string

const (
	ContactOutcomeSent   ContactOutcome = "sent"
	ContactOutcomeFailed ContactOutcome = "failed"
)

// SubmitResult describes how a submit action settled.
type SubmitResult struct {
	ReferenceID  string
	Outcome      ContactOutcome
	Notification models.Notification
	// Err carries the wrapped delivery failure for logging; it is never returned as an error.
	Err error
}

// ContactDeps groups the collaborators shared by every contact controller.
type ContactDeps struct {
	Relay       ContactRelay
	Identifiers RelayIdentifiers
	Notifier    Notifier
	Guard       InflightGuard
	Logger      zerolog.Logger
	Now         func() time.Time
}

// ContactFormController owns the contact modal state and mediates between the
// form and the mail relay. Submits are serialised by the submitting flag.
type ContactFormController struct {
	mu         sync.Mutex
	key        string
	modalOpen  bool
	submitting bool
	fields     models.ContactFields

	relay    ContactRelay
	ids      RelayIdentifiers
	notifier Notifier
	guard    InflightGuard
	logger   zerolog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewContactFormController constructs an idle controller for one visitor session.
func NewContactFormController(key string, deps ContactDeps) *ContactFormController {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &ContactFormController{
		key:      key,
		relay:    deps.Relay,
		ids:      deps.Identifiers,
		notifier: notifier,
		guard:    deps.Guard,
		logger:   deps.Logger.With().Str("component", "contact_controller").Str("session_id", key).Logger(),
		tracer:   otel.Tracer("github.com/noah-isme/aoa-site/internal/service/contact"),
		now:      now,
	}
}

// Open shows the contact modal.
func (c *ContactFormController) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = true
}

// Close hides the contact modal. An in-flight submit keeps running.
func (c *ContactFormController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = false
}

// SetDraftIfIdle records draft values unless a submit is in flight, whose
// fields stay untouched. It reports whether the draft was recorded.
func (c *ContactFormController) SetDraftIfIdle(fields models.ContactFields) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return false
	}
	c.fields = fields
	return true
}

// Submitting reports whether a submit is in flight.
func (c *ContactFormController) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Snapshot returns the current modal state.
func (c *ContactFormController) Snapshot() dto.ContactState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dto.ContactState{
		ModalOpen:  c.modalOpen,
		Submitting: c.submitting,
		Fields:     c.fields,
	}
}

// Submit relays the entered fields once. A submit made while another is in
// flight returns ErrSubmissionInFlight without contacting the relay. Delivery
// failures are converted into an error notification and reported through the
// result, never as an error. The relay call is detached from ctx cancellation.
func (c *ContactFormController) Submit(ctx context.Context, fields models.ContactFields) (SubmitResult, error) {
	ctx, span := c.tracer.Start(ctx, "contact.submit")
	defer span.End()

	if !c.begin(fields) {
		span.SetStatus(codes.Error, "submission in flight")
		observability.ContactSubmissions().WithLabelValues("rejected").Inc()
		return SubmitResult{}, ErrSubmissionInFlight
	}

	settled := false
	defer func() {
		if !settled {
			c.finish(false)
		}
	}()

	relayCtx := context.WithoutCancel(ctx)
	token, acquired := c.acquireGuard(relayCtx)
	if !acquired {
		settled = true
		c.finish(false)
		span.SetStatus(codes.Error, "submission in flight on another replica")
		observability.ContactSubmissions().WithLabelValues("rejected").Inc()
		return SubmitResult{}, ErrSubmissionInFlight
	}
	defer c.releaseGuard(relayCtx, token)

	submission := models.ContactSubmission{
		ReferenceID: uuid.NewString(),
		SessionID:   c.key,
		Name:        fields.Name,
		Email:       fields.Email,
		Message:     fields.Message,
		SubmittedAt: c.now().UTC(),
	}
	span.SetAttributes(attribute.String("contact.reference_id", submission.ReferenceID))

	log := c.logger.With().Str("reference_id", submission.ReferenceID).Logger()
	if correlation := observability.CorrelationID(ctx); correlation != "" {
		log = log.With().Str("correlation_id", correlation).Logger()
		span.SetAttributes(attribute.String("correlation_id", correlation))
	}

	started := time.Now()
	err := c.deliver(relayCtx, submission)
	elapsed := time.Since(started)

	result := SubmitResult{ReferenceID: submission.ReferenceID}
	if err != nil {
		result.Outcome = ContactOutcomeFailed
		result.Err = fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
		result.Notification = c.notification(models.NotificationError, MessageContactFailed, submission.ReferenceID)

		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		log.Warn().Err(err).Str("email", maskEmail(submission.Email)).Msg("contact delivery failed")
	} else {
		result.Outcome = ContactOutcomeSent
		result.Notification = c.notification(models.NotificationSuccess, MessageContactSent, submission.ReferenceID)

		span.SetStatus(codes.Ok, "delivered")
		log.Info().Str("email", maskEmail(submission.Email)).Msg("contact submission delivered")
	}

	observability.ContactRelayLatency().WithLabelValues(string(result.Outcome)).Observe(elapsed.Seconds())
	observability.ContactSubmissions().WithLabelValues(string(result.Outcome)).Inc()

	c.notifier.Notify(relayCtx, result.Notification)
	settled = true
	c.finish(result.Outcome == ContactOutcomeSent)

	return result, nil
}

func (c *ContactFormController) begin(fields models.ContactFields) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return false
	}
	c.submitting = true
	c.fields = fields
	return true
}

// finish returns the controller to idle. On success the form is cleared and the modal closed first.
func (c *ContactFormController) finish(sent bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sent {
		c.fields = models.ContactFields{}
		c.modalOpen = false
	}
	c.submitting = false
}

func (c *ContactFormController) deliver(ctx context.Context, submission models.ContactSubmission) (err error) {
	if c.relay == nil {
		return errors.New("no mail relay configured")
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mail relay panicked: %v", r)
		}
	}()

	return c.relay.Send(ctx, c.ids.ServiceID, c.ids.TemplateID, NewTemplateParams(submission), c.ids.PublicKey)
}

func (c *ContactFormController) acquireGuard(ctx context.Context) (string, bool) {
	if c.guard == nil {
		return "", true
	}

	token, acquired, err := c.guard.Acquire(ctx, c.key)
	if err != nil {
		c.logger.Warn().Err(err).Msg("in-flight guard unavailable, relying on local guard")
		return "", true
	}
	return token, acquired
}

func (c *ContactFormController) releaseGuard(ctx context.Context, token string) {
	if c.guard == nil || token == "" {
		return
	}
	if err := c.guard.Release(ctx, c.key, token); err != nil {
		c.logger.Warn().Err(err).Msg("failed to release in-flight guard")
	}
}

func (c *ContactFormController) notification(level models.NotificationLevel, message, referenceID string) models.Notification {
	return models.Notification{
		Level:       level,
		Message:     message,
		ReferenceID: referenceID,
		At:          c.now().UTC(),
	}
}
