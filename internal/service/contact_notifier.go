package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/noah-isme/aoa-site/internal/models"
)

const toastQueueSize = 5

// Notifier shows a message to the visitor. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, notification models.Notification)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(context.Context, models.Notification) {}

// ToastQueue buffers notifications for one visitor until the page renders them.
type ToastQueue struct {
	mu    sync.Mutex
	items []models.Notification
}

// NewToastQueue constructs an empty queue.
func NewToastQueue() *ToastQueue {
	return &ToastQueue{}
}

// Notify queues the notification, dropping the oldest once the queue is full.
func (q *ToastQueue) Notify(_ context.Context, notification models.Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, notification)
	if len(q.items) > toastQueueSize {
		q.items = q.items[len(q.items)-toastQueueSize:]
	}
}

// Drain returns and clears the queued notifications.
func (q *ToastQueue) Drain() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// Remove drops the queued notifications carrying referenceID.
func (q *ToastQueue) Remove(referenceID string) {
	if referenceID == "" {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = lo.Reject(q.items, func(item models.Notification, _ int) bool {
		return item.ReferenceID == referenceID
	})
}

// Peek returns the queued notifications without clearing them.
func (q *ToastQueue) Peek() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.Notification(nil), q.items...)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier constructs a logging notifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "contact_notifier").Logger()}
}

// Notify implements Notifier.
func (l *LogNotifier) Notify(_ context.Context, notification models.Notification) {
	event := l.logger.Info()
	if notification.Level == models.NotificationError {
		event = l.logger.Warn()
	}
	event.Str("level", string(notification.Level)).
		Str("reference_id", notification.ReferenceID).
		Msg(notification.Message)
}

// NATSNotifier publishes notifications to a NATS subject for out-of-band consumers.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

type notificationEvent struct {
	Source       string              `json:"source"`
	Notification models.Notification `json:"notification"`
}

// NewNATSNotifier constructs a NATS-backed notifier.
func NewNATSNotifier(conn *nats.Conn, subject string, logger zerolog.Logger) *NATSNotifier {
	return &NATSNotifier{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "nats_notifier").Logger(),
	}
}

// Notify publishes the notification. Publish failures are logged, not returned.
func (n *NATSNotifier) Notify(_ context.Context, notification models.Notification) {
	if n == nil || n.conn == nil || n.subject == "" {
		return
	}

	payload, err := json.Marshal(notificationEvent{Source: "contact", Notification: notification})
	if err != nil {
		n.logger.Warn().Err(err).Msg("failed to encode notification")
		return
	}

	if err := n.conn.Publish(n.subject, payload); err != nil {
		n.logger.Warn().Err(err).Str("subject", n.subject).Msg("failed to publish notification")
	}
}

// MultiNotifier fans a notification out to several sinks.
type MultiNotifier struct {
	sinks []Notifier
}

// NewMultiNotifier constructs a fan-out notifier, ignoring nil sinks.
func NewMultiNotifier(sinks ...Notifier) *MultiNotifier {
	return &MultiNotifier{sinks: lo.Filter(sinks, func(sink Notifier, _ int) bool {
		return sink != nil
	})}
}

// Notify implements Notifier.
func (m *MultiNotifier) Notify(ctx context.Context, notification models.Notification) {
	for _, sink := range m.sinks {
		sink.Notify(ctx, notification)
	}
}

// ConsumeNotifications joins the queue group on subject and hands each decoded
// notification to fn until ctx is done.
func ConsumeNotifications(ctx context.Context, conn *nats.Conn, subject, queue string, logger zerolog.Logger, fn func(models.Notification)) error {
	log := logger.With().Str("component", "notification_consumer").Logger()

	sub, err := conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		var event notificationEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			log.Warn().Err(err).Msg("invalid notification event payload")
			return
		}
		fn(event.Notification)
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		log.Warn().Err(err).Msg("failed to drain notification subscription")
	}
	return nil
}
