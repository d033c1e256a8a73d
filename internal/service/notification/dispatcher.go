package notification

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/metrics"
	"devsa-jobs/internal/repository"
	"devsa-jobs/internal/service/email"
)

// MaxDeliveryAttempts bounds how often the relay retries a failing event.
const MaxDeliveryAttempts = 10

// Dispatcher delivers outbox events that were committed with a primary
// write. Delivery is best-effort: failures are logged and left for the relay.
type Dispatcher interface {
	Dispatch(ctx context.Context, events []domain.NotificationEvent)
}

type EventDispatcher struct {
	outbox      repository.OutboxRepository
	profiles    repository.ProfileRepository
	emailSvc    email.Service
	metrics     metrics.Recorder
	concurrency int
}

func NewDispatcher(
	outbox repository.OutboxRepository,
	profiles repository.ProfileRepository,
	emailSvc email.Service,
	recorder metrics.Recorder,
	concurrency int,
) *EventDispatcher {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &EventDispatcher{
		outbox:      outbox,
		profiles:    profiles,
		emailSvc:    emailSvc,
		metrics:     recorder,
		concurrency: concurrency,
	}
}

// Dispatch delivers every event independently and concurrently. One failing
// event never stops the others.
func (d *EventDispatcher) Dispatch(ctx context.Context, events []domain.NotificationEvent) {
	d.deliverAll(ctx, events)
}

// DeliverPending re-drives events left undelivered and reports how many
// were delivered.
func (d *EventDispatcher) DeliverPending(ctx context.Context, limit int) (int, error) {
	events, err := d.outbox.ListPending(ctx, limit, MaxDeliveryAttempts)
	if err != nil {
		return 0, err
	}
	return d.deliverAll(ctx, events), nil
}

func (d *EventDispatcher) deliverAll(ctx context.Context, events []domain.NotificationEvent) int {
	if len(events) == 0 {
		return 0
	}

	var delivered atomic.Int64
	var g errgroup.Group
	g.SetLimit(d.concurrency)

	for i := range events {
		ev := events[i]
		g.Go(func() error {
			if d.deliver(ctx, ev) {
				delivered.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return int(delivered.Load())
}

func (d *EventDispatcher) deliver(ctx context.Context, ev domain.NotificationEvent) bool {
	notif, err := d.outbox.Deliver(ctx, ev.ID)
	if err != nil {
		d.metrics.RecordNotificationFailed(string(ev.Type))
		slog.Warn("notification delivery failed",
			slog.String("event_id", ev.ID.String()),
			slog.String("type", string(ev.Type)),
			slog.String("recipient_id", ev.RecipientID),
			slog.Any("error", err),
		)
		if markErr := d.outbox.MarkFailed(ctx, ev.ID, err.Error()); markErr != nil {
			slog.Error("failed to record delivery failure", slog.String("event_id", ev.ID.String()), slog.Any("error", markErr))
		}
		return false
	}

	// Already delivered by another request or the relay.
	if notif == nil {
		return false
	}

	d.metrics.RecordNotificationDelivered(string(notif.Type))
	d.sendEmail(ctx, notif)
	return true
}

func emailsFor(t domain.NotificationType) bool {
	return t == domain.NotifApplication || t == domain.NotifStatusUpdate
}

func (d *EventDispatcher) sendEmail(ctx context.Context, notif *domain.Notification) {
	if d.emailSvc == nil || !emailsFor(notif.Type) {
		return
	}

	recipient, err := d.profiles.GetBySubjectID(ctx, notif.RecipientID)
	if err != nil || recipient == nil || recipient.Email == "" {
		return
	}

	err = d.emailSvc.SendNotificationEmail(ctx, recipient.Email, recipient.Name(), notif)
	d.metrics.RecordEmailSent(err == nil)
	if err != nil {
		slog.Warn("notification email failed",
			slog.String("notification_id", notif.ID.String()),
			slog.String("recipient_id", notif.RecipientID),
			slog.Any("error", err),
		)
	}
}
