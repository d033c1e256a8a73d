package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifApplication  NotificationType = "application"
	NotifStatusUpdate NotificationType = "status-update"
	NotifComment      NotificationType = "comment"
	NotifMention      NotificationType = "mention"
	NotifMessage      NotificationType = "message"
)

type Notification struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	EventID     uuid.UUID        `json:"-" db:"event_id"`
	RecipientID string           `json:"recipientId" db:"recipient_id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Body        string           `json:"body" db:"body"`
	Link        string           `json:"link" db:"link"`
	SourceID    string           `json:"sourceId" db:"source_id"`
	SourceName  string           `json:"sourceName" db:"source_name"`
	ReferenceID string           `json:"referenceId" db:"reference_id"`
	Read        bool             `json:"read" db:"read"`
	ReadAt      *time.Time       `json:"readAt,omitempty" db:"read_at"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}

// NotificationEvent is an outbox row written in the same transaction as the
// action that caused it. Delivery turns it into exactly one Notification.
type NotificationEvent struct {
	ID          uuid.UUID        `db:"id"`
	RecipientID string           `db:"recipient_id"`
	Type        NotificationType `db:"type"`
	Title       string           `db:"title"`
	Body        string           `db:"body"`
	Link        string           `db:"link"`
	SourceID    string           `db:"source_id"`
	SourceName  string           `db:"source_name"`
	ReferenceID string           `db:"reference_id"`
	Attempts    int              `db:"attempts"`
	LastError   *string          `db:"last_error"`
	CreatedAt   time.Time        `db:"created_at"`
	ProcessedAt *time.Time       `db:"processed_at"`
}

// NewNotificationEvent builds an event from actor to recipient. It returns
// nil when the actor would be notifying themselves.
func NewNotificationEvent(actor *Actor, recipientID string, typ NotificationType, title, body, link, referenceID string) *NotificationEvent {
	if recipientID == "" || recipientID == actor.SubjectID {
		return nil
	}
	return &NotificationEvent{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Type:        typ,
		Title:       title,
		Body:        body,
		Link:        link,
		SourceID:    actor.SubjectID,
		SourceName:  actor.DisplayName(),
		ReferenceID: referenceID,
	}
}

type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}

type MarkReadInput struct {
	IDs []uuid.UUID `json:"ids" validate:"max=500"`
	All bool        `json:"all"`
}
