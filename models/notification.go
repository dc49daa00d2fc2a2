package models

import "time"

// Notification kinds.
const (
	NotificationStatusChange = "status_change"
	NotificationReminder     = "reminder"
)

// Notification is a delivered message persisted for the user's inbox.
type Notification struct {
	ID            string            `bson:"id" json:"id"`
	Type          string            `bson:"type" json:"type"`
	UserID        string            `bson:"user_id" json:"user_id"`
	ReservationID string            `bson:"reservation_id" json:"reservation_id"`
	Title         string            `bson:"title" json:"title"`
	Message       string            `bson:"message" json:"message"`
	Data          map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read          bool              `bson:"read" json:"read"`
	CreatedAt     time.Time         `bson:"created_at" json:"created_at"`
}

// ReminderPayload is the asynq task body for a scheduled reservation reminder.
type ReminderPayload struct {
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	Kind          string `json:"kind"` // "1_day", "1_hour" or "start"
	Title         string `json:"title"`
	Body          string `json:"body"`
	FireDate      string `json:"fire_date"`
}

// StatusChangePayload is the asynq task body for a status transition notice.
type StatusChangePayload struct {
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}
