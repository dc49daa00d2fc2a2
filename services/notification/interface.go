// File: services/notification/interface.go
package notification

import (
	"context"

	"roomly/models"
)

// NotificationService enqueues reservation lifecycle notices and delivers
// them into the user's inbox. Enqueueing is best effort: the caller logs and
// moves on when it fails.
type NotificationService interface {
	// NotifyStatusChange queues an immediate notice about a status transition.
	NotifyStatusChange(ctx context.Context, res *models.Reservation, oldStatus, newStatus string) error

	// ScheduleReminders queues the reminder fan-out for a reservation: one
	// day before, one hour before and at the start. Moments already in the
	// past are skipped silently.
	ScheduleReminders(ctx context.Context, res *models.Reservation) error

	// DeliverReminder persists a fired reminder into the inbox.
	DeliverReminder(ctx context.Context, p models.ReminderPayload) error

	// DeliverStatusChange persists a fired status notice into the inbox.
	DeliverStatusChange(ctx context.Context, p models.StatusChangePayload) error
}
