// File: services/tasks/reminder.go
package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"roomly/models"
)

const (
	TypeSendReminder     = "reminder:send"
	TypeSendStatusChange = "notification:status"
)

// NewReminderTask builds an asynq task that fires at the reminder's moment.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// NewStatusChangeTask builds an asynq task for immediate delivery of a status
// transition notice.
func NewStatusChangeTask(payload models.StatusChangePayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendStatusChange, b), nil
}
