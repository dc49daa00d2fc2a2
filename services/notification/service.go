// File: services/notification/service.go
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"roomly/config"
	notificationRepo "roomly/database/repository/notification"
	"roomly/models"
	"roomly/services/tasks"
	"roomly/utils"
)

// Reminder offsets relative to the reservation start.
var reminderKinds = []struct {
	kind   string
	offset time.Duration
	title  string
}{
	{"1_day", -24 * time.Hour, "预约提醒：明天有会议"},
	{"1_hour", -time.Hour, "预约提醒：1小时后开始"},
	{"start", 0, "预约提醒：会议现在开始"},
}

// DefaultNotificationService queues notices through asynq and persists fired
// ones via the notification repository.
type DefaultNotificationService struct {
	client *asynq.Client
	repo   notificationRepo.NotificationRepository
	now    func() time.Time
}

// NewDefaultNotificationService connects an asynq client against the task
// queue database.
func NewDefaultNotificationService(repo notificationRepo.NotificationRepository) *DefaultNotificationService {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueue,
	})
	return &DefaultNotificationService{client: client, repo: repo, now: time.Now}
}

func (s *DefaultNotificationService) NotifyStatusChange(ctx context.Context, res *models.Reservation, oldStatus, newStatus string) error {
	payload := models.StatusChangePayload{
		ReservationID: res.ID,
		UserID:        res.UserID,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		Title:         "预约状态更新",
		Body:          fmt.Sprintf("您的预约 %s（%s）状态已更新为：%s", res.ReservationNumber, res.Title, statusDisplay(newStatus)),
	}
	task, err := tasks.NewStatusChangeTask(payload)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue status notice: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) ScheduleReminders(ctx context.Context, res *models.Reservation) error {
	now := s.now()
	for _, r := range reminderKinds {
		fireAt := res.StartTime.Add(r.offset)
		if !fireAt.After(now) {
			continue
		}

		payload := models.ReminderPayload{
			ReservationID: res.ID,
			UserID:        res.UserID,
			Kind:          r.kind,
			Title:         r.title,
			Body:          fmt.Sprintf("%s，%s 开始：%s", r.title, res.StartTime.Format("2006-01-02 15:04"), res.Title),
			FireDate:      fireAt.Format(time.RFC3339),
		}
		task, opts, err := tasks.NewReminderTask(payload, fireAt)
		if err != nil {
			return err
		}
		if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
			utils.GetLogger().Sugar().Warnf("enqueue %s reminder for %s failed: %v", r.kind, res.ReservationNumber, err)
			continue
		}
	}
	return nil
}

func (s *DefaultNotificationService) DeliverReminder(ctx context.Context, p models.ReminderPayload) error {
	return s.repo.Insert(ctx, &models.Notification{
		Type:          models.NotificationReminder,
		UserID:        p.UserID,
		ReservationID: p.ReservationID,
		Title:         p.Title,
		Message:       p.Body,
		Data: map[string]string{
			"kind":      p.Kind,
			"fire_date": p.FireDate,
		},
	})
}

func (s *DefaultNotificationService) DeliverStatusChange(ctx context.Context, p models.StatusChangePayload) error {
	return s.repo.Insert(ctx, &models.Notification{
		Type:          models.NotificationStatusChange,
		UserID:        p.UserID,
		ReservationID: p.ReservationID,
		Title:         p.Title,
		Message:       p.Body,
		Data: map[string]string{
			"old_status": p.OldStatus,
			"new_status": p.NewStatus,
		},
	})
}

func statusDisplay(status string) string {
	switch status {
	case models.StatusPending:
		return "待审批"
	case models.StatusApproved:
		return "已批准"
	case models.StatusRejected:
		return "已拒绝"
	case models.StatusCompleted:
		return "已完成"
	case models.StatusCancelled:
		return "已取消"
	default:
		return status
	}
}
