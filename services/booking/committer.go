// File: services/booking/committer.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	reservationRepo "roomly/database/repository/reservation"
	"roomly/models"
	"roomly/utils"
)

// Notifier receives reservation lifecycle events. Calls are best effort and
// must never block or fail a commit.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, res *models.Reservation, oldStatus, newStatus string) error
	ScheduleReminders(ctx context.Context, res *models.Reservation) error
}

// DefaultCommitter matches a room, numbers the reservation and writes it
// through the transactional repository path. Auto-approval applies: a
// successful match goes straight to approved.
type DefaultCommitter struct {
	matcher      Matcher
	reservations reservationRepo.ReservationRepository
	notifier     Notifier
	now          func() time.Time
}

// NewDefaultCommitter wires the committer. notifier may be nil, in which
// case lifecycle events are dropped.
func NewDefaultCommitter(matcher Matcher, reservations reservationRepo.ReservationRepository, notifier Notifier) *DefaultCommitter {
	return &DefaultCommitter{
		matcher:      matcher,
		reservations: reservations,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (c *DefaultCommitter) Commit(ctx context.Context, draft *models.ReservationDraft, userID string) (*models.Reservation, *models.Resource, error) {
	room, err := c.matcher.FindRoom(ctx, draft.StartTime, draft.EndTime, draft.AttendeeCount, draft.Requirements)
	if err != nil {
		return nil, nil, err
	}
	if room == nil {
		return nil, nil, ErrNoRoom
	}

	res, err := c.tryCommit(ctx, draft, userID, room)
	if errors.Is(err, reservationRepo.ErrConflict) {
		// A concurrent commit won the window on this room. Re-select once;
		// another room may still be free for the same slot.
		utils.GetLogger().Sugar().Infow("commit lost conflict race, retrying with re-selection",
			"resource", room.ID, "start", draft.StartTime)
		room, err = c.matcher.FindRoom(ctx, draft.StartTime, draft.EndTime, draft.AttendeeCount, draft.Requirements)
		if err != nil {
			return nil, nil, err
		}
		if room == nil {
			return nil, nil, ErrSlotTaken
		}
		res, err = c.tryCommit(ctx, draft, userID, room)
		if errors.Is(err, reservationRepo.ErrConflict) {
			return nil, nil, ErrSlotTaken
		}
	}
	if err != nil {
		return nil, nil, err
	}

	c.dispatchEvents(res)
	return res, room, nil
}

// numberAttempts bounds how many sequence slots a commit will try when
// concurrent same-day commits claim the same reservation number.
const numberAttempts = 3

func (c *DefaultCommitter) tryCommit(ctx context.Context, draft *models.ReservationDraft, userID string, room *models.Resource) (*models.Reservation, error) {
	now := c.now()
	count, err := c.reservations.CountCreatedOn(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("could not count today's reservations: %w", err)
	}

	// The number is the creation date as YYMMDD plus a three-digit daily
	// sequence. Two commits can read the same count and build the same
	// number; the unique index rejects the loser, who moves to the next
	// sequence slot rather than failing the reservation.
	var lastErr error
	for attempt := int64(0); attempt < numberAttempts; attempt++ {
		res := &models.Reservation{
			ID:                uuid.New().String(),
			ReservationNumber: fmt.Sprintf("%s%03d", now.Format("060102"), count+1+attempt),
			Type:              draft.Type,
			UserID:            userID,
			ResourceID:        room.ID,
			StartTime:         draft.StartTime,
			EndTime:           draft.EndTime,
			Status:            models.StatusApproved,
			Title:             draft.Title,
			Description:       draft.Description,
			Details: models.ReservationDetails{
				AttendeeCount: draft.AttendeeCount,
				Requirements:  draft.Requirements,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		err := c.reservations.CommitTransactionally(ctx, res)
		if errors.Is(err, reservationRepo.ErrDuplicateNumber) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	}
	return nil, fmt.Errorf("could not allocate a reservation number: %w", lastErr)
}

// dispatchEvents hands the new reservation to the notifier on a detached
// context. Failures are logged and swallowed; the reservation stands.
func (c *DefaultCommitter) dispatchEvents(res *models.Reservation) {
	if c.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := c.notifier.NotifyStatusChange(ctx, res, models.StatusPending, models.StatusApproved); err != nil {
			utils.GetLogger().Sugar().Warnf("status notification failed for %s: %v", res.ReservationNumber, err)
		}
		if err := c.notifier.ScheduleReminders(ctx, res); err != nil {
			utils.GetLogger().Sugar().Warnf("reminder scheduling failed for %s: %v", res.ReservationNumber, err)
		}
	}()
}
