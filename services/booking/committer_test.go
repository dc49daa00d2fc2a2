// File: services/booking/committer_test.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/models"
)

type recordingNotifier struct {
	mu        sync.Mutex
	statuses  []string
	reminders []string
}

func (n *recordingNotifier) NotifyStatusChange(_ context.Context, res *models.Reservation, _, newStatus string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, res.ReservationNumber+":"+newStatus)
	return nil
}

func (n *recordingNotifier) ScheduleReminders(_ context.Context, res *models.Reservation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reminders = append(n.reminders, res.ReservationNumber)
	return nil
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.statuses), len(n.reminders)
}

func draftAt(start time.Time, attendees int) *models.ReservationDraft {
	return &models.ReservationDraft{
		Type:          models.ReservationMeeting,
		Title:         "会议室预约",
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		DurationHours: 1,
		AttendeeCount: attendees,
		HasStart:      true,
	}
}

func TestCommitCreatesApprovedReservation(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("a", "2F 中会议室", 10, nil),
	}}
	repo := &fakeReservationRepo{}
	notifier := &recordingNotifier{}
	c := NewDefaultCommitter(NewDefaultMatcher(resources, repo), repo, notifier)

	res, matched, err := c.Commit(context.Background(), draftAt(slotStart, 4), "user-1")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, models.StatusApproved, res.Status)
	assert.Equal(t, "a", res.ResourceID)
	assert.Equal(t, "2F 中会议室", matched.Name)
	assert.Equal(t, 4, res.Details.AttendeeCount)
	assert.NotEmpty(t, res.ID)

	wantNumber := fmt.Sprintf("%s001", time.Now().Format("060102"))
	assert.Equal(t, wantNumber, res.ReservationNumber)

	require.Eventually(t, func() bool {
		statuses, reminders := notifier.counts()
		return statuses == 1 && reminders == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCommitNumbersSequencePerDay(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("a", "A", 10, nil),
	}}
	repo := &fakeReservationRepo{}
	c := NewDefaultCommitter(NewDefaultMatcher(resources, repo), repo, nil)

	first, _, err := c.Commit(context.Background(), draftAt(slotStart, 2), "user-1")
	require.NoError(t, err)
	second, _, err := c.Commit(context.Background(), draftAt(slotStart.Add(2*time.Hour), 2), "user-1")
	require.NoError(t, err)

	prefix := time.Now().Format("060102")
	assert.Equal(t, prefix+"001", first.ReservationNumber)
	assert.Equal(t, prefix+"002", second.ReservationNumber)
}

func TestCommitRetriesWhenNumberAlreadyClaimed(t *testing.T) {
	prefix := time.Now().Format("060102")
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("a", "A", 10, nil),
	}}
	// A reservation created yesterday already owns today's first sequence
	// slot, so counting today's creations yields a colliding number.
	repo := &fakeReservationRepo{reservations: []models.Reservation{{
		ID:                "stale",
		ResourceID:        "a",
		UserID:            "someone-else",
		ReservationNumber: prefix + "001",
		StartTime:         slotStart.Add(-3 * time.Hour),
		EndTime:           slotStart.Add(-2 * time.Hour),
		Status:            models.StatusApproved,
		CreatedAt:         time.Now().AddDate(0, 0, -1),
	}}}
	c := NewDefaultCommitter(NewDefaultMatcher(resources, repo), repo, nil)

	res, _, err := c.Commit(context.Background(), draftAt(slotStart, 4), "user-1")
	require.NoError(t, err)
	assert.Equal(t, prefix+"002", res.ReservationNumber)
}

func TestCommitNoRoom(t *testing.T) {
	repo := &fakeReservationRepo{}
	c := NewDefaultCommitter(NewDefaultMatcher(&fakeResourceRepo{}, repo), repo, nil)

	_, _, err := c.Commit(context.Background(), draftAt(slotStart, 4), "user-1")
	assert.ErrorIs(t, err, ErrNoRoom)
}

func TestCommitRetriesOntoAnotherRoom(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("a", "A", 6, nil),
		room("b", "B", 20, nil),
	}}
	repo := &fakeReservationRepo{}
	c := NewDefaultCommitter(NewDefaultMatcher(resources, repo), repo, nil)

	// Simulate losing the race on the preferred room: someone books it
	// between room selection and the transactional insert.
	raced := false
	c.now = func() time.Time {
		if !raced {
			raced = true
			repo.reservations = append(repo.reservations, reservation("a", slotStart, slotEnd))
		}
		return time.Now()
	}

	res, matched, err := c.Commit(context.Background(), draftAt(slotStart, 4), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "b", res.ResourceID)
	assert.Equal(t, "B", matched.Name)
}

func TestConcurrentCommitsNeverDoubleBook(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("a", "A", 10, nil),
	}}
	repo := &fakeReservationRepo{}
	c := NewDefaultCommitter(NewDefaultMatcher(resources, repo), repo, nil)

	const workers = 10
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _, err := c.Commit(context.Background(), draftAt(slotStart, 4), fmt.Sprintf("user-%d", n))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrNoRoom):
			// Late starters see the slot already held and fail either at
			// selection or at the transactional re-check.
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	// Accepted reservations on the same room must be pairwise disjoint.
	stored, err := repo.ListOverlapping(context.Background(), "a", slotStart, slotEnd)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
