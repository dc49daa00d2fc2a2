// File: services/dialog/tracker_test.go
package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/models"
)

var now = time.Date(2025, 9, 1, 10, 0, 0, 0, time.Local)

func fixedTracker() *Tracker {
	return NewTrackerAt(func() time.Time { return now })
}

func TestTrackerMissingStartTime(t *testing.T) {
	tr := fixedTracker()
	sc := &models.SessionContext{}

	draft, completeness := tr.Update(models.EntitySet{}, &models.TimeInfo{}, sc)

	assert.False(t, completeness.IsComplete)
	assert.Equal(t, []string{"start_time"}, completeness.MissingFields)
	assert.False(t, draft.HasStart)

	prompt, suggestions := tr.Prompt(completeness.MissingFields)
	assert.Contains(t, prompt, "预约时间")
	assert.LessOrEqual(t, len(suggestions), 4)
	assert.NotEmpty(t, suggestions)
}

func TestTrackerDefaults(t *testing.T) {
	tr := fixedTracker()
	sc := &models.SessionContext{}

	ti := &models.TimeInfo{Date: "2025-09-02", Time: "14:00", Success: true}
	draft, completeness := tr.Update(models.EntitySet{}, ti, sc)

	require.True(t, completeness.IsComplete)
	assert.Equal(t, 1, draft.AttendeeCount)
	assert.InDelta(t, 1.0, draft.DurationHours, 0.001)
	assert.Equal(t, time.Date(2025, 9, 2, 14, 0, 0, 0, time.Local), draft.StartTime)
	assert.Equal(t, time.Date(2025, 9, 2, 15, 0, 0, 0, time.Local), draft.EndTime)
}

func TestTrackerTimeWithoutDateMeansToday(t *testing.T) {
	tr := fixedTracker()
	sc := &models.SessionContext{}

	ti := &models.TimeInfo{Time: "15:00", Success: true}
	draft, completeness := tr.Update(models.EntitySet{}, ti, sc)

	require.True(t, completeness.IsComplete)
	assert.Equal(t, time.Date(2025, 9, 1, 15, 0, 0, 0, time.Local), draft.StartTime)
}

func TestTrackerMultiTurnMerge(t *testing.T) {
	tr := fixedTracker()
	sc := &models.SessionContext{}

	// Turn 1: attendee count and equipment, no time.
	entities := models.EntitySet{
		models.EntityAttendees: {"5"},
		models.EntityEquipment: {"投影仪"},
	}
	_, completeness := tr.Update(entities, &models.TimeInfo{}, sc)
	assert.False(t, completeness.IsComplete)

	// Turn 2: only a time; earlier fields carry over from the session.
	ti := &models.TimeInfo{Date: "2025-09-02", Time: "14:00", DurationMin: 120, Success: true}
	draft, completeness := tr.Update(models.EntitySet{}, ti, sc)

	require.True(t, completeness.IsComplete)
	assert.Equal(t, 5, draft.AttendeeCount)
	assert.Equal(t, []string{"投影仪"}, draft.Requirements)
	assert.InDelta(t, 2.0, draft.DurationHours, 0.001)
	assert.Equal(t, time.Date(2025, 9, 2, 14, 0, 0, 0, time.Local), draft.StartTime)
	assert.Equal(t, time.Date(2025, 9, 2, 16, 0, 0, 0, time.Local), draft.EndTime)
}

func TestTrackerNewDataWins(t *testing.T) {
	tr := fixedTracker()
	sc := &models.SessionContext{}

	tr.Update(models.EntitySet{models.EntityAttendees: {"5"}}, &models.TimeInfo{Date: "2025-09-02", Time: "14:00"}, sc)

	// A later turn restates both; the new values replace the held ones.
	draft, _ := tr.Update(
		models.EntitySet{models.EntityAttendees: {"8"}},
		&models.TimeInfo{Time: "16:00"},
		sc,
	)

	assert.Equal(t, 8, draft.AttendeeCount)
	assert.Equal(t, time.Date(2025, 9, 2, 16, 0, 0, 0, time.Local), draft.StartTime)
}

func TestTrackerCompletenessMonotonic(t *testing.T) {
	tr := fixedTracker()
	sc := &models.SessionContext{}

	_, first := tr.Update(models.EntitySet{}, &models.TimeInfo{Date: "2025-09-02", Time: "14:00"}, sc)
	require.True(t, first.IsComplete)

	// A later turn that adds nothing new cannot regress completeness.
	_, second := tr.Update(models.EntitySet{}, &models.TimeInfo{}, sc)
	assert.True(t, second.IsComplete)
	assert.Empty(t, second.MissingFields)
}

func TestTrackerChineseNumeralAttendees(t *testing.T) {
	tr := fixedTracker()
	sc := &models.SessionContext{}

	draft, _ := tr.Update(
		models.EntitySet{models.EntityAttendees: {"十五"}},
		&models.TimeInfo{Date: "2025-09-02", Time: "09:00"},
		sc,
	)
	assert.Equal(t, 15, draft.AttendeeCount)
}

func TestTrackerTitleAndDescription(t *testing.T) {
	tr := fixedTracker()
	sc := &models.SessionContext{}

	draft, _ := tr.Update(
		models.EntitySet{
			models.EntityAttendees: {"8"},
			models.EntityEquipment: {"投影仪", "白板"},
			models.EntityRoomType:  {"大会议室"},
		},
		&models.TimeInfo{Date: "2025-09-02", Time: "14:00"},
		sc,
	)

	assert.Equal(t, "会议室预约 - 8人", draft.Title)
	assert.Contains(t, draft.Description, "投影仪")
	assert.Contains(t, draft.Description, "大会议室")
}
