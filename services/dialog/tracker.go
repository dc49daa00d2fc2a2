// File: services/dialog/tracker.go
package dialog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"roomly/models"
)

// Engine defaults applied when neither the current turn nor the session
// supplies a value.
const (
	defaultDurationMin = 60
	defaultAttendees   = 1
)

var attendeeNumerals = map[string]int{
	"一": 1, "二": 2, "三": 3, "四": 4, "五": 5,
	"六": 6, "七": 7, "八": 8, "九": 9, "十": 10,
	"十一": 11, "十二": 12, "十三": 13, "十四": 14, "十五": 15,
	"十六": 16, "十七": 17, "十八": 18, "十九": 19, "二十": 20,
}

// timePromptSuggestions are the example completions offered when the start
// time is still missing. Bounded at four.
var timePromptSuggestions = []string{
	"明天下午2点",
	"今天上午9点",
	"后天上午10点",
	"下周一下午3点",
}

// Tracker fuses the current turn's extraction results with the session's
// accumulated context into a reservation draft, and reports which required
// fields are still missing. Merging is new-data-wins per category.
type Tracker struct {
	now func() time.Time
}

// NewTracker returns a tracker using the wall clock.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// NewTrackerAt returns a tracker with a fixed clock for tests.
func NewTrackerAt(now func() time.Time) *Tracker {
	return &Tracker{now: now}
}

// Update merges the turn's entities and parsed time over the session context,
// writes the merged state back into sc, and builds the draft. Only the start
// time is a hard requirement; duration and attendee count fall back to
// engine defaults without being reported missing.
func (t *Tracker) Update(entities models.EntitySet, timeInfo *models.TimeInfo, sc *models.SessionContext) (*models.ReservationDraft, *models.CompletenessResult) {
	merged := mergeTimeInfo(timeInfo, sc.TimeInfo)
	sc.TimeInfo = merged
	sc.Entities = mergeEntities(entities, sc.Entities)
	sc.UpdatedAt = t.now()

	draft := t.buildDraft(merged, sc.Entities)
	completeness := &models.CompletenessResult{IsComplete: draft.HasStart}
	if !draft.HasStart {
		completeness.MissingFields = []string{"start_time"}
	}
	return draft, completeness
}

// Prompt renders the clarification message for a missing-field list.
func (t *Tracker) Prompt(missingFields []string) (string, []string) {
	for _, f := range missingFields {
		if f == "start_time" {
			return "请告诉我预约时间，例如：明天下午2点、今天上午9点等", timePromptSuggestions
		}
	}
	return "请补充预约信息", nil
}

// mergeTimeInfo overlays freshly parsed fields on the session-held ones.
// Each component is independent: a turn that only names a time of day keeps
// the date supplied two turns ago.
func mergeTimeInfo(fresh, held *models.TimeInfo) *models.TimeInfo {
	if held == nil {
		held = &models.TimeInfo{}
	}
	merged := *held
	if fresh == nil {
		return &merged
	}
	if fresh.Date != "" {
		merged.Date = fresh.Date
	}
	if fresh.Time != "" {
		merged.Time = fresh.Time
	}
	if fresh.DurationMin > 0 {
		merged.DurationMin = fresh.DurationMin
	}
	if fresh.EndTime != "" {
		merged.EndTime = fresh.EndTime
	}
	merged.Expressions = append(merged.Expressions, fresh.Expressions...)
	if fresh.Confidence > merged.Confidence {
		merged.Confidence = fresh.Confidence
	}
	merged.Success = merged.Success || fresh.Success
	return &merged
}

func mergeEntities(fresh, held models.EntitySet) models.EntitySet {
	merged := models.EntitySet{}
	for category, tokens := range held {
		merged[category] = tokens
	}
	for category, tokens := range fresh {
		merged[category] = tokens
	}
	return merged
}

func (t *Tracker) buildDraft(ti *models.TimeInfo, entities models.EntitySet) *models.ReservationDraft {
	draft := &models.ReservationDraft{
		Type:          models.ReservationMeeting,
		AttendeeCount: defaultAttendees,
		DurationHours: float64(defaultDurationMin) / 60,
	}

	if n, ok := parseAttendees(entities[models.EntityAttendees]); ok {
		draft.AttendeeCount = n
	}
	draft.Requirements = entities[models.EntityEquipment]

	durationMin := defaultDurationMin
	if ti.DurationMin > 0 {
		durationMin = ti.DurationMin
	}
	draft.DurationHours = float64(durationMin) / 60

	if ti.HasTime() {
		// A time of day with no date means today.
		date := ti.Date
		if date == "" {
			date = t.now().Format("2006-01-02")
		}
		if start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+ti.Time, t.now().Location()); err == nil {
			draft.StartTime = start
			draft.EndTime = start.Add(time.Duration(durationMin) * time.Minute)
			draft.HasStart = true
		}
	}

	draft.Title = buildTitle(draft.AttendeeCount)
	draft.Description = buildDescription(entities)
	return draft
}

// parseAttendees resolves the first usable attendee token, digits or Chinese
// numerals up to twenty.
func parseAttendees(tokens []string) (int, bool) {
	for _, token := range tokens {
		if n, err := strconv.Atoi(token); err == nil && n > 0 {
			return n, true
		}
		if n, ok := attendeeNumerals[token]; ok {
			return n, true
		}
	}
	return 0, false
}

func buildTitle(attendees int) string {
	if attendees > 1 {
		return fmt.Sprintf("会议室预约 - %d人", attendees)
	}
	return "会议室预约"
}

func buildDescription(entities models.EntitySet) string {
	var parts []string
	if equipment := entities[models.EntityEquipment]; len(equipment) > 0 {
		parts = append(parts, "所需设备："+strings.Join(equipment, "、"))
	}
	if roomTypes := entities[models.EntityRoomType]; len(roomTypes) > 0 {
		parts = append(parts, "会议室类型："+roomTypes[0])
	}
	return strings.Join(parts, "；")
}
