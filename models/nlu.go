package models

import "time"

// Entity categories produced by the extractor.
const (
	EntityTime      = "time"
	EntityDuration  = "duration"
	EntityAttendees = "attendee_count"
	EntityEquipment = "equipment_requirements"
	EntityRoomType  = "room_type"
)

// EntitySet maps an entity category to the deduplicated tokens extracted for
// it. Categories with no matches are simply absent.
type EntitySet map[string][]string

// Intents recognised by the classifier.
const (
	IntentReservation = "reservation"
	IntentQuery       = "query"
	IntentCancel      = "cancel"
	IntentModify      = "modify"
	IntentHelp        = "help"
	IntentChat        = "chat"
)

// IntentResult is the outcome of classifying one utterance.
type IntentResult struct {
	Intent     string             `json:"intent"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores"`
	ParseError string             `json:"parse_error,omitempty"` // diagnostic only, never user-facing
}

// TimeInfo is the result of parsing a temporal expression. Date and Time keep
// the original string forms ("2006-01-02", "15:04") so the struct survives a
// JSON round trip through the session store unchanged.
type TimeInfo struct {
	Date        string   `json:"date,omitempty"`
	Time        string   `json:"time,omitempty"`
	DurationMin int      `json:"duration_min,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
	Expressions []string `json:"expressions,omitempty"`
	Confidence  float64  `json:"confidence"`
	Success     bool     `json:"success"`
}

// HasDate reports whether a concrete date was resolved.
func (t *TimeInfo) HasDate() bool { return t.Date != "" }

// HasTime reports whether a concrete time of day was resolved.
func (t *TimeInfo) HasTime() bool { return t.Time != "" }

// ReservationDraft is the transient structure fused from extracted entities
// and carried-over session context. It lives for one request only.
type ReservationDraft struct {
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationHours float64   `json:"duration_hours"`
	AttendeeCount int       `json:"attendee_count"`
	Requirements  []string  `json:"requirements"`
	HasStart      bool      `json:"has_start"`
}

// CompletenessResult reports which required fields are still missing from a
// draft. Only start_time is a hard requirement; everything else defaults.
type CompletenessResult struct {
	IsComplete    bool     `json:"is_complete"`
	MissingFields []string `json:"missing_fields"`
}
