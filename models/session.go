package models

import "time"

// SessionContext holds the partial reservation state accumulated across
// dialog turns for one session. It is mutated only through the dialog
// tracker and persisted in the session store between turns.
type SessionContext struct {
	TimeInfo  *TimeInfo `json:"time_info,omitempty"`
	Entities  EntitySet `json:"entities,omitempty"`
	Intent    string    `json:"intent,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
