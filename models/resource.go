package models

import "time"

// Resource types.
const (
	ResourceMeetingRoom  = "meeting_room"
	ResourceParkingSpace = "parking_space"
)

// Resource represents a bookable resource such as a meeting room.
type Resource struct {
	ID          string          `bson:"id" json:"id"`                     // Unique resource identifier
	Name        string          `bson:"name" json:"name"`                 // Display name, e.g. "3F 大会议室"
	Type        string          `bson:"type" json:"type"`                 // One of the Resource* constants
	Capacity    int             `bson:"capacity" json:"capacity"`         // Maximum seated attendees
	Location    string          `bson:"location,omitempty" json:"location,omitempty"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	Features    map[string]bool `bson:"features" json:"features"`         // Equipment flags keyed by canonical token
	IsAvailable bool            `bson:"is_available" json:"is_available"` // Administratively enabled for booking
	CreatedAt   time.Time       `bson:"created_at" json:"created_at"`
}
