package models

import "time"

// Reservation statuses.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Reservation kinds.
const (
	ReservationMeeting = "meeting"
	ReservationVisitor = "visitor"
	ReservationVehicle = "vehicle"
)

// ReservationDetails carries the flexible per-reservation payload.
type ReservationDetails struct {
	AttendeeCount int      `bson:"attendee_count" json:"attendee_count"`
	Requirements  []string `bson:"requirements,omitempty" json:"requirements,omitempty"`
}

// Reservation represents a confirmed reservation record.
type Reservation struct {
	ID                string             `bson:"id" json:"id"`                                 // Unique reservation identifier (UUID)
	ReservationNumber string             `bson:"reservation_number" json:"reservation_number"` // Human-readable number, e.g. 250903001
	Type              string             `bson:"type" json:"type"`                             // One of the Reservation* kind constants
	UserID            string             `bson:"user_id" json:"user_id"`                       // User who made the reservation
	ResourceID        string             `bson:"resource_id,omitempty" json:"resource_id,omitempty"`
	StartTime         time.Time          `bson:"start_time" json:"start_time"`
	EndTime           time.Time          `bson:"end_time" json:"end_time"`
	Status            string             `bson:"status" json:"status"`
	Title             string             `bson:"title,omitempty" json:"title,omitempty"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Details           ReservationDetails `bson:"details" json:"details"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// Overlaps reports whether two half-open intervals [a.Start, a.End) and
// [start, end) intersect.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}
