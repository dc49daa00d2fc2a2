// File: services/booking/interface.go
package booking

import (
	"context"
	"time"

	"roomly/models"
)

// Matcher finds the best-fitting free room for a window, or bookable
// alternative slots when the requested window has none.
type Matcher interface {
	// FindRoom returns the highest-scoring available room, or nil when no
	// room fits. A nil result is a normal outcome, not an error.
	FindRoom(ctx context.Context, start, end time.Time, attendees int, requirements []string) (*models.Resource, error)

	// FindAlternatives scans hourly working-hour slots on the requested date
	// and the following one, returning up to three bookable slots.
	FindAlternatives(ctx context.Context, start, end time.Time, attendees int, requirements []string) ([]models.AlternativeSlot, error)
}

// Committer persists a completed draft as an approved reservation.
type Committer interface {
	// Commit matches a room, assigns the reservation number and writes the
	// record. A lost conflict race triggers one retry with room re-selection
	// before ErrSlotTaken surfaces.
	Commit(ctx context.Context, draft *models.ReservationDraft, userID string) (*models.Reservation, *models.Resource, error)
}
