// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"errors"
	"time"

	"roomly/config"
	"roomly/database"
	"roomly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrConflict is returned when a transactional commit loses the race against
// a concurrent overlapping reservation on the same resource.
var ErrConflict = errors.New("reservation conflicts with an existing booking")

// ErrDuplicateNumber is returned when the insert hits the unique reservation
// number index: a concurrent same-day commit claimed the same sequence slot.
var ErrDuplicateNumber = errors.New("reservation number already taken")

// ReservationRepository exposes the reservation record store.
type ReservationRepository interface {
	// CommitTransactionally re-checks the overlap invariant and inserts the
	// reservation inside a single transaction. Returns ErrConflict when a
	// concurrent write got there first and ErrDuplicateNumber when only the
	// reservation number collided.
	CommitTransactionally(ctx context.Context, res *models.Reservation) error

	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	ListOverlapping(ctx context.Context, resourceID string, start, end time.Time) ([]models.Reservation, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Reservation, error)
	ListCancellable(ctx context.Context, userID string, after time.Time) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id, userID, status string) (*models.Reservation, error)
	CountCreatedOn(ctx context.Context, day time.Time) (int64, error)
	EnsureIndexes() error
}

type mongoReservationRepo struct {
	coll *mongo.Collection
	// resources is written inside the commit transaction to serialize
	// concurrent claims on the same room.
	resources *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoReservationRepo{
		coll:      db.Collection("reservations"),
		resources: db.Collection("resources"),
	}
}
