// File: database/repository/reservation/reservation_mongo.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomly/models"
)

// blockingStatuses are the statuses that occupy a resource's time window.
var blockingStatuses = []string{models.StatusApproved, models.StatusPending}

func (r *mongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListOverlapping returns the reservations on a resource whose interval
// intersects [start, end) and whose status still blocks the window.
func (r *mongoReservationRepo) ListOverlapping(ctx context.Context, resourceID string, start, end time.Time) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := overlapFilter(resourceID, start, end)
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

// overlapFilter encodes the open-interval overlap test:
// existing.start < end AND existing.end > start.
func overlapFilter(resourceID string, start, end time.Time) bson.M {
	return bson.M{
		"resource_id": resourceID,
		"status":      bson.M{"$in": blockingStatuses},
		"start_time":  bson.M{"$lt": end},
		"end_time":    bson.M{"$gt": start},
	}
}

func (r *mongoReservationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

// ListCancellable returns upcoming reservations the user may still cancel.
func (r *mongoReservationRepo) ListCancellable(ctx context.Context, userID string, after time.Time) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"user_id":    userID,
		"status":     bson.M{"$in": blockingStatuses},
		"start_time": bson.M{"$gt": after},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cancellable reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

// UpdateStatus transitions a reservation owned by userID out of a blocking
// status. Returns mongo.ErrNoDocuments when no such reservation exists.
func (r *mongoReservationRepo) UpdateStatus(ctx context.Context, id, userID, status string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"status":  bson.M{"$in": blockingStatuses},
		"$or": bson.A{
			bson.M{"id": id},
			bson.M{"reservation_number": id},
		},
	}
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var res models.Reservation
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CountCreatedOn counts reservations created on the given calendar day; the
// committer derives the daily sequence number from it.
func (r *mongoReservationRepo) CountCreatedOn(ctx context.Context, day time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	filter := bson.M{"created_at": bson.M{"$gte": dayStart, "$lt": dayEnd}}

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

// EnsureIndexes creates the necessary indexes on the reservations collection.
func (r *mongoReservationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "reservation_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_number"),
		},
		// Primary conflict-check pattern: resource + status + interval.
		{
			Keys: bson.D{
				{Key: "resource_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "start_time", Value: 1},
				{Key: "end_time", Value: 1},
			},
			Options: options.Index().SetName("resource_window_idx"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "start_time", Value: -1}},
			Options: options.Index().SetName("user_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetName("created_at_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}
