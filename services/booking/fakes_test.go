// File: services/booking/fakes_test.go
package booking

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"roomly/config"
	reservationRepo "roomly/database/repository/reservation"
	"roomly/models"
)

func TestMain(m *testing.M) {
	config.AppConfig.MatchCapacitySnug = 0.6
	config.AppConfig.MatchCapacityRoomy = 0.4
	config.AppConfig.MatchCapacityOversize = 0.2
	config.AppConfig.MatchEquipmentWeight = 0.3
	config.AppConfig.MatchBaseScore = 0.1
	config.AppConfig.BusinessHourStart = 9
	config.AppConfig.BusinessHourEnd = 18
	os.Exit(m.Run())
}

type fakeResourceRepo struct {
	rooms []models.Resource
}

func (f *fakeResourceRepo) Create(_ context.Context, res *models.Resource) error {
	f.rooms = append(f.rooms, *res)
	return nil
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id string) (*models.Resource, error) {
	for i := range f.rooms {
		if f.rooms[i].ID == id {
			return &f.rooms[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeResourceRepo) ListAvailable(_ context.Context, resourceType string) ([]models.Resource, error) {
	var out []models.Resource
	for _, r := range f.rooms {
		if r.Type == resourceType && r.IsAvailable {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResourceRepo) EnsureIndexes() error { return nil }

// fakeReservationRepo keeps reservations in memory. The overlap re-check and
// insert run under one mutex, mirroring the transactional guarantee of the
// real repository.
type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []models.Reservation
}

func blocking(status string) bool {
	return status == models.StatusApproved || status == models.StatusPending
}

func (f *fakeReservationRepo) CommitTransactionally(_ context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ResourceID == res.ResourceID && blocking(r.Status) && r.Overlaps(res.StartTime, res.EndTime) {
			return reservationRepo.ErrConflict
		}
	}
	// Mirrors the unique index on reservation_number.
	for _, r := range f.reservations {
		if r.ReservationNumber == res.ReservationNumber {
			return reservationRepo.ErrDuplicateNumber
		}
	}
	f.reservations = append(f.reservations, *res)
	return nil
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			return &f.reservations[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeReservationRepo) ListOverlapping(_ context.Context, resourceID string, start, end time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.ResourceID == resourceID && blocking(r.Status) && r.Overlaps(start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ListByUser(_ context.Context, userID string, limit int) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ListCancellable(_ context.Context, userID string, after time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID && blocking(r.Status) && r.StartTime.After(after) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id, userID, status string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reservations {
		r := &f.reservations[i]
		if (r.ID == id || r.ReservationNumber == id) && r.UserID == userID && blocking(r.Status) {
			r.Status = status
			r.UpdatedAt = time.Now()
			return r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeReservationRepo) CountCreatedOn(_ context.Context, day time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, r := range f.reservations {
		if r.CreatedAt.Year() == day.Year() && r.CreatedAt.YearDay() == day.YearDay() {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationRepo) EnsureIndexes() error { return nil }

func room(id, name string, capacity int, features map[string]bool) models.Resource {
	return models.Resource{
		ID:          id,
		Name:        name,
		Type:        models.ResourceMeetingRoom,
		Capacity:    capacity,
		Features:    features,
		IsAvailable: true,
	}
}

func reservation(resourceID string, start, end time.Time) models.Reservation {
	return models.Reservation{
		ID:         "existing-" + resourceID + start.Format("15:04"),
		ResourceID: resourceID,
		UserID:     "someone-else",
		StartTime:  start,
		EndTime:    end,
		Status:     models.StatusApproved,
		CreatedAt:  time.Now(),
	}
}
