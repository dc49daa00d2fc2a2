// File: services/booking/matching_test.go
package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/models"
)

var (
	slotStart = time.Date(2025, 9, 2, 14, 0, 0, 0, time.Local)
	slotEnd   = slotStart.Add(time.Hour)
)

func TestFindRoomPrefersSnugCapacity(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("big", "3F 大会议室", 20, nil),
		room("small", "1F 小会议室", 6, nil),
	}}
	m := NewDefaultMatcher(resources, &fakeReservationRepo{})

	got, err := m.FindRoom(context.Background(), slotStart, slotEnd, 4, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "small", got.ID)
}

func TestFindRoomRejectsInsufficientCapacity(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("small", "1F 小会议室", 4, nil),
	}}
	m := NewDefaultMatcher(resources, &fakeReservationRepo{})

	got, err := m.FindRoom(context.Background(), slotStart, slotEnd, 10, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindRoomSkipsConflictingRoom(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("a", "A", 6, nil),
		room("b", "B", 6, nil),
	}}
	reservations := &fakeReservationRepo{reservations: []models.Reservation{
		reservation("a", slotStart.Add(-30*time.Minute), slotStart.Add(30*time.Minute)),
	}}
	m := NewDefaultMatcher(resources, reservations)

	got, err := m.FindRoom(context.Background(), slotStart, slotEnd, 4, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)
}

func TestFindRoomBackToBackIsNotAConflict(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("a", "A", 6, nil),
	}}
	reservations := &fakeReservationRepo{reservations: []models.Reservation{
		reservation("a", slotStart.Add(-time.Hour), slotStart),
		reservation("a", slotEnd, slotEnd.Add(time.Hour)),
	}}
	m := NewDefaultMatcher(resources, reservations)

	got, err := m.FindRoom(context.Background(), slotStart, slotEnd, 4, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestFindRoomPrefersRequiredEquipment(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("bare", "无设备", 6, nil),
		room("equipped", "带投影", 6, map[string]bool{"投影仪": true}),
	}}
	m := NewDefaultMatcher(resources, &fakeReservationRepo{})

	got, err := m.FindRoom(context.Background(), slotStart, slotEnd, 4, []string{"投影仪"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "equipped", got.ID)
}

func TestFindRoomTieGoesToFirstCandidate(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("first", "A", 6, nil),
		room("second", "B", 6, nil),
	}}
	m := NewDefaultMatcher(resources, &fakeReservationRepo{})

	got, err := m.FindRoom(context.Background(), slotStart, slotEnd, 4, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.ID)
}

type fakePoolCache struct {
	data   map[string][]models.Resource
	stores int
}

func newFakePoolCache() *fakePoolCache {
	return &fakePoolCache{data: map[string][]models.Resource{}}
}

func (f *fakePoolCache) Fetch(_ context.Context, key string) ([]models.Resource, bool) {
	pool, ok := f.data[key]
	return pool, ok
}

func (f *fakePoolCache) Store(_ context.Context, key string, pool []models.Resource) {
	f.stores++
	f.data[key] = pool
}

func TestFindRoomReadsPoolThroughCache(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("a", "A", 6, nil),
	}}
	cache := newFakePoolCache()
	m := NewDefaultMatcher(resources, &fakeReservationRepo{}).WithPoolCache(cache)

	got, err := m.FindRoom(context.Background(), slotStart, slotEnd, 4, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, cache.stores)

	// Empty the repository: a second lookup inside the TTL window must be
	// served from the cached pool.
	resources.rooms = nil
	got, err = m.FindRoom(context.Background(), slotStart, slotEnd, 4, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, 1, cache.stores)
}

func TestOverlapSymmetry(t *testing.T) {
	a := models.Reservation{StartTime: slotStart, EndTime: slotEnd}
	b := models.Reservation{StartTime: slotStart.Add(30 * time.Minute), EndTime: slotEnd.Add(30 * time.Minute)}

	assert.Equal(t, a.Overlaps(b.StartTime, b.EndTime), b.Overlaps(a.StartTime, a.EndTime))
	assert.True(t, a.Overlaps(a.StartTime, a.EndTime))
}

func TestFindAlternativesSkipsRequestedSlot(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("a", "A", 6, nil),
	}}
	// The room is busy all day except the 14:00 hour, which is the slot the
	// user originally asked for and must not be offered back.
	dayStart := time.Date(2025, 9, 2, 9, 0, 0, 0, time.Local)
	reservations := &fakeReservationRepo{reservations: []models.Reservation{
		reservation("a", dayStart, slotStart),
		reservation("a", slotEnd, time.Date(2025, 9, 2, 18, 0, 0, 0, time.Local)),
	}}
	m := NewDefaultMatcher(resources, reservations)

	alts, err := m.FindAlternatives(context.Background(), slotStart, slotEnd, 4, nil)
	require.NoError(t, err)
	require.NotEmpty(t, alts)
	assert.LessOrEqual(t, len(alts), 3)
	for _, alt := range alts {
		if alt.Date == "2025-09-02" {
			assert.NotEqual(t, "14:00", alt.StartTime)
		}
	}
	// The same-day window is fully booked, so the offers come from the
	// following day within business hours.
	assert.Equal(t, "2025-09-03", alts[0].Date)
	assert.Equal(t, "09:00", alts[0].StartTime)
}

func TestFindAlternativesSameDayFirst(t *testing.T) {
	resources := &fakeResourceRepo{rooms: []models.Resource{
		room("a", "A", 6, nil),
	}}
	reservations := &fakeReservationRepo{reservations: []models.Reservation{
		reservation("a", slotStart, slotEnd),
	}}
	m := NewDefaultMatcher(resources, reservations)

	alts, err := m.FindAlternatives(context.Background(), slotStart, slotEnd, 4, nil)
	require.NoError(t, err)
	require.Len(t, alts, 3)
	for _, alt := range alts {
		assert.Equal(t, "2025-09-02", alt.Date)
		assert.Equal(t, "A", alt.RoomName)
	}
	assert.Equal(t, "09:00", alts[0].StartTime)
	assert.Equal(t, "10:00", alts[0].EndTime)
}
