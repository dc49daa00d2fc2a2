// File: services/booking/matching.go
package booking

import (
	"context"
	"time"

	"roomly/config"
	"roomly/models"
	reservationRepo "roomly/database/repository/reservation"
	resourceRepo "roomly/database/repository/resource"
	"roomly/utils"
)

// DefaultMatcher scores candidate rooms on capacity fit, equipment fit and a
// flat availability bonus, with the weights taken from configuration.
type DefaultMatcher struct {
	resources    resourceRepo.ResourceRepository
	reservations reservationRepo.ReservationRepository
	poolCache    PoolCache
}

// NewDefaultMatcher wires the matcher to its repositories.
func NewDefaultMatcher(resources resourceRepo.ResourceRepository, reservations reservationRepo.ReservationRepository) *DefaultMatcher {
	return &DefaultMatcher{resources: resources, reservations: reservations}
}

// WithPoolCache attaches a cache in front of the availability-pool read.
// Returns the matcher so wiring can chain.
func (m *DefaultMatcher) WithPoolCache(cache PoolCache) *DefaultMatcher {
	m.poolCache = cache
	return m
}

const poolCacheKeyPrefix = "match:pool:"

func (m *DefaultMatcher) loadPool(ctx context.Context, resourceType string) ([]models.Resource, error) {
	key := poolCacheKeyPrefix + resourceType
	if m.poolCache != nil {
		if pool, ok := m.poolCache.Fetch(ctx, key); ok {
			return pool, nil
		}
	}

	pool, err := m.resources.ListAvailable(ctx, resourceType)
	if err != nil {
		return nil, err
	}
	if m.poolCache != nil {
		m.poolCache.Store(ctx, key, pool)
	}
	return pool, nil
}

func (m *DefaultMatcher) FindRoom(ctx context.Context, start, end time.Time, attendees int, requirements []string) (*models.Resource, error) {
	pool, err := m.loadPool(ctx, models.ResourceMeetingRoom)
	if err != nil {
		return nil, err
	}
	if attendees < 1 {
		attendees = 1
	}

	var best *models.Resource
	bestScore := 0.0
	for i := range pool {
		room := &pool[i]
		if room.Capacity < attendees {
			continue
		}

		existing, err := m.reservations.ListOverlapping(ctx, room.ID, start, end)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			continue
		}

		// Strictly-greater comparison keeps the first room on a tie, so the
		// choice is stable across runs for the same pool.
		if score := scoreRoom(room, attendees, requirements); score > bestScore {
			best, bestScore = room, score
		}
	}
	return best, nil
}

// scoreRoom weighs how well a free room fits the request. Capacity close to
// the head count beats oversized rooms; equipment fit is proportional to the
// fraction of requested features present.
func scoreRoom(room *models.Resource, attendees int, requirements []string) float64 {
	cfg := config.AppConfig
	score := 0.0

	switch {
	case room.Capacity <= attendees*3/2:
		score += cfg.MatchCapacitySnug
	case room.Capacity <= attendees*2:
		score += cfg.MatchCapacityRoomy
	default:
		score += cfg.MatchCapacityOversize
	}

	matched := 0
	for _, req := range requirements {
		if room.Features[req] {
			matched++
		}
	}
	if len(requirements) > 0 {
		score += cfg.MatchEquipmentWeight * float64(matched) / float64(len(requirements))
		if matched == 0 {
			// Requirements were stated but the room satisfies none of them.
			score /= 2
		}
	}

	score += cfg.MatchBaseScore
	if score > 1.0 {
		score = 1.0
	}
	return score
}

const maxAlternatives = 3

func (m *DefaultMatcher) FindAlternatives(ctx context.Context, start, end time.Time, attendees int, requirements []string) ([]models.AlternativeSlot, error) {
	duration := end.Sub(start)
	var alternatives []models.AlternativeSlot

	for dayOffset := 0; dayOffset <= 1 && len(alternatives) < maxAlternatives; dayOffset++ {
		day := start.AddDate(0, 0, dayOffset)
		date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

		for hour := config.AppConfig.BusinessHourStart; hour < config.AppConfig.BusinessHourEnd; hour++ {
			altStart := date.Add(time.Duration(hour) * time.Hour)
			if altStart.Equal(start) {
				continue
			}
			altEnd := altStart.Add(duration)

			room, err := m.FindRoom(ctx, altStart, altEnd, attendees, requirements)
			if err != nil {
				utils.GetLogger().Sugar().Warnf("alternative slot check failed at %s: %v", altStart, err)
				continue
			}
			if room == nil {
				continue
			}

			alternatives = append(alternatives, models.AlternativeSlot{
				StartTime: altStart.Format("15:04"),
				EndTime:   altEnd.Format("15:04"),
				RoomName:  room.Name,
				Date:      altStart.Format("2006-01-02"),
			})
			if len(alternatives) >= maxAlternatives {
				break
			}
		}
	}
	return alternatives, nil
}
