// File: services/dialog/store.go
package dialog

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"roomly/models"
)

const sessionPrefix = "session:ctx:"

// SessionStore persists per-session dialog context between turns. A missing
// session reads back as an empty context, never as an error.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.SessionContext, error)
	Set(ctx context.Context, sessionID string, sc *models.SessionContext) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps session context in Redis with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.SessionContext, error) {
	data, err := s.client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return &models.SessionContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var sc models.SessionContext
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, sessionID string, sc *models.SessionContext) error {
	b, err := json.Marshal(sc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}

type memoryEntry struct {
	ctx       models.SessionContext
	expiresAt time.Time
}

// MemorySessionStore is an in-process store for tests and single-node runs
// without Redis. Entries expire lazily on read.
type MemorySessionStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{ttl: ttl, entries: make(map[string]memoryEntry)}
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*models.SessionContext, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return &models.SessionContext{}, nil
	}
	sc := entry.ctx
	return &sc, nil
}

func (s *MemorySessionStore) Set(_ context.Context, sessionID string, sc *models.SessionContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{ctx: *sc, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemorySessionStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
