package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"transport-report-be/models"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix is prepended to session IDs to form store keys
const KeyPrefix = "transport_user"

var ErrNoSession = errors.New("no active session")

// Store persists the identity behind each session
type Store interface {
	Save(ctx context.Context, sessionID string, identity models.Identity, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (models.Identity, error)
	Clear(ctx context.Context, sessionID string) error
}

func storeKey(sessionID string) string {
	return KeyPrefix + ":" + sessionID
}

// RedisStore keeps each identity as a JSON value with a TTL
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, identity models.Identity, ttl time.Duration) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return s.client.Set(ctx, storeKey(sessionID), data, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (models.Identity, error) {
	data, err := s.client.Get(ctx, storeKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Identity{}, ErrNoSession
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("load session: %w", err)
	}

	var identity models.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return models.Identity{}, fmt.Errorf("decode identity: %w", err)
	}
	return identity, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, storeKey(sessionID)).Err()
}

// MemoryStore is a process-local Store backed by go-cache. Entries
// expire after their TTL and are swept periodically.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 10*time.Minute)}
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, identity models.Identity, ttl time.Duration) error {
	s.cache.Set(storeKey(sessionID), identity, ttl)
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (models.Identity, error) {
	v, ok := s.cache.Get(storeKey(sessionID))
	if !ok {
		return models.Identity{}, ErrNoSession
	}
	return v.(models.Identity), nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.cache.Delete(storeKey(sessionID))
	return nil
}
