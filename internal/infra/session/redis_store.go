package session

import (
	"context"
	"time"

	"gatekeeper/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// redisStore keeps session records in Redis hashes. The created_at field is
// stored alongside the user id and checked at read time, so expiry semantics
// match the other variants exactly; no key-level TTL is relied upon for
// correctness.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed session store.
// A non-positive ttl disables expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) service.SessionStore {
	return newRedisStore(client, ttl, time.Now)
}

func newRedisStore(client *redis.Client, ttl time.Duration, now func() time.Time) *redisStore {
	return &redisStore{
		client: client,
		ttl:    ttl,
		now:    now,
	}
}

func (s *redisStore) key(token string) string {
	return redisKeyPrefix + token
}

// Create mints a fresh token and stores the session hash.
func (s *redisStore) Create(ctx context.Context, userID string) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", service.ErrMalformedUserID
	}

	token := uuid.NewString()
	fields := map[string]any{
		"user_id":    userID,
		"created_at": s.now().Format(time.RFC3339Nano),
	}

	if err := s.client.HSet(ctx, s.key(token), fields).Err(); err != nil {
		return "", errors.Wrap(err, "failed to store session in redis")
	}

	return token, nil
}

// Resolve loads the session hash and applies the lazy TTL check.
func (s *redisStore) Resolve(ctx context.Context, token string) (string, error) {
	values, err := s.client.HGetAll(ctx, s.key(token)).Result()
	if err != nil {
		return "", errors.Wrap(err, "failed to load session from redis")
	}

	// HGetAll returns an empty map for missing keys.
	userID, ok := values["user_id"]
	if !ok || userID == "" {
		return "", service.ErrSessionInvalid
	}

	if s.ttl > 0 {
		createdAt, err := time.Parse(time.RFC3339Nano, values["created_at"])
		if err != nil {
			return "", service.ErrSessionInvalid
		}
		if s.now().Sub(createdAt) > s.ttl {
			return "", service.ErrSessionInvalid
		}
	}

	return userID, nil
}

// Revoke deletes the session hash if present.
func (s *redisStore) Revoke(ctx context.Context, token string) (bool, error) {
	removed, err := s.client.Del(ctx, s.key(token)).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to delete session from redis")
	}

	return removed > 0, nil
}
