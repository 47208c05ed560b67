package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/gatekit/core/authn"
)

// RedisStore is a Redis-backed Store implementation. Expiry is delegated to
// Redis key TTLs, so DeleteExpired is a no-op kept for interface symmetry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

// redisSession is the wire representation; the unexported modified flag
// never round-trips.
type redisSession struct {
	ID        uuid.UUID       `json:"id"`
	Token     string          `json:"token"`
	Principal authn.Principal `json:"principal"`
	ExpiresAt time.Time       `json:"expires_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// GetByToken returns the stored session.
func (s *RedisStore) GetByToken(ctx context.Context, token string) (*Session, error) {
	val, err := s.client.Get(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}

	var rs redisSession
	if err := json.Unmarshal([]byte(val), &rs); err != nil {
		return nil, fmt.Errorf("session: unmarshal: %w", err)
	}

	return &Session{
		ID:        rs.ID,
		Token:     rs.Token,
		Principal: rs.Principal,
		ExpiresAt: rs.ExpiresAt,
		CreatedAt: rs.CreatedAt,
		UpdatedAt: rs.UpdatedAt,
	}, nil
}

// Save stores the session with a TTL matching its expiry.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		// Expired already; delete instead of extending.
		return s.client.Del(ctx, s.key(sess.Token)).Err()
	}

	data, err := json.Marshal(redisSession{
		ID:        sess.ID,
		Token:     sess.Token,
		Principal: sess.Principal,
		ExpiresAt: sess.ExpiresAt,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	return s.client.Set(ctx, s.key(sess.Token), data, ttl).Err()
}

// Delete removes the session with the given token.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	deleted, err := s.client.Del(ctx, s.key(token)).Result()
	if err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts expired keys itself.
func (s *RedisStore) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
