package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
)

const sessionKeyPrefix = "coursenotes:session:"

// RedisStore keeps sessions in Redis with the key TTL set to the session expiry
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore wraps an existing client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Save writes the session as JSON
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	ttl := time.Duration(0)
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return apperrors.ErrSessionExpired
		}
	}
	return r.client.Set(ctx, sessionKey(s.ID), data, ttl).Err()
}

// Get loads a session; a missing key is ErrSessionNotFound
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	value, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

// Delete removes the session key
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}
