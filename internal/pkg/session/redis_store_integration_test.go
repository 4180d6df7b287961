//go:build integration

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
)

func TestRedisStore(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		t.Fatalf("could not start redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	client := redis.NewClient(&redis.Options{Addr: "localhost:" + resource.GetPort("6379/tcp")})
	t.Cleanup(func() { _ = client.Close() })

	if err := pool.Retry(func() error {
		return client.Ping(context.Background()).Err()
	}); err != nil {
		t.Fatalf("redis not ready: %v", err)
	}

	ctx := context.Background()
	store := NewRedisStore(client)
	s := &Session{
		ID:        "abc",
		UserID:    "user-1",
		Username:  "alice",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Minute),
	}
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("unexpected session %+v", got)
	}

	ttl, err := client.TTL(ctx, sessionKey("abc")).Result()
	if err != nil || ttl <= 0 {
		t.Fatalf("expected a positive key ttl, got %s (%v)", ttl, err)
	}

	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "abc"); !errors.Is(err, apperrors.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
