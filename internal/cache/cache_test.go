package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/redis/go-redis/v9"
)

func TestNoopNeverHits(t *testing.T) {
	ctx := context.Background()
	var c Counts = Noop{}
	if stored, err := c.Set(ctx, "u1", "", domain.Counts{CartItems: 3}); stored || err != nil {
		t.Fatalf("Set: stored=%v err=%v", stored, err)
	}
	if _, _, ok, err := c.Get(ctx, "u1"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func redisCache(t *testing.T) (*redis.Client, Counts) {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	return client, NewRedis(client, time.Minute)
}

func TestRedisRoundTrip(t *testing.T) {
	client, c := redisCache(t)
	ctx := context.Background()
	user := "cache-test-user"
	_ = c.Invalidate(ctx, user)

	_, stamp, ok, err := c.Get(ctx, user)
	if ok || err != nil {
		t.Fatalf("expected miss before set, got ok=%v err=%v", ok, err)
	}
	want := domain.Counts{CartItems: 4, WishlistItems: 2}
	if stored, err := c.Set(ctx, user, stamp, want); !stored || err != nil {
		t.Fatalf("Set: stored=%v err=%v", stored, err)
	}
	got, _, ok, err := c.Get(ctx, user)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	ttl, err := client.TTL(ctx, key(user)).Result()
	if err != nil || ttl <= 0 {
		t.Fatalf("expected ttl set, got %v %v", ttl, err)
	}

	if err := c.Invalidate(ctx, user); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, _, ok, _ := c.Get(ctx, user); ok {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestRedisSetSkipsAfterInvalidate(t *testing.T) {
	_, c := redisCache(t)
	ctx := context.Background()
	user := "cache-race-user"
	_ = c.Invalidate(ctx, user)

	_, stamp, _, err := c.Get(ctx, user)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// A mutation lands between the miss and the write-back.
	if err := c.Invalidate(ctx, user); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if stored, err := c.Set(ctx, user, stamp, domain.Counts{CartItems: 9}); stored || err != nil {
		t.Fatalf("expected stale write skipped, got stored=%v err=%v", stored, err)
	}
	if _, _, ok, _ := c.Get(ctx, user); ok {
		t.Fatalf("expected miss, stale counts were cached")
	}
}
