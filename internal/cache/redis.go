package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	fieldCart     = "cart"
	fieldWishlist = "wishlist"
)

// setIfCurrent writes the hash only while the generation key still holds
// the caller's stamp. KEYS: hash, gen. ARGV: stamp, cart, wishlist, ttl ms.
var setIfCurrent = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
  return 0
end
redis.call('HSET', KEYS[1], 'cart', ARGV[2], 'wishlist', ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`)

type redisCounts struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis stores counts as a hash per user that expires after ttl, next to
// a generation counter bumped on every invalidation.
func NewRedis(client *redis.Client, ttl time.Duration) Counts {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisCounts{client: client, ttl: ttl}
}

// Both keys share a hash tag so the script runs on one cluster slot.
func key(userID string) string {
	return "techtrove:counts:{" + userID + "}"
}

func genKey(userID string) string {
	return key(userID) + ":gen"
}

func (r *redisCounts) Get(ctx context.Context, userID string) (domain.Counts, Stamp, bool, error) {
	var (
		all *redis.MapStringStringCmd
		gen *redis.StringCmd
	)
	_, err := r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		all = p.HGetAll(ctx, key(userID))
		gen = p.Get(ctx, genKey(userID))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return domain.Counts{}, "", false, err
	}

	stamp := Stamp("0")
	if v, err := gen.Result(); err == nil {
		stamp = Stamp(v)
	} else if !errors.Is(err, redis.Nil) {
		return domain.Counts{}, "", false, err
	}

	vals, err := all.Result()
	if err != nil {
		return domain.Counts{}, "", false, err
	}
	cartRaw, okCart := vals[fieldCart]
	wishRaw, okWish := vals[fieldWishlist]
	if !okCart || !okWish {
		return domain.Counts{}, stamp, false, nil
	}
	cart, err := strconv.Atoi(cartRaw)
	if err != nil {
		return domain.Counts{}, "", false, fmt.Errorf("decode cart count: %w", err)
	}
	wish, err := strconv.Atoi(wishRaw)
	if err != nil {
		return domain.Counts{}, "", false, fmt.Errorf("decode wishlist count: %w", err)
	}
	return domain.Counts{CartItems: cart, WishlistItems: wish}, stamp, true, nil
}

func (r *redisCounts) Set(ctx context.Context, userID string, stamp Stamp, c domain.Counts) (bool, error) {
	n, err := setIfCurrent.Run(ctx, r.client,
		[]string{key(userID), genKey(userID)},
		string(stamp), c.CartItems, c.WishlistItems, r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Invalidate drops the entry and bumps the generation. The generation
// outlives the entry so an in-flight read cannot see it reset.
func (r *redisCounts) Invalidate(ctx context.Context, userID string) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key(userID))
		p.Incr(ctx, genKey(userID))
		p.Expire(ctx, genKey(userID), 24*time.Hour)
		return nil
	})
	return err
}
