// Package cache holds the badge-count read-model. Postgres stays the source
// of truth; entries are dropped on every cart or wishlist mutation.
package cache

import (
	"context"

	"github.com/danrawss/techtrove/internal/domain"
)

// Stamp is the invalidation generation observed by a cache miss. Set only
// stores when the generation is unchanged, so a read that raced with a
// mutation cannot put pre-mutation counts back.
type Stamp string

// Counts caches per-user badge counts.
type Counts interface {
	// Get returns the cached counts, or ok=false and the current stamp.
	Get(ctx context.Context, userID string) (c domain.Counts, stamp Stamp, ok bool, err error)
	// Set stores c unless userID was invalidated after stamp was read.
	// stored reports whether the write happened.
	Set(ctx context.Context, userID string, stamp Stamp, c domain.Counts) (stored bool, err error)
	Invalidate(ctx context.Context, userID string) error
}

// Noop never hits and never stores. Used when REDIS_ADDR is empty.
type Noop struct{}

func (Noop) Get(context.Context, string) (domain.Counts, Stamp, bool, error) {
	return domain.Counts{}, "", false, nil
}

func (Noop) Set(context.Context, string, Stamp, domain.Counts) (bool, error) { return false, nil }

func (Noop) Invalidate(context.Context, string) error { return nil }
