package counts

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/danrawss/techtrove/internal/cache"
	"github.com/danrawss/techtrove/internal/domain"
)

type stubCounter struct {
	n      int
	err    error
	calls  int
	during func()
}

func (s *stubCounter) Count(context.Context, string) (int, error) {
	s.calls++
	n := s.n
	if s.during != nil {
		s.during()
	}
	return n, s.err
}

// memCache mirrors the Redis generation check.
type memCache struct {
	data   map[string]domain.Counts
	gen    map[string]int
	getErr error
	sets   int
}

func newMemCache() *memCache {
	return &memCache{data: map[string]domain.Counts{}, gen: map[string]int{}}
}

func (m *memCache) Get(_ context.Context, userID string) (domain.Counts, cache.Stamp, bool, error) {
	if m.getErr != nil {
		return domain.Counts{}, "", false, m.getErr
	}
	c, ok := m.data[userID]
	return c, cache.Stamp(strconv.Itoa(m.gen[userID])), ok, nil
}

func (m *memCache) Set(_ context.Context, userID string, stamp cache.Stamp, c domain.Counts) (bool, error) {
	m.sets++
	if string(stamp) != strconv.Itoa(m.gen[userID]) {
		return false, nil
	}
	m.data[userID] = c
	return true, nil
}

func (m *memCache) Invalidate(_ context.Context, userID string) error {
	delete(m.data, userID)
	m.gen[userID]++
	return nil
}

func TestCountsReadThrough(t *testing.T) {
	cart := &stubCounter{n: 3}
	wish := &stubCounter{n: 1}
	c := newMemCache()
	svc := New(cart, wish, c, nil)
	ctx := context.Background()

	got, err := svc.Counts(ctx, "u1")
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	want := domain.Counts{CartItems: 3, WishlistItems: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if _, err := svc.Counts(ctx, "u1"); err != nil {
		t.Fatalf("Counts again: %v", err)
	}
	if cart.calls != 1 || wish.calls != 1 {
		t.Fatalf("expected second read served from cache, got %d/%d storage calls", cart.calls, wish.calls)
	}

	_ = c.Invalidate(ctx, "u1")
	cart.n = 0
	got, _ = svc.Counts(ctx, "u1")
	if got.CartItems != 0 {
		t.Fatalf("expected fresh count after invalidate, got %+v", got)
	}
}

func TestCountsFallsBackOnCacheError(t *testing.T) {
	c := newMemCache()
	c.getErr = errors.New("redis down")
	svc := New(&stubCounter{n: 2}, &stubCounter{n: 0}, c, nil)
	got, err := svc.Counts(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if got.CartItems != 2 {
		t.Fatalf("expected storage count, got %+v", got)
	}
	if c.sets != 0 {
		t.Fatalf("expected no write-back without a stamp, got %d", c.sets)
	}
}

func TestCountsErrors(t *testing.T) {
	svc := New(&stubCounter{}, &stubCounter{}, nil, nil)
	if _, err := svc.Counts(context.Background(), ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	svc = New(&stubCounter{err: errors.New("boom")}, &stubCounter{}, nil, nil)
	if _, err := svc.Counts(context.Background(), "u1"); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestCountsDoesNotCacheCountsReadBeforeMutation(t *testing.T) {
	c := newMemCache()
	cart := &stubCounter{n: 3}
	wish := &stubCounter{n: 1}
	svc := New(cart, wish, c, nil)
	ctx := context.Background()

	// The cart changes and is invalidated after its old count was read.
	cart.during = func() {
		cart.n = 5
		_ = c.Invalidate(ctx, "u1")
	}
	got, err := svc.Counts(ctx, "u1")
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if got.CartItems != 3 {
		t.Fatalf("expected the count read, got %+v", got)
	}
	if _, ok := c.data["u1"]; ok {
		t.Fatalf("stale counts were cached: %+v", c.data["u1"])
	}

	cart.during = nil
	got, _ = svc.Counts(ctx, "u1")
	if got.CartItems != 5 {
		t.Fatalf("expected fresh count on next read, got %+v", got)
	}
	if c.data["u1"].CartItems != 5 {
		t.Fatalf("expected fresh counts cached, got %+v", c.data["u1"])
	}
}
