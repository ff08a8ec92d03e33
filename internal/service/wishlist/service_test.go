package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/danrawss/techtrove/internal/domain"
)

type memRepo struct {
	known   map[int64]domain.Product
	entries map[string][]int64
	addErr  error
}

func newMemRepo() *memRepo {
	return &memRepo{
		known: map[int64]domain.Product{
			1: {ID: 1, Name: "iPhone 15"},
			2: {ID: 2, Name: "Galaxy S24"},
		},
		entries: map[string][]int64{},
	}
}

func (m *memRepo) Add(_ context.Context, userID string, id int64) error {
	if m.addErr != nil {
		return m.addErr
	}
	if _, ok := m.known[id]; !ok {
		return domain.ErrNotFound
	}
	for _, have := range m.entries[userID] {
		if have == id {
			return nil
		}
	}
	m.entries[userID] = append(m.entries[userID], id)
	return nil
}

func (m *memRepo) Remove(_ context.Context, userID string, id int64) error {
	ids := m.entries[userID]
	for i, have := range ids {
		if have == id {
			m.entries[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memRepo) List(_ context.Context, userID string) ([]domain.WishlistEntry, error) {
	var out []domain.WishlistEntry
	for _, id := range m.entries[userID] {
		out = append(out, domain.WishlistEntry{UserID: userID, ProductID: id, Product: m.known[id]})
	}
	return out, nil
}

func (m *memRepo) Count(_ context.Context, userID string) (int, error) {
	return len(m.entries[userID]), nil
}

type stubInvalidator struct{ calls int }

func (s *stubInvalidator) Invalidate(context.Context, string) error {
	s.calls++
	return nil
}

func TestAddIsIdempotent(t *testing.T) {
	inv := &stubInvalidator{}
	svc := New(newMemRepo(), inv, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		n, err := svc.Add(ctx, "u1", 1)
		if err != nil {
			t.Fatalf("add #%d: %v", i, err)
		}
		if n != 1 {
			t.Fatalf("expected count 1, got %d", n)
		}
	}
	if inv.calls != 2 {
		t.Fatalf("expected 2 invalidations, got %d", inv.calls)
	}
}

func TestAddErrors(t *testing.T) {
	svc := New(newMemRepo(), nil, nil)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "", 1); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.Add(ctx, "u1", 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := svc.Add(ctx, "u1", 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	repo := newMemRepo()
	repo.addErr = errors.New("connection reset")
	svc = New(repo, nil, nil)
	if _, err := svc.Add(ctx, "u1", 1); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestRemoveAndList(t *testing.T) {
	svc := New(newMemRepo(), nil, nil)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "u1", 1); err != nil {
		t.Fatalf("add 1: %v", err)
	}
	if _, err := svc.Add(ctx, "u1", 2); err != nil {
		t.Fatalf("add 2: %v", err)
	}
	n, err := svc.Remove(ctx, "u1", 1)
	if err != nil || n != 1 {
		t.Fatalf("remove: n=%d err=%v", n, err)
	}
	n, err = svc.Remove(ctx, "u1", 1)
	if err != nil || n != 1 {
		t.Fatalf("second remove: n=%d err=%v", n, err)
	}

	entries, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Product.Name != "Galaxy S24" {
		t.Fatalf("unexpected wishlist %+v", entries)
	}

	empty, err := svc.List(ctx, "u2")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %v %v", empty, err)
	}
}
