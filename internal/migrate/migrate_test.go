package migrate_test

import (
	"context"
	"testing"

	"github.com/danrawss/techtrove/internal/migrate"
	"github.com/danrawss/techtrove/internal/testdb"
)

func TestApplyReportsVersion(t *testing.T) {
	pool := testdb.Pool(t)
	ctx := context.Background()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("second Apply should be a no-op: %v", err)
	}
	version, dirty, ok, err := migrate.Version(ctx, pool)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if !ok || dirty || version != 1 {
		t.Fatalf("expected clean version 1, got version=%d dirty=%v ok=%v", version, dirty, ok)
	}
}

func TestRollbackRejectsNonPositiveSteps(t *testing.T) {
	if err := migrate.Rollback(context.Background(), nil, 0); err == nil {
		t.Fatalf("expected error for zero steps")
	}
}
