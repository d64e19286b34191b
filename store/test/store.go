// Package test exercises the store against a real database, covering
// behavior that lives in the drivers' SQL rather than in Go code.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/recallhq/recall/internal/profile"
	"github.com/recallhq/recall/store"
	"github.com/recallhq/recall/store/db"
)

// NewTestingStore creates a store over a fresh SQLite database in a
// per-test temp directory, with the schema applied.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	p := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "recall_test.db"),
	}

	dbDriver, err := db.NewDBDriver(p)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	ts := store.New(dbDriver, p)
	if err := ts.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := ts.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	return ts
}
