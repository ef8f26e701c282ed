package recent_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"splice/internal/recent"
	"splice/internal/testsupport"
)

func TestAddListNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRecent(t, cfg)
	ctx := context.Background()

	for _, p := range []string{"/p/a.ove", "/p/b.ove", "/p/c.ove"} {
		if err := store.Add(ctx, p); err != nil {
			t.Fatalf("Add(%s): %v", p, err)
		}
	}
	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"/p/c.ove", "/p/b.ove", "/p/a.ove"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestAddExistingMovesToFront(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRecent(t, cfg)
	ctx := context.Background()

	for _, p := range []string{"/p/a.ove", "/p/b.ove", "/p/a.ove"} {
		if err := store.Add(ctx, p); err != nil {
			t.Fatalf("Add(%s): %v", p, err)
		}
	}
	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"/p/a.ove", "/p/b.ove"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestAddTrimsToMaxEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithRecentLimit(3))
	store := testsupport.MustOpenRecent(t, cfg)
	ctx := context.Background()

	for i := range 5 {
		if err := store.Add(ctx, fmt.Sprintf("/p/%d.ove", i)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"/p/4.ove", "/p/3.ove", "/p/2.ove"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRejectsEmptyPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRecent(t, cfg)
	if err := store.Add(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestRemoveAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRecent(t, cfg)
	ctx := context.Background()

	for _, p := range []string{"/p/a.ove", "/p/b.ove"} {
		if err := store.Add(ctx, p); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := store.Remove(ctx, "/p/a.ove"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got, _ := store.List(ctx)
	if diff := cmp.Diff([]string{"/p/b.ove"}, got); diff != "" {
		t.Fatalf("after Remove (-want +got):\n%s", diff)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, _ = store.List(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty list after Clear, got %v", got)
	}
}

func TestEntriesPersistAcrossReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	store, err := recent.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Add(ctx, "/p/a.ove"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenRecent(t, cfg)
	entries, err := reopened.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "/p/a.ove" || entries[0].OpenedAt.IsZero() {
		t.Fatalf("unexpected entries after reopen: %+v", entries)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dbPath := filepath.Join(cfg.Paths.DataDir, "recent.db")

	store, err := recent.OpenPath(dbPath, 5)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if err := recent.SetSchemaVersionForTest(store, 99); err != nil {
		t.Fatalf("set schema version: %v", err)
	}
	store.Close()

	if _, err := recent.OpenPath(dbPath, 5); !errors.Is(err, recent.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenPathRejectsNonPositiveLimit(t *testing.T) {
	if _, err := recent.OpenPath(filepath.Join(t.TempDir(), "r.db"), 0); err == nil {
		t.Fatal("expected error for zero limit")
	}
}
