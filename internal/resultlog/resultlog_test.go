package resultlog

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
)

// testLog creates a temporary result log and registers cleanup.
func testLog(t *testing.T) *Log {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.history.db")
	l, err := Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Open(%q): %v", dbPath, err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestOpenCreatesSchema(t *testing.T) {
	t.Parallel()
	l := testLog(t)

	var mode string
	if err := l.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}

	var name string
	err := l.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='results'").Scan(&name)
	if err != nil {
		t.Fatalf("results table missing: %v", err)
	}
}

func TestRecordAndRecent(t *testing.T) {
	t.Parallel()
	l := testLog(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		in := "input-" + strconv.Itoa(i)
		if err := l.Record(ctx, "prodmake", in, "ok"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := l.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Newest first.
	if entries[0].Input != "input-4" || entries[2].Input != "input-2" {
		t.Fatalf("unexpected order: %q, %q, %q", entries[0].Input, entries[1].Input, entries[2].Input)
	}
	for _, e := range entries {
		if e.Command != "prodmake" || e.Output != "ok" {
			t.Fatalf("entry = %+v", e)
		}
		if e.CreatedAt.IsZero() {
			t.Fatal("created_at not populated")
		}
	}
}

func TestRecentEmptyLog(t *testing.T) {
	t.Parallel()
	l := testLog(t)

	entries, err := l.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}
