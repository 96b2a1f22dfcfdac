package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/inkrelay/inkrelay-server/internal/store"
)

func newTestArchive(t *testing.T) *SQLiteArchive {
	t.Helper()

	archive, err := New(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	t.Cleanup(func() { archive.Close() })
	return archive
}

func TestArchiveClearAndRecentClears(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	for i, events := range []string{`[{"ToX":1}]`, `[{"ToX":2}]`} {
		err := archive.ArchiveClear(ctx, store.BoardSnapshot{
			RoomID:    "public",
			ClearedBy: "c1",
			Events:    []byte(events),
			ClearedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("archive clear %d: %v", i, err)
		}
	}
	err := archive.ArchiveClear(ctx, store.BoardSnapshot{
		RoomID:    "XK92LQ",
		ClearedBy: "c2",
		Events:    []byte(`[]`),
		ClearedAt: base,
	})
	if err != nil {
		t.Fatalf("archive clear other room: %v", err)
	}

	snaps, err := archive.RecentClears(ctx, "public", 10)
	if err != nil {
		t.Fatalf("recent clears: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots for public, got %d", len(snaps))
	}
	// Newest first.
	if string(snaps[0].Events) != `[{"ToX":2}]` || string(snaps[1].Events) != `[{"ToX":1}]` {
		t.Fatalf("unexpected order: %s then %s", snaps[0].Events, snaps[1].Events)
	}
	if snaps[0].ClearedBy != "c1" || snaps[0].RoomID != "public" {
		t.Fatalf("unexpected metadata: %+v", snaps[0])
	}

	limited, err := archive.RecentClears(ctx, "public", 1)
	if err != nil {
		t.Fatalf("recent clears limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
}

func TestArchiveClearCount(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	n, err := archive.ClearCount(ctx)
	if err != nil || n != 0 {
		t.Fatalf("expected empty archive, got %d (%v)", n, err)
	}

	for i := 0; i < 3; i++ {
		err := archive.ArchiveClear(ctx, store.BoardSnapshot{
			RoomID:    "public",
			ClearedBy: "c1",
			Events:    []byte(`[]`),
			ClearedAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("archive clear: %v", err)
		}
	}

	n, err = archive.ClearCount(ctx)
	if err != nil || n != 3 {
		t.Fatalf("expected 3 archived clears, got %d (%v)", n, err)
	}
}

func TestArchiveUnknownRoomIsEmpty(t *testing.T) {
	archive := newTestArchive(t)

	snaps, err := archive.RecentClears(context.Background(), "missing", 10)
	if err != nil {
		t.Fatalf("recent clears: %v", err)
	}
	if len(snaps) != 0 {
		t.Fatalf("expected no snapshots, got %d", len(snaps))
	}
}
