package store

import (
	"context"
	"time"
)

// BoardSnapshot is the discarded contents of a board at the moment it was
// cleared. Events holds the log serialized as JSON; the archive never
// deserializes it back into live state.
type BoardSnapshot struct {
	ID        int64
	RoomID    string
	ClearedBy string
	Events    []byte
	ClearedAt time.Time
}

// Archiver persists clear-board snapshots for operational audit. Writes are
// best-effort: a failed archive never blocks or fails the clear itself.
type Archiver interface {
	// ArchiveClear stores one snapshot.
	ArchiveClear(ctx context.Context, snap BoardSnapshot) error

	// RecentClears returns the most recent snapshots for a room, newest first.
	RecentClears(ctx context.Context, roomID string, limit int) ([]BoardSnapshot, error)

	// ClearCount returns the total number of archived snapshots.
	ClearCount(ctx context.Context) (int64, error)

	// Close releases the underlying storage.
	Close() error
}
