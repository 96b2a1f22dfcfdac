package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/inkrelay/inkrelay-server/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS board_clears (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id    TEXT NOT NULL,
	cleared_by TEXT NOT NULL,
	events     BLOB NOT NULL,
	cleared_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_board_clears_room ON board_clears(room_id, cleared_at DESC);
`

// SQLiteArchive implements store.Archiver on a local SQLite file.
type SQLiteArchive struct {
	db *sql.DB
}

// New opens (or creates) the archive database and applies the schema.
func New(dbPath string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteArchive{db: db}, nil
}

// ArchiveClear stores one clear-board snapshot.
func (s *SQLiteArchive) ArchiveClear(ctx context.Context, snap store.BoardSnapshot) error {
	query := `
		INSERT INTO board_clears (room_id, cleared_by, events, cleared_at)
		VALUES (?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, snap.RoomID, snap.ClearedBy, snap.Events, snap.ClearedAt); err != nil {
		return fmt.Errorf("insert board clear: %w", err)
	}
	return nil
}

// RecentClears returns the newest snapshots for a room, newest first.
func (s *SQLiteArchive) RecentClears(ctx context.Context, roomID string, limit int) ([]store.BoardSnapshot, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id, room_id, cleared_by, events, cleared_at
		FROM board_clears
		WHERE room_id = ?
		ORDER BY cleared_at DESC, id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("query board clears: %w", err)
	}
	defer rows.Close()

	var snaps []store.BoardSnapshot
	for rows.Next() {
		var snap store.BoardSnapshot
		if err := rows.Scan(&snap.ID, &snap.RoomID, &snap.ClearedBy, &snap.Events, &snap.ClearedAt); err != nil {
			return nil, fmt.Errorf("scan board clear: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate board clears: %w", err)
	}
	return snaps, nil
}

// ClearCount returns the total number of archived snapshots.
func (s *SQLiteArchive) ClearCount(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM board_clears`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count board clears: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteArchive) Close() error {
	return s.db.Close()
}
