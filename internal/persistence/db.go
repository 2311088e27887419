// Package persistence provides the SQLite turn journal.
// The journal is a transcript of one session; it never restores world state.
package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a journal that lives only as long as the process.
const MemoryPath = ":memory:"

// DB wraps a SQLite connection for the turn journal.
type DB struct {
	conn *sqlx.DB
}

// Turn is one narrated step of a session.
type Turn struct {
	SessionID string    `db:"session_id"`
	Seq       int       `db:"seq"`
	Input     string    `db:"input"`
	X         int       `db:"pos_x"`
	Y         int       `db:"pos_y"`
	Z         int       `db:"pos_z"`
	Prompt    string    `db:"prompt"`
	Narration string    `db:"narration"` // Generated text, or the failure detail when Failed
	Failed    bool      `db:"-"`
	CreatedAt time.Time `db:"-"`
}

// turnRow is the on-disk shape of a Turn.
type turnRow struct {
	Turn
	FailedInt   int   `db:"failed"`
	CreatedUnix int64 `db:"created_unix"`
}

// Open opens or creates a SQLite database at the given path.
// Use MemoryPath for a journal that disappears on exit.
func Open(path string) (*DB, error) {
	dsn := path
	if path != MemoryPath {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Every new connection to :memory: is a fresh empty database.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		input TEXT NOT NULL,
		pos_x INTEGER NOT NULL,
		pos_y INTEGER NOT NULL,
		pos_z INTEGER NOT NULL,
		prompt TEXT NOT NULL,
		narration TEXT NOT NULL,
		failed INTEGER NOT NULL,
		created_unix INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS session_meta (
		session_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (session_id, key)
	);

	CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, seq);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordTurn appends a turn to the journal.
func (db *DB) RecordTurn(ctx context.Context, t Turn) error {
	failed := 0
	if t.Failed {
		failed = 1
	}
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := db.conn.ExecContext(ctx, `INSERT INTO turns
		(session_id, seq, input, pos_x, pos_y, pos_z, prompt, narration, failed, created_unix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.SessionID, t.Seq, t.Input, t.X, t.Y, t.Z,
		t.Prompt, t.Narration, failed, created.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert turn %d: %w", t.Seq, err)
	}
	return nil
}

// RecentTurns returns the most recent N turns of a session, newest first.
func (db *DB) RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	var rows []turnRow
	err := db.conn.SelectContext(ctx, &rows,
		`SELECT session_id, seq, input, pos_x, pos_y, pos_z, prompt, narration, failed, created_unix
		FROM turns WHERE session_id = ? ORDER BY seq DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select turns: %w", err)
	}

	turns := make([]Turn, 0, len(rows))
	for _, r := range rows {
		t := r.Turn
		t.Failed = r.FailedInt != 0
		t.CreatedAt = time.Unix(0, r.CreatedUnix)
		turns = append(turns, t)
	}
	return turns, nil
}

// CountTurns returns how many turns a session has recorded.
func (db *DB) CountTurns(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := db.conn.GetContext(ctx, &n, "SELECT COUNT(*) FROM turns WHERE session_id = ?", sessionID)
	return n, err
}

// SaveMeta stores a key-value pair for a session.
func (db *DB) SaveMeta(ctx context.Context, sessionID, key, value string) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT OR REPLACE INTO session_meta (session_id, key, value) VALUES (?, ?, ?)",
		sessionID, key, value,
	)
	return err
}

// GetMeta retrieves a session metadata value.
func (db *DB) GetMeta(ctx context.Context, sessionID, key string) (string, error) {
	var value string
	err := db.conn.GetContext(ctx, &value,
		"SELECT value FROM session_meta WHERE session_id = ? AND key = ?", sessionID, key)
	return value, err
}

// StartSession records who is playing what, once per run.
func (db *DB) StartSession(ctx context.Context, sessionID string, meta map[string]string) error {
	for k, v := range meta {
		if err := db.SaveMeta(ctx, sessionID, k, v); err != nil {
			return fmt.Errorf("save meta %s: %w", k, err)
		}
	}
	slog.Debug("journal session started", "session", sessionID, "keys", len(meta))
	return nil
}
