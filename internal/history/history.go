// Package history keeps a local log of executed queries and their raw
// responses. It is an audit trail, not a cache: queries are never answered
// from it, but the raw text of past replies stays inspectable after the
// session ends.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one executed query.
type Record struct {
	ID         int64
	Query      string
	Raw        string
	OK         bool
	Reason     string // recovery failure reason, empty when OK
	EventCount int
	CreatedAt  time.Time
}

type Log struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	l := &Log{readDB: readDB, writeDB: writeDB}
	if err := l.init(); err != nil {
		l.Close()
		return nil, err
	}
	return l, nil
}

func (l *Log) init() error {
	_, err := l.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS queries (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			query       TEXT NOT NULL,
			raw         TEXT NOT NULL,
			ok          INTEGER NOT NULL,
			reason      TEXT NOT NULL DEFAULT '',
			event_count INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_queries_created ON queries(created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (l *Log) Close() error {
	var errs []error
	if l.readDB != nil {
		errs = append(errs, l.readDB.Close())
	}
	if l.writeDB != nil {
		errs = append(errs, l.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func (l *Log) Append(r Record) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := l.writeDB.Exec(`
		INSERT INTO queries (query, raw, ok, reason, event_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.Query, r.Raw, r.OK, r.Reason, r.EventCount, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending query record: %w", err)
	}
	return nil
}

// Recent returns the most recent records, newest first.
func (l *Log) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.readDB.Query(`
		SELECT id, query, raw, ok, reason, event_count, created_at
		FROM queries ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Query, &r.Raw, &r.OK, &r.Reason, &r.EventCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Prune deletes records older than the retention period and returns how
// many were removed.
func (l *Log) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	res, err := l.writeDB.Exec("DELETE FROM queries WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports the record count and the database file size in bytes.
func (l *Log) Stats(dbPath string) (int, int64, error) {
	var count int
	if err := l.readDB.QueryRow("SELECT COUNT(*) FROM queries").Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting records: %w", err)
	}
	fi, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, err
	}
	return count, fi.Size(), nil
}
