// Package iocollections keeps collections in a SQLite database.
package iocollections

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/gnames/tsbrowse/pkg/collections"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// schemaVersion is increased whenever tables change.
const schemaVersion = 1

const ddl = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS collections (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL,
	imported_at   TEXT,
	imported_from TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS collection_standards (
	collection_id TEXT NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
	code          TEXT NOT NULL,
	position      INTEGER NOT NULL,
	PRIMARY KEY (collection_id, code)
);
CREATE INDEX IF NOT EXISTS idx_collection_standards_code
	ON collection_standards (code);
`

type store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the collections database at path and makes
// sure the default collection exists. Use ":memory:" for a temporary
// store.
func Open(path string) (collections.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	// one connection keeps pragmas and :memory: databases consistent
	db.SetMaxOpenConns(1)

	res := &store{db: db, now: time.Now}
	if err = res.init(context.Background()); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}
	slog.Info("Opened collections database", "path", path)
	return res, nil
}

func (s *store) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return err
	}

	var version int
	err := s.db.QueryRowContext(ctx,
		"SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	case version != schemaVersion:
		slog.Warn("Unexpected collections schema version",
			"version", version, "expected", schemaVersion)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO collections (id, name, description, created_at)
VALUES (?, ?, ?, ?)`,
		collections.DefaultID,
		collections.DefaultName,
		collections.DefaultDescription,
		formatTime(s.now()),
	)
	return err
}

// Close implements collections.Store.
func (s *store) Close() error {
	return s.db.Close()
}

func newID() string {
	return "col-" + uuid.NewString()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
