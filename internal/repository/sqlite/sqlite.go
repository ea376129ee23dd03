// Package sqlite opens the embedded SQLite backend for the booking directory.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite, so the binary builds without a C
// toolchain and tests can use an in-memory database with no setup.
//
// The SQL itself lives in package sqlstore; this package owns the parts that
// are specific to SQLite: the DSN, connection pool sizing, PRAGMAs, the
// schema, and the Dialect.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/sakif/venue-booking/internal/repository/sqlstore"
)

// Open creates (or reuses) the database at dbPath, applies the schema and
// returns a ready Store.
//
// dbPath examples:
//   - "data/venues.db" → file-based database (persistent)
//   - ":memory:"       → in-memory database (tests; lost on close)
func Open(dbPath string) (*sqlstore.Store, error) {
	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every connection to ":memory:" is a separate, empty database, so the
	// pool must never grow past one connection.
	if isMemory(dbPath) {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers run while a write transaction is open. It has no
	// meaning for an in-memory database.
	if !isMemory(dbPath) {
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
		}
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return sqlstore.New(conn, Dialect{}), nil
}

// dsn adds per-connection PRAGMAs. Foreign keys are OFF by default in SQLite
// and the setting does not persist, so it goes in the DSN where the driver
// applies it to every new connection.
//
// _txlock=immediate makes every transaction BEGIN IMMEDIATE. A deferred
// transaction that reads before it writes (show creation checks both
// references first) has to upgrade its lock, and in WAL mode a contended
// upgrade fails with SQLITE_BUSY at once instead of waiting out
// busy_timeout. Taking the write lock at BEGIN makes writers queue.
func dsn(dbPath string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
	if isMemory(dbPath) {
		return "file::memory:?" + pragmas
	}
	if strings.Contains(dbPath, "?") {
		return dbPath + "&" + pragmas
	}
	return "file:" + dbPath + "?" + pragmas
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}

// migrate creates the schema. CREATE ... IF NOT EXISTS keeps it idempotent.
//
// genres is a JSON array stored as TEXT; see Dialect.GenresArg.
func migrate(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS venues (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			genres              TEXT NOT NULL DEFAULT '[]',
			address             TEXT NOT NULL DEFAULT '',
			city                TEXT NOT NULL DEFAULT '',
			state               TEXT NOT NULL DEFAULT '',
			phone               TEXT NOT NULL DEFAULT '',
			website             TEXT NOT NULL DEFAULT '',
			facebook_link       TEXT NOT NULL DEFAULT '',
			seeking_talent      BOOLEAN NOT NULL DEFAULT 0,
			seeking_description TEXT NOT NULL DEFAULT '',
			image_link          TEXT NOT NULL DEFAULT '',
			created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_venues_area ON venues(state, city);
	`)
	if err != nil {
		return fmt.Errorf("creating venues table: %w", err)
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS artists (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			genres              TEXT NOT NULL DEFAULT '[]',
			city                TEXT NOT NULL DEFAULT '',
			state               TEXT NOT NULL DEFAULT '',
			phone               TEXT NOT NULL DEFAULT '',
			website             TEXT NOT NULL DEFAULT '',
			facebook_link       TEXT NOT NULL DEFAULT '',
			seeking_venue       BOOLEAN NOT NULL DEFAULT 0,
			seeking_description TEXT NOT NULL DEFAULT '',
			image_link          TEXT NOT NULL DEFAULT '',
			created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating artists table: %w", err)
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS shows (
			id         TEXT PRIMARY KEY,
			artist_id  TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
			venue_id   TEXT NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
			start_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_shows_artist_id ON shows(artist_id);
		CREATE INDEX IF NOT EXISTS idx_shows_venue_id ON shows(venue_id);
	`)
	if err != nil {
		return fmt.Errorf("creating shows table: %w", err)
	}

	return nil
}
