// Package postgres opens the PostgreSQL backend for the booking directory
// using github.com/lib/pq. Genres are stored in a native TEXT[] column.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/sakif/venue-booking/internal/repository/sqlstore"
)

// foreignKeyViolation is the SQLSTATE for FOREIGN KEY failures.
const foreignKeyViolation = pq.ErrorCode("23503")

// Open connects to databaseURL, applies the schema and returns a Store.
func Open(databaseURL string) (*sqlstore.Store, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: opening database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("postgres: pinging database: %w", err)
	}

	if err := migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("postgres: running migrations: %w", err)
	}

	return sqlstore.New(conn, Dialect{}), nil
}

func migrate(ctx context.Context, conn *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS venues (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			genres              TEXT[] NOT NULL DEFAULT '{}',
			address             TEXT NOT NULL DEFAULT '',
			city                TEXT NOT NULL DEFAULT '',
			state               TEXT NOT NULL DEFAULT '',
			phone               TEXT NOT NULL DEFAULT '',
			website             TEXT NOT NULL DEFAULT '',
			facebook_link       TEXT NOT NULL DEFAULT '',
			seeking_talent      BOOLEAN NOT NULL DEFAULT FALSE,
			seeking_description TEXT NOT NULL DEFAULT '',
			image_link          TEXT NOT NULL DEFAULT '',
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_venues_area ON venues(state, city)`,
		`CREATE TABLE IF NOT EXISTS artists (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			genres              TEXT[] NOT NULL DEFAULT '{}',
			city                TEXT NOT NULL DEFAULT '',
			state               TEXT NOT NULL DEFAULT '',
			phone               TEXT NOT NULL DEFAULT '',
			website             TEXT NOT NULL DEFAULT '',
			facebook_link       TEXT NOT NULL DEFAULT '',
			seeking_venue       BOOLEAN NOT NULL DEFAULT FALSE,
			seeking_description TEXT NOT NULL DEFAULT '',
			image_link          TEXT NOT NULL DEFAULT '',
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS shows (
			id         TEXT PRIMARY KEY,
			artist_id  TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
			venue_id   TEXT NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
			start_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shows_artist_id ON shows(artist_id)`,
		`CREATE INDEX IF NOT EXISTS idx_shows_venue_id ON shows(venue_id)`,
	}
	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

var _ sqlstore.Dialect = Dialect{}

// Dialect is the PostgreSQL flavour of sqlstore.Dialect.
type Dialect struct{}

func (Dialect) Name() string { return "postgres" }

// Rebind rewrites '?' placeholders to $1, $2, ... in order. Queries in
// sqlstore never contain a literal '?', so no quoting rules are needed.
func (Dialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (Dialect) GenresArg(genres []string) any {
	if genres == nil {
		genres = []string{}
	}
	return pq.Array(genres)
}

func (Dialect) GenresDest(dst *[]string) any { return pq.Array(dst) }

// Fold uses LOWER, which follows the database's Unicode locale rules.
func (Dialect) Fold(expr string) string { return "LOWER(" + expr + ")" }

func (Dialect) IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
