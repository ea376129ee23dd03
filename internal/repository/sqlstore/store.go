// Package sqlstore implements the repository interfaces on top of
// database/sql. The SQL is shared between backends; the few places where
// SQLite and Postgres disagree (placeholder syntax, how a []string column is
// stored, how a foreign-key violation is reported) go through a Dialect.
//
// Packages sqlite and postgres open the connection, run their own schema
// migration and hand the pool to New.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/venue-booking/internal/apperror"
)

// Dialect hides the differences between SQL backends.
type Dialect interface {
	// Name is used in log lines and error prefixes.
	Name() string

	// Rebind rewrites the '?' placeholders used throughout this package
	// into the backend's own syntax.
	Rebind(query string) string

	// GenresArg returns a value that database/sql can bind for a genres
	// column. GenresDest returns a scan destination that fills *dst.
	GenresArg(genres []string) any
	GenresDest(dst *[]string) any

	// IsForeignKeyViolation reports whether err came from a FOREIGN KEY
	// constraint.
	IsForeignKeyViolation(err error) bool

	// Fold wraps a SQL expression so it lower-cases all of Unicode, not
	// just ASCII. Both sides of a case-insensitive match go through it.
	Fold(expr string) string
}

// Store owns the connection pool and exposes one repository per table.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time

	Venues  *VenueRepo
	Artists *ArtistRepo
	Shows   *ShowRepo
}

// New wraps an open, migrated pool. The Store takes ownership of db and
// closes it in Close.
func New(db *sql.DB, dialect Dialect) *Store {
	s := &Store{
		db:      db,
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
	}
	s.Venues = &VenueRepo{s: s}
	s.Artists = &ArtistRepo{s: s}
	s.Shows = &ShowRepo{s: s}
	return s
}

// Dialect returns the backend in use.
func (s *Store) Dialect() Dialect { return s.dialect }

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// inTx runs fn inside a single transaction.
//
// The deferred Rollback is the release guarantee: after a successful Commit
// it is a no-op (sql.ErrTxDone), and on every other exit (fn error, commit
// error, panic) it discards the transaction and returns the connection to the
// pool. Errors that are not already application errors come back as
// apperror.Persistence so callers can tell a failed write from bad input.
func (s *Store) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Persistence(op, fmt.Errorf("sqlstore: %s: begin: %w", op, err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperror.Persistence(op, fmt.Errorf("sqlstore: %s: %w", op, err))
	}

	if err := tx.Commit(); err != nil {
		return apperror.Persistence(op, fmt.Errorf("sqlstore: %s: commit: %w", op, err))
	}
	return nil
}

// q rebinds a query for the active dialect.
func (s *Store) q(query string) string {
	return s.dialect.Rebind(query)
}

// likePattern turns a user search term into a LIKE pattern that matches the
// term literally anywhere in the value. Used with ESCAPE '\'.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// nonNil keeps the "genres is never null" invariant on the Go side.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// checkAffected turns a zero-row UPDATE/DELETE into a NotFound error.
func checkAffected(res sql.Result, resource, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
