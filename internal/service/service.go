// Package service contains the business logic of the booking directory.
//
// THE THREE LAYERS:
//
//	Handler (HTTP layer)     → decodes forms, renders templates, redirects
//	Service (Business layer) → validates, orchestrates, derives view data
//	Repository (Data layer)  → reads/writes rows
//
// Services take repository interfaces, never a concrete store, so tests can
// hand them in-memory fakes (see service_test.go) and main.go can choose
// SQLite or Postgres without touching this package.
//
// TIME:
// Whether a show is past or upcoming depends on "now". Every service holds a
// clock function instead of calling time.Now directly, so tests can pin the
// instant and the classification is always made at read time.
package service

import (
	"log/slog"
	"time"
)

// RecentLimit is how many venues and artists the home page lists.
const RecentLimit = 10

// Clock returns the current instant.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// base holds what every service needs besides its repositories.
type base struct {
	logger *slog.Logger
	clock  Clock
}
