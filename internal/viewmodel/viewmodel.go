// Package viewmodel holds the plain data handed to templates and the pure
// functions that derive it from persisted rows.
//
// Nothing here touches the database or the request. Every function that
// depends on the current time takes it as an argument, so a show's
// past/upcoming classification is decided by the caller's clock at read time
// and never stored.
package viewmodel

import (
	"time"

	"github.com/sakif/venue-booking/internal/model"
)

// ShowSlot is one entry in a detail page's past or upcoming list. The
// Counterpart fields describe the other side of the show: the artist on a
// venue page, the venue on an artist page. CounterpartPath links to it.
type ShowSlot struct {
	CounterpartID        string
	CounterpartPath      string
	CounterpartName      string
	CounterpartImageLink string
	StartTime            time.Time
}

// ShowPartition is a record's shows split around "now".
type ShowPartition struct {
	PastShows          []ShowSlot
	UpcomingShows      []ShowSlot
	PastShowsCount     int
	UpcomingShowsCount int
}

// VenueDetail is the venue page: the stored record plus its shows.
type VenueDetail struct {
	model.Venue
	ShowPartition
}

// ArtistDetail is the artist page.
type ArtistDetail struct {
	model.Artist
	ShowPartition
}

// Summary is the lightweight projection used by area listings and search.
type Summary struct {
	ID               string
	Name             string
	NumUpcomingShows int
}

// Area is one distinct (city, state) pair and the venues in it.
type Area struct {
	City   string
	State  string
	Venues []Summary
}

// SearchResult is what both search pages render.
type SearchResult struct {
	SearchTerm string
	Count      int
	Data       []Summary
}

// ShowRow is one line of the all-shows page.
type ShowRow struct {
	VenueID         string
	VenueName       string
	ArtistID        string
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// Home is the landing page.
type Home struct {
	RecentVenues  []Summary
	RecentArtists []Summary
}
