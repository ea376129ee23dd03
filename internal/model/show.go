package model

import "time"

// Show links one artist to one venue at a start time. Both references are
// fixed once the row exists; there is no update path for a show.
type Show struct {
	ID        string    `json:"id"`
	ArtistID  string    `json:"artistId"`
	VenueID   string    `json:"venueId"`
	StartTime time.Time `json:"startTime"`
}

// ShowListing is a show joined with the display fields of both sides.
// Repositories return it for every show read so callers never issue a
// second query per row.
type ShowListing struct {
	Show
	ArtistName      string `json:"artistName"`
	ArtistImageLink string `json:"artistImageLink"`
	VenueName       string `json:"venueName"`
	VenueImageLink  string `json:"venueImageLink"`
}
