package form

import (
	"net/url"
	"time"

	"github.com/sakif/venue-booking/internal/model"
)

// ShowForm schedules an artist at a venue.
type ShowForm struct {
	ArtistID  string `form:"artist_id" validate:"required"`
	VenueID   string `form:"venue_id" validate:"required"`
	StartTime string `form:"start_time" validate:"required,starttime"`
}

// NewShowForm returns the blank form with start time pre-filled to now.
func NewShowForm(now time.Time) ShowForm {
	return ShowForm{StartTime: now.UTC().Format(StartTimeLayout)}
}

func DecodeShow(values url.Values) ShowForm {
	var f ShowForm
	decode(&f, values)
	return f
}

func (f ShowForm) Validate() error {
	return check(f)
}

// Show builds the unsaved show. Call it only after Validate succeeded;
// an unparseable start time yields the zero time, which the store replaces
// with the creation instant.
func (f ShowForm) Show() *model.Show {
	start, _ := ParseStartTime(f.StartTime)
	return &model.Show{
		ArtistID:  f.ArtistID,
		VenueID:   f.VenueID,
		StartTime: start,
	}
}
