package form

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/venue-booking/internal/apperror"
	"github.com/sakif/venue-booking/internal/model"
)

func validVenueValues() url.Values {
	return url.Values{
		"name":                {"The Musical Hop"},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"address":             {"1015 Folsom Street"},
		"phone":               {"123-123-1234"},
		"genres":              {"Jazz", "Reggae"},
		"website_link":        {"https://www.themusicalhop.com"},
		"facebook_link":       {"https://www.facebook.com/TheMusicalHop"},
		"image_link":          {"https://images.example.com/hop.jpg"},
		"seeking_talent":      {"y"},
		"seeking_description": {"We are on the lookout for a local artist."},
	}
}

// fieldErrors asserts err is a ValidationErrors and returns its fields.
func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	var verrs *apperror.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected *ValidationErrors, got %T", err)
	return verrs.Fields
}

func TestVenueForm_Valid(t *testing.T) {
	f := DecodeVenue(validVenueValues())
	require.NoError(t, f.Validate())

	v := f.Venue()
	assert.Equal(t, "The Musical Hop", v.Name)
	assert.Equal(t, []string{"Jazz", "Reggae"}, v.Genres)
	assert.Equal(t, "https://www.themusicalhop.com", v.Website)
	assert.True(t, v.SeekingTalent)
	assert.Empty(t, v.ID)
}

func TestVenueForm_TrimsInput(t *testing.T) {
	values := validVenueValues()
	values.Set("name", "   Park Square  ")
	values["genres"] = []string{" Jazz ", "", "  "}

	f := DecodeVenue(values)
	assert.Equal(t, "Park Square", f.Name)
	assert.Equal(t, []string{"Jazz"}, f.Genres)
}

func TestVenueForm_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(url.Values)
		field string
	}{
		{"missing name", func(v url.Values) { v.Del("name") }, "name"},
		{"blank name", func(v url.Values) { v.Set("name", "   ") }, "name"},
		{"missing city", func(v url.Values) { v.Del("city") }, "city"},
		{"missing address", func(v url.Values) { v.Del("address") }, "address"},
		{"missing phone", func(v url.Values) { v.Del("phone") }, "phone"},
		{"missing state", func(v url.Values) { v.Del("state") }, "state"},
		{"unknown state", func(v url.Values) { v.Set("state", "ZZ") }, "state"},
		{"lowercase state", func(v url.Values) { v.Set("state", "ca") }, "state"},
		{"unknown genre", func(v url.Values) { v["genres"] = []string{"Jazz", "Polka"} }, "genres"},
		{"bad website", func(v url.Values) { v.Set("website_link", "not a url") }, "website_link"},
		{"ftp image", func(v url.Values) { v.Set("image_link", "ftp://example.com/a.png") }, "image_link"},
		{"bad facebook", func(v url.Values) { v.Set("facebook_link", "facebook") }, "facebook_link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validVenueValues()
			tt.edit(values)

			fields := fieldErrors(t, DecodeVenue(values).Validate())
			assert.Contains(t, fields, tt.field)
			assert.Len(t, fields, 1, "only %s should fail: %v", tt.field, fields)
		})
	}
}

func TestVenueForm_CollectsEveryField(t *testing.T) {
	fields := fieldErrors(t, DecodeVenue(url.Values{}).Validate())

	for _, name := range []string{"name", "city", "state", "address", "phone"} {
		assert.Equal(t, "This field is required.", fields[name], name)
	}
	assert.NotContains(t, fields, "website_link")
	assert.NotContains(t, fields, "genres")
}

func TestVenueForm_GenreMessageNamesValue(t *testing.T) {
	values := validVenueValues()
	values["genres"] = []string{"Polka"}

	fields := fieldErrors(t, DecodeVenue(values).Validate())
	assert.Equal(t, `"Polka" is not a valid genre.`, fields["genres"])
}

func TestVenueForm_RoundTrip(t *testing.T) {
	stored := model.Venue{
		ID:            "v1",
		Name:          "The Dueling Pianos Bar",
		City:          "New York",
		State:         "NY",
		Address:       "335 Delancey Street",
		Phone:         "914-003-1132",
		Genres:        []string{"Classical", "R&B", "Hip-Hop"},
		Website:       "https://www.theduelingpianos.com",
		SeekingTalent: false,
	}

	f := FromVenue(stored)
	assert.True(t, f.HasGenre("R&B"))
	assert.False(t, f.HasGenre("Jazz"))
	require.NoError(t, f.Validate())

	f.Name = "Dueling Pianos"
	updated := stored
	f.Apply(&updated)
	assert.Equal(t, "v1", updated.ID)
	assert.Equal(t, "Dueling Pianos", updated.Name)
	assert.Equal(t, stored.Genres, updated.Genres)

	// The form owns its own genre slice.
	f.Genres[0] = "Other"
	assert.Equal(t, "Classical", stored.Genres[0])
}

func TestDecode_CheckboxValues(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"y", true},
		{"on", true},
		{"TRUE", true},
		{"1", true},
		{"", false},
		{"n", false},
		{"off", false},
	}
	for _, tt := range tests {
		values := url.Values{}
		if tt.value != "" {
			values.Set("seeking_venue", tt.value)
		}
		assert.Equal(t, tt.want, DecodeArtist(values).SeekingVenue, "value %q", tt.value)
	}
}

func TestArtistForm(t *testing.T) {
	values := url.Values{
		"name":   {"Guns N Petals"},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"phone":  {"326-123-5000"},
		"genres": {"Rock n Roll"},
	}

	f := DecodeArtist(values)
	require.NoError(t, f.Validate())
	a := f.Artist()
	assert.Equal(t, "Guns N Petals", a.Name)
	assert.False(t, a.SeekingVenue)
	assert.Equal(t, []string{"Rock n Roll"}, a.Genres)

	back := FromArtist(*a)
	assert.Equal(t, f, back)

	values.Del("phone")
	fields := fieldErrors(t, DecodeArtist(values).Validate())
	assert.Contains(t, fields, "phone")
	assert.NotContains(t, fields, "address")
}

func TestShowForm(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		wantField string
		wantStart time.Time
	}{
		{
			name:      "seconds layout",
			values:    url.Values{"artist_id": {"a1"}, "venue_id": {"v1"}, "start_time": {"2035-04-01 20:00:00"}},
			wantStart: time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC),
		},
		{
			name:      "datetime-local",
			values:    url.Values{"artist_id": {"a1"}, "venue_id": {"v1"}, "start_time": {"2035-04-01T20:30"}},
			wantStart: time.Date(2035, 4, 1, 20, 30, 0, 0, time.UTC),
		},
		{
			name:      "rfc3339 with zone",
			values:    url.Values{"artist_id": {"a1"}, "venue_id": {"v1"}, "start_time": {"2035-04-01T20:00:00+02:00"}},
			wantStart: time.Date(2035, 4, 1, 18, 0, 0, 0, time.UTC),
		},
		{
			name:      "missing artist",
			values:    url.Values{"venue_id": {"v1"}, "start_time": {"2035-04-01 20:00:00"}},
			wantField: "artist_id",
		},
		{
			name:      "missing venue",
			values:    url.Values{"artist_id": {"a1"}, "start_time": {"2035-04-01 20:00:00"}},
			wantField: "venue_id",
		},
		{
			name:      "missing start",
			values:    url.Values{"artist_id": {"a1"}, "venue_id": {"v1"}},
			wantField: "start_time",
		},
		{
			name:      "garbage start",
			values:    url.Values{"artist_id": {"a1"}, "venue_id": {"v1"}, "start_time": {"next tuesday"}},
			wantField: "start_time",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DecodeShow(tt.values)
			err := f.Validate()
			if tt.wantField != "" {
				assert.Contains(t, fieldErrors(t, err), tt.wantField)
				return
			}
			require.NoError(t, err)
			s := f.Show()
			assert.Equal(t, "a1", s.ArtistID)
			assert.Equal(t, "v1", s.VenueID)
			assert.True(t, tt.wantStart.Equal(s.StartTime), "got %v", s.StartTime)
		})
	}
}

func TestNewShowForm_DefaultsToNow(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 5, 7, 0, time.UTC)
	f := NewShowForm(now)
	assert.Equal(t, "2026-10-18 09:05:07", f.StartTime)

	parsed, err := ParseStartTime(f.StartTime)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(now))
}

func TestDecode_IgnoresUnrelatedKeys(t *testing.T) {
	values := validVenueValues()
	values.Set("search_term", "hop")
	values.Set("submit", "Save venue")
	values.Set("seeking_venue", "y")

	f := DecodeVenue(values)
	assert.Equal(t, "The Musical Hop", f.Name)
	require.NoError(t, f.Validate())
}

func TestDecodeShow_TrimsValues(t *testing.T) {
	f := DecodeShow(url.Values{
		"artist_id":  {"  a1 "},
		"venue_id":   {"v1\t"},
		"start_time": {" 2035-04-01 20:00:00 "},
	})

	assert.Equal(t, ShowForm{ArtistID: "a1", VenueID: "v1", StartTime: "2035-04-01 20:00:00"}, f)
}

func TestDecodeArtist_NoGenresIsEmptyNotNil(t *testing.T) {
	f := DecodeArtist(url.Values{"name": {"Matt Quevedo"}})
	assert.NotNil(t, f.Genres)
	assert.Empty(t, f.Genres)
}
