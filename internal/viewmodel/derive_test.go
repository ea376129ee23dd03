package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/venue-booking/internal/model"
)

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func listing(id, artistID, venueID string, start time.Time) model.ShowListing {
	return model.ShowListing{
		Show:            model.Show{ID: id, ArtistID: artistID, VenueID: venueID, StartTime: start},
		ArtistName:      "artist " + artistID,
		ArtistImageLink: "https://img.example.com/" + artistID,
		VenueName:       "venue " + venueID,
		VenueImageLink:  "https://img.example.com/" + venueID,
	}
}

func TestIsUpcoming(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"one nanosecond ahead", now.Add(time.Nanosecond), true},
		{"far future", now.AddDate(1, 0, 0), true},
		{"exactly now is past", now, false},
		{"yesterday", now.AddDate(0, 0, -1), false},
		{"same instant other zone", now.In(time.FixedZone("X", 3600)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUpcoming(tt.start, now))
		})
	}
}

func TestPartitionVenueShows(t *testing.T) {
	shows := []model.ShowListing{
		listing("s3", "a2", "v1", now.Add(48*time.Hour)),
		listing("s1", "a1", "v1", now.Add(-48*time.Hour)),
		listing("s2", "a1", "v1", now.Add(time.Hour)),
		listing("s4", "a3", "v1", now),
	}

	p := PartitionVenueShows(shows, now)

	require.Len(t, p.UpcomingShows, 2)
	require.Len(t, p.PastShows, 2)
	assert.Equal(t, 2, p.UpcomingShowsCount)
	assert.Equal(t, 2, p.PastShowsCount)
	assert.Equal(t, len(shows), p.PastShowsCount+p.UpcomingShowsCount)

	// Sorted by start time inside each list.
	assert.Equal(t, "a1", p.UpcomingShows[0].CounterpartID)
	assert.Equal(t, "/artists/a1", p.UpcomingShows[0].CounterpartPath)
	assert.Equal(t, "a2", p.UpcomingShows[1].CounterpartID)
	assert.Equal(t, "a1", p.PastShows[0].CounterpartID)
	assert.Equal(t, "a3", p.PastShows[1].CounterpartID)

	// Venue pages describe the artist side.
	assert.Equal(t, "artist a2", p.UpcomingShows[1].CounterpartName)
	assert.Equal(t, "https://img.example.com/a2", p.UpcomingShows[1].CounterpartImageLink)
}

func TestPartitionArtistShows_NamesVenue(t *testing.T) {
	shows := []model.ShowListing{listing("s1", "a1", "v9", now.Add(time.Hour))}

	p := PartitionArtistShows(shows, now)

	require.Len(t, p.UpcomingShows, 1)
	assert.Equal(t, "v9", p.UpcomingShows[0].CounterpartID)
	assert.Equal(t, "/venues/v9", p.UpcomingShows[0].CounterpartPath)
	assert.Equal(t, "venue v9", p.UpcomingShows[0].CounterpartName)
	assert.Empty(t, p.PastShows)
	assert.NotNil(t, p.PastShows)
}

func TestPartition_DoesNotReorderInput(t *testing.T) {
	shows := []model.ShowListing{
		listing("b", "a1", "v1", now.Add(2*time.Hour)),
		listing("a", "a1", "v1", now.Add(time.Hour)),
	}
	PartitionVenueShows(shows, now)
	assert.Equal(t, "b", shows[0].ID)
}

func TestPartition_Empty(t *testing.T) {
	p := PartitionVenueShows(nil, now)
	assert.Equal(t, 0, p.PastShowsCount)
	assert.Equal(t, 0, p.UpcomingShowsCount)
	assert.NotNil(t, p.UpcomingShows)
}

func TestCountUpcoming(t *testing.T) {
	shows := []model.ShowListing{
		listing("s1", "a1", "v1", now.Add(time.Hour)),
		listing("s2", "a1", "v1", now.Add(2*time.Hour)),
		listing("s3", "a2", "v1", now.Add(-time.Hour)),
		listing("s4", "a2", "v2", now.Add(time.Hour)),
	}

	byVenue := CountUpcoming(shows, now, ByVenue)
	assert.Equal(t, 2, byVenue["v1"])
	assert.Equal(t, 1, byVenue["v2"])
	assert.Equal(t, 0, byVenue["v3"])

	byArtist := CountUpcoming(shows, now, ByArtist)
	assert.Equal(t, 2, byArtist["a1"])
	assert.Equal(t, 1, byArtist["a2"])
}

func TestGroupByArea(t *testing.T) {
	venues := []model.Venue{
		{ID: "v1", Name: "The Musical Hop", City: "San Francisco", State: "CA"},
		{ID: "v2", Name: "The Dueling Pianos Bar", City: "New York", State: "NY"},
		{ID: "v3", Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA"},
		{ID: "v4", Name: "Springfield Hall", City: "Springfield", State: "IL"},
		{ID: "v5", Name: "Springfield Arena", City: "Springfield", State: "MO"},
	}
	upcoming := map[string]int{"v1": 3, "v3": 1}

	areas := GroupByArea(venues, upcoming)

	require.Len(t, areas, 4)
	assert.Equal(t, Area{City: "San Francisco", State: "CA", Venues: []Summary{
		{ID: "v3", Name: "Park Square Live Music & Coffee", NumUpcomingShows: 1},
		{ID: "v1", Name: "The Musical Hop", NumUpcomingShows: 3},
	}}, areas[0])
	assert.Equal(t, "IL", areas[1].State)
	assert.Equal(t, "MO", areas[2].State)
	assert.Equal(t, "NY", areas[3].State)

	// Same city name in two states stays two areas.
	assert.Len(t, areas[1].Venues, 1)
	assert.Len(t, areas[2].Venues, 1)
	assert.Equal(t, 0, areas[3].Venues[0].NumUpcomingShows)
}

func TestGroupByArea_NoVenues(t *testing.T) {
	areas := GroupByArea(nil, nil)
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}

func TestSummariesAndShowRows(t *testing.T) {
	artists := []model.Artist{{ID: "a1", Name: "Guns N Petals"}}
	got := ArtistSummaries(artists, map[string]int{"a1": 2})
	assert.Equal(t, []Summary{{ID: "a1", Name: "Guns N Petals", NumUpcomingShows: 2}}, got)

	rows := ShowRows([]model.ShowListing{listing("s1", "a1", "v1", now)})
	require.Len(t, rows, 1)
	assert.Equal(t, "venue v1", rows[0].VenueName)
	assert.Equal(t, "artist a1", rows[0].ArtistName)
	assert.True(t, rows[0].StartTime.Equal(now))
}
