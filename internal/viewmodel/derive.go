package viewmodel

import (
	"sort"
	"time"

	"github.com/sakif/venue-booking/internal/model"
)

// IsUpcoming reports whether a show starting at start is still ahead of
// now. A show starting exactly at now is past.
func IsUpcoming(start, now time.Time) bool {
	return start.After(now)
}

// PartitionVenueShows splits a venue's shows; each slot names the artist.
func PartitionVenueShows(shows []model.ShowListing, now time.Time) ShowPartition {
	return partition(shows, now, func(s model.ShowListing) ShowSlot {
		return ShowSlot{
			CounterpartID:        s.ArtistID,
			CounterpartPath:      "/artists/" + s.ArtistID,
			CounterpartName:      s.ArtistName,
			CounterpartImageLink: s.ArtistImageLink,
			StartTime:            s.StartTime,
		}
	})
}

// PartitionArtistShows splits an artist's shows; each slot names the venue.
func PartitionArtistShows(shows []model.ShowListing, now time.Time) ShowPartition {
	return partition(shows, now, func(s model.ShowListing) ShowSlot {
		return ShowSlot{
			CounterpartID:        s.VenueID,
			CounterpartPath:      "/venues/" + s.VenueID,
			CounterpartName:      s.VenueName,
			CounterpartImageLink: s.VenueImageLink,
			StartTime:            s.StartTime,
		}
	})
}

// partition is exhaustive and disjoint: every show lands in exactly one
// list. Both lists are sorted by start time, ties broken by id.
func partition(shows []model.ShowListing, now time.Time, slot func(model.ShowListing) ShowSlot) ShowPartition {
	sorted := make([]model.ShowListing, len(shows))
	copy(sorted, shows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].StartTime.Equal(sorted[j].StartTime) {
			return sorted[i].StartTime.Before(sorted[j].StartTime)
		}
		return sorted[i].ID < sorted[j].ID
	})

	p := ShowPartition{
		PastShows:     []ShowSlot{},
		UpcomingShows: []ShowSlot{},
	}
	for _, s := range sorted {
		if IsUpcoming(s.StartTime, now) {
			p.UpcomingShows = append(p.UpcomingShows, slot(s))
		} else {
			p.PastShows = append(p.PastShows, slot(s))
		}
	}
	p.PastShowsCount = len(p.PastShows)
	p.UpcomingShowsCount = len(p.UpcomingShows)
	return p
}

// CountUpcoming tallies upcoming shows per owner, where key picks the owner
// (venue or artist id) from each show. Owners with no upcoming shows are
// absent from the map; a lookup yields 0.
func CountUpcoming(shows []model.ShowListing, now time.Time, key func(model.ShowListing) string) map[string]int {
	counts := make(map[string]int)
	for _, s := range shows {
		if IsUpcoming(s.StartTime, now) {
			counts[key(s)]++
		}
	}
	return counts
}

// ByVenue and ByArtist are the two keys CountUpcoming is used with.
func ByVenue(s model.ShowListing) string { return s.VenueID }
func ByArtist(s model.ShowListing) string { return s.ArtistID }

// GroupByArea groups venues by (city, state). Only pairs that occur in
// venues produce an Area. Areas are ordered by state then city; venues
// inside an area by name.
func GroupByArea(venues []model.Venue, upcoming map[string]int) []Area {
	type areaKey struct{ city, state string }

	index := make(map[areaKey]int)
	areas := make([]Area, 0)
	for _, v := range venues {
		k := areaKey{city: v.City, state: v.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: v.City, State: v.State, Venues: []Summary{}})
		}
		areas[i].Venues = append(areas[i].Venues, Summary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: upcoming[v.ID],
		})
	}

	sort.SliceStable(areas, func(i, j int) bool {
		if areas[i].State != areas[j].State {
			return areas[i].State < areas[j].State
		}
		return areas[i].City < areas[j].City
	})
	for _, a := range areas {
		sort.SliceStable(a.Venues, func(i, j int) bool {
			return a.Venues[i].Name < a.Venues[j].Name
		})
	}
	return areas
}

// VenueSummaries projects venues for search results and the home page.
func VenueSummaries(venues []model.Venue, upcoming map[string]int) []Summary {
	out := make([]Summary, 0, len(venues))
	for _, v := range venues {
		out = append(out, Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: upcoming[v.ID]})
	}
	return out
}

// ArtistSummaries projects artists the same way.
func ArtistSummaries(artists []model.Artist, upcoming map[string]int) []Summary {
	out := make([]Summary, 0, len(artists))
	for _, a := range artists {
		out = append(out, Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: upcoming[a.ID]})
	}
	return out
}

// ShowRows flattens joined shows for the all-shows page.
func ShowRows(shows []model.ShowListing) []ShowRow {
	out := make([]ShowRow, 0, len(shows))
	for _, s := range shows {
		out = append(out, ShowRow{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime,
		})
	}
	return out
}
