package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/sakif/venue-booking/internal/apperror"
	"github.com/sakif/venue-booking/internal/form"
)

func TestShowNewForm_StartsNow(t *testing.T) {
	env := newTestEnv(t)

	f := env.showSvc.NewForm()
	if f.StartTime != testNow.Format(form.StartTimeLayout) {
		t.Errorf("StartTime = %q, want %q", f.StartTime, testNow.Format(form.StartTimeLayout))
	}
}

func TestShowCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	venue := mustCreateVenue(t, env, "The Musical Hop", "San Francisco", "CA")
	artist, _ := env.artistSvc.Create(ctx, artistForm("Guns N Petals"))

	tests := []struct {
		name    string
		values  url.Values
		wantErr error
	}{
		{
			name:   "valid",
			values: url.Values{"artist_id": {artist.ID}, "venue_id": {venue.ID}, "start_time": {"2035-04-01 20:00:00"}},
		},
		{
			name:    "missing start time",
			values:  url.Values{"artist_id": {artist.ID}, "venue_id": {venue.ID}},
			wantErr: apperror.ErrValidation,
		},
		{
			name:    "unknown artist",
			values:  url.Values{"artist_id": {"ghost"}, "venue_id": {venue.ID}, "start_time": {"2035-04-01 20:00:00"}},
			wantErr: apperror.ErrReference,
		},
		{
			name:    "unknown venue",
			values:  url.Values{"artist_id": {artist.ID}, "venue_id": {"ghost"}, "start_time": {"2035-04-01 20:00:00"}},
			wantErr: apperror.ErrReference,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(env.shows.shows)
			show, err := env.showSvc.Create(ctx, form.DecodeShow(tt.values))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				if len(env.shows.shows) != before {
					t.Error("a rejected show was stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
			if !show.StartTime.Equal(want) {
				t.Errorf("StartTime = %v, want %v", show.StartTime, want)
			}
		})
	}
}

func TestShowList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	venue := mustCreateVenue(t, env, "The Musical Hop", "San Francisco", "CA")
	artist, _ := env.artistSvc.Create(ctx, artistForm("Guns N Petals"))
	mustSchedule(t, env, artist.ID, venue.ID, testNow.Add(time.Hour))

	rows, err := env.showSvc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].VenueName != "The Musical Hop" || rows[0].ArtistName != "Guns N Petals" {
		t.Errorf("row = %+v, want denormalised names", rows[0])
	}

	env.shows.failWith = errDatabaseDown
	if _, err := env.showSvc.List(ctx); !errors.Is(err, apperror.ErrPersistence) {
		t.Errorf("error = %v, want ErrPersistence", err)
	}
}
