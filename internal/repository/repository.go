package repository

import (
	"context"

	"github.com/sakif/venue-booking/internal/model"
)

// ShowFilter narrows ListShows. Empty fields match everything.
type ShowFilter struct {
	VenueID  string
	ArtistID string
}

type VenueRepository interface {
	Create(ctx context.Context, venue *model.Venue) error
	GetByID(ctx context.Context, id string) (*model.Venue, error)
	List(ctx context.Context) ([]model.Venue, error)
	ListRecent(ctx context.Context, limit int) ([]model.Venue, error)
	Search(ctx context.Context, term string) ([]model.Venue, error)
	Update(ctx context.Context, venue *model.Venue) error
	Delete(ctx context.Context, id string) error
}

type ArtistRepository interface {
	Create(ctx context.Context, artist *model.Artist) error
	GetByID(ctx context.Context, id string) (*model.Artist, error)
	List(ctx context.Context) ([]model.Artist, error)
	ListRecent(ctx context.Context, limit int) ([]model.Artist, error)
	Search(ctx context.Context, term string) ([]model.Artist, error)
	Update(ctx context.Context, artist *model.Artist) error
	Delete(ctx context.Context, id string) error
}

type ShowRepository interface {
	Create(ctx context.Context, show *model.Show) error
	List(ctx context.Context, filter ShowFilter) ([]model.ShowListing, error)
}
