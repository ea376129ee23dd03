package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/venue-booking/internal/apperror"
	"github.com/sakif/venue-booking/internal/form"
	"github.com/sakif/venue-booking/internal/model"
	"github.com/sakif/venue-booking/internal/repository"
	"github.com/sakif/venue-booking/internal/viewmodel"
)

// ArtistService mirrors VenueService for performers.
type ArtistService struct {
	base
	artists repository.ArtistRepository
	shows   repository.ShowRepository
}

func NewArtistService(artists repository.ArtistRepository, shows repository.ShowRepository, logger *slog.Logger, clock Clock) *ArtistService {
	return &ArtistService{
		base:    base{logger: logger, clock: clock},
		artists: artists,
		shows:   shows,
	}
}

func (s *ArtistService) Create(ctx context.Context, f form.ArtistForm) (*model.Artist, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	artist := f.Artist()
	if err := s.artists.Create(ctx, artist); err != nil {
		s.logger.Error("failed to create artist",
			slog.String("name", artist.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating artist: %w", err)
	}

	s.logger.Info("artist created",
		slog.String("id", artist.ID),
		slog.String("name", artist.Name),
	)
	return artist, nil
}

func (s *ArtistService) Get(ctx context.Context, id string) (*model.Artist, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.NotFound("artist", id)
	}
	return s.artists.GetByID(ctx, id)
}

func (s *ArtistService) Detail(ctx context.Context, id string) (*viewmodel.ArtistDetail, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	shows, err := s.shows.List(ctx, repository.ShowFilter{ArtistID: artist.ID})
	if err != nil {
		return nil, fmt.Errorf("listing shows for artist %s: %w", artist.ID, err)
	}

	return &viewmodel.ArtistDetail{
		Artist:        *artist,
		ShowPartition: viewmodel.PartitionArtistShows(shows, s.clock.now()),
	}, nil
}

// List returns every artist by name.
func (s *ArtistService) List(ctx context.Context) ([]viewmodel.Summary, error) {
	artists, err := s.artists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing artists: %w", err)
	}
	upcoming, err := s.upcomingByArtist(ctx)
	if err != nil {
		return nil, err
	}
	return viewmodel.ArtistSummaries(artists, upcoming), nil
}

// Search uses the same case-insensitive substring match as venue search.
func (s *ArtistService) Search(ctx context.Context, term string) (viewmodel.SearchResult, error) {
	artists, err := s.artists.Search(ctx, term)
	if err != nil {
		return viewmodel.SearchResult{}, fmt.Errorf("searching artists: %w", err)
	}
	upcoming, err := s.upcomingByArtist(ctx)
	if err != nil {
		return viewmodel.SearchResult{}, err
	}

	data := viewmodel.ArtistSummaries(artists, upcoming)
	return viewmodel.SearchResult{SearchTerm: term, Count: len(data), Data: data}, nil
}

func (s *ArtistService) Recent(ctx context.Context) ([]viewmodel.Summary, error) {
	artists, err := s.artists.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("listing recent artists: %w", err)
	}
	upcoming, err := s.upcomingByArtist(ctx)
	if err != nil {
		return nil, err
	}
	return viewmodel.ArtistSummaries(artists, upcoming), nil
}

func (s *ArtistService) Update(ctx context.Context, id string, f form.ArtistForm) (*model.Artist, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	f.Apply(artist)
	if err := s.artists.Update(ctx, artist); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update artist",
			slog.String("id", artist.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating artist: %w", err)
	}

	s.logger.Info("artist updated",
		slog.String("id", artist.ID),
		slog.String("name", artist.Name),
	)
	return artist, nil
}

func (s *ArtistService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.NotFound("artist", id)
	}

	if err := s.artists.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete artist",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting artist: %w", err)
	}

	s.logger.Info("artist deleted", slog.String("id", id))
	return nil
}

func (s *ArtistService) upcomingByArtist(ctx context.Context) (map[string]int, error) {
	shows, err := s.shows.List(ctx, repository.ShowFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing shows: %w", err)
	}
	return viewmodel.CountUpcoming(shows, s.clock.now(), viewmodel.ByArtist), nil
}
