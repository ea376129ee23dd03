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

// VenueService handles venues and the views derived from them.
type VenueService struct {
	base
	venues repository.VenueRepository
	shows  repository.ShowRepository
}

// NewVenueService wires a VenueService. A nil clock means time.Now.
func NewVenueService(venues repository.VenueRepository, shows repository.ShowRepository, logger *slog.Logger, clock Clock) *VenueService {
	return &VenueService{
		base:   base{logger: logger, clock: clock},
		venues: venues,
		shows:  shows,
	}
}

// Create validates the form and lists a new venue. A rejected form returns
// *apperror.ValidationErrors and nothing is written.
func (s *VenueService) Create(ctx context.Context, f form.VenueForm) (*model.Venue, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	venue := f.Venue()
	if err := s.venues.Create(ctx, venue); err != nil {
		s.logger.Error("failed to create venue",
			slog.String("name", venue.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating venue: %w", err)
	}

	s.logger.Info("venue created",
		slog.String("id", venue.ID),
		slog.String("name", venue.Name),
	)
	return venue, nil
}

// Get returns the stored venue, e.g. to pre-fill the edit form.
func (s *VenueService) Get(ctx context.Context, id string) (*model.Venue, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.NotFound("venue", id)
	}
	return s.venues.GetByID(ctx, id)
}

// Detail returns the venue page: the record plus its shows split into past
// and upcoming at the current instant.
func (s *VenueService) Detail(ctx context.Context, id string) (*viewmodel.VenueDetail, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	shows, err := s.shows.List(ctx, repository.ShowFilter{VenueID: venue.ID})
	if err != nil {
		return nil, fmt.Errorf("listing shows for venue %s: %w", venue.ID, err)
	}

	return &viewmodel.VenueDetail{
		Venue:         *venue,
		ShowPartition: viewmodel.PartitionVenueShows(shows, s.clock.now()),
	}, nil
}

// Areas groups every venue by (city, state) with its upcoming show count.
func (s *VenueService) Areas(ctx context.Context) ([]viewmodel.Area, error) {
	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing venues: %w", err)
	}
	upcoming, err := s.upcomingByVenue(ctx)
	if err != nil {
		return nil, err
	}
	return viewmodel.GroupByArea(venues, upcoming), nil
}

// Summaries lists every venue with its upcoming count, in area order.
func (s *VenueService) Summaries(ctx context.Context) ([]viewmodel.Summary, error) {
	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing venues: %w", err)
	}
	upcoming, err := s.upcomingByVenue(ctx)
	if err != nil {
		return nil, err
	}
	return viewmodel.VenueSummaries(venues, upcoming), nil
}

// Search matches term against venue names, ignoring case. An empty term
// matches every venue.
func (s *VenueService) Search(ctx context.Context, term string) (viewmodel.SearchResult, error) {
	venues, err := s.venues.Search(ctx, term)
	if err != nil {
		return viewmodel.SearchResult{}, fmt.Errorf("searching venues: %w", err)
	}
	upcoming, err := s.upcomingByVenue(ctx)
	if err != nil {
		return viewmodel.SearchResult{}, err
	}

	data := viewmodel.VenueSummaries(venues, upcoming)
	return viewmodel.SearchResult{SearchTerm: term, Count: len(data), Data: data}, nil
}

// Recent lists the newest venues for the home page.
func (s *VenueService) Recent(ctx context.Context) ([]viewmodel.Summary, error) {
	venues, err := s.venues.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("listing recent venues: %w", err)
	}
	upcoming, err := s.upcomingByVenue(ctx)
	if err != nil {
		return nil, err
	}
	return viewmodel.VenueSummaries(venues, upcoming), nil
}

// Update replaces the editable fields of an existing venue. A missing venue
// is reported before the form is looked at.
func (s *VenueService) Update(ctx context.Context, id string, f form.VenueForm) (*model.Venue, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	f.Apply(venue)
	if err := s.venues.Update(ctx, venue); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update venue",
			slog.String("id", venue.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating venue: %w", err)
	}

	s.logger.Info("venue updated",
		slog.String("id", venue.ID),
		slog.String("name", venue.Name),
	)
	return venue, nil
}

// Delete removes a venue and, through the foreign key, its shows.
func (s *VenueService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.NotFound("venue", id)
	}

	if err := s.venues.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete venue",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting venue: %w", err)
	}

	s.logger.Info("venue deleted", slog.String("id", id))
	return nil
}

func (s *VenueService) upcomingByVenue(ctx context.Context) (map[string]int, error) {
	shows, err := s.shows.List(ctx, repository.ShowFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing shows: %w", err)
	}
	return viewmodel.CountUpcoming(shows, s.clock.now(), viewmodel.ByVenue), nil
}
