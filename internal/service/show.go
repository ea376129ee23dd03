package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/venue-booking/internal/form"
	"github.com/sakif/venue-booking/internal/model"
	"github.com/sakif/venue-booking/internal/repository"
	"github.com/sakif/venue-booking/internal/viewmodel"
)

// ShowService schedules shows and lists them. Shows are create-only.
type ShowService struct {
	base
	shows repository.ShowRepository
}

func NewShowService(shows repository.ShowRepository, logger *slog.Logger, clock Clock) *ShowService {
	return &ShowService{
		base:  base{logger: logger, clock: clock},
		shows: shows,
	}
}

// NewForm returns a blank show form with the start time set to now.
func (s *ShowService) NewForm() form.ShowForm {
	return form.NewShowForm(s.clock.now())
}

// Create validates the form and schedules the show. An artist or venue id
// that does not exist comes back as apperror.ErrReference.
func (s *ShowService) Create(ctx context.Context, f form.ShowForm) (*model.Show, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	show := f.Show()
	if err := s.shows.Create(ctx, show); err != nil {
		s.logger.Error("failed to create show",
			slog.String("artist_id", show.ArtistID),
			slog.String("venue_id", show.VenueID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating show: %w", err)
	}

	s.logger.Info("show created",
		slog.String("id", show.ID),
		slog.String("artist_id", show.ArtistID),
		slog.String("venue_id", show.VenueID),
		slog.Time("start_time", show.StartTime),
	)
	return show, nil
}

// List returns every show with its artist and venue names.
func (s *ShowService) List(ctx context.Context) ([]viewmodel.ShowRow, error) {
	shows, err := s.shows.List(ctx, repository.ShowFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing shows: %w", err)
	}
	return viewmodel.ShowRows(shows), nil
}
