package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/venue-booking/internal/service"
	"github.com/sakif/venue-booking/internal/viewmodel"
)

// Pinger is satisfied by the store; the health check only needs this.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PageHandler serves the home page and the health check.
type PageHandler struct {
	venues  *service.VenueService
	artists *service.ArtistService
	db      Pinger
	render  *Renderer
	logger  *slog.Logger
}

func NewPageHandler(venues *service.VenueService, artists *service.ArtistService, db Pinger, render *Renderer, logger *slog.Logger) *PageHandler {
	return &PageHandler{venues: venues, artists: artists, db: db, render: render, logger: logger}
}

// HandleHome handles GET /: the newest venues and artists.
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venues.Recent(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	artists, err := h.artists.Recent(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.Page(w, r, http.StatusOK, "pages/home", "Venue Booking", viewmodel.Home{
		RecentVenues:  venues,
		RecentArtists: artists,
	})
}

// HandleHealth handles GET /healthz: 200 "ok" if the database answers
// within two seconds, 503 otherwise.
func (h *PageHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("health check failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable"))
		return
	}
	_, _ = w.Write([]byte("ok"))
}
