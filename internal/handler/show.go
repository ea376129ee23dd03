package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/venue-booking/internal/flash"
	"github.com/sakif/venue-booking/internal/form"
	"github.com/sakif/venue-booking/internal/service"
)

// ShowHandler serves /shows. The artist and venue services fill the
// form's select options.
type ShowHandler struct {
	svc     *service.ShowService
	artists *service.ArtistService
	venues  *service.VenueService
	render  *Renderer
	logger  *slog.Logger
}

func NewShowHandler(svc *service.ShowService, artists *service.ArtistService, venues *service.VenueService, render *Renderer, logger *slog.Logger) *ShowHandler {
	return &ShowHandler{svc: svc, artists: artists, venues: venues, render: render, logger: logger}
}

// HandleList handles GET /shows.
func (h *ShowHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Page(w, r, http.StatusOK, "pages/shows", "Shows", rows)
}

// HandleNew handles GET /shows/create.
func (h *ShowHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, h.svc.NewForm(), nil)
}

// HandleCreate handles POST /shows/create. An unknown artist or venue id is
// reported on the form like any other field error.
func (h *ShowHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	parseForm(r)
	f := form.DecodeShow(r.PostForm)

	if _, err := h.svc.Create(r.Context(), f); err != nil {
		if fields, ok := fieldErrors(err); ok {
			h.renderForm(w, r, http.StatusUnprocessableEntity, f, fields)
			return
		}
		h.render.flash(w, r, flash.Error, "An error occurred. Show could not be listed.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render.flash(w, r, flash.Success, "Show was successfully listed!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *ShowHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, f form.ShowForm, errs map[string]string) {
	artists, err := h.artists.List(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	venues, err := h.venues.Summaries(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	view := newFormView("/shows/create", "List a new show", f)
	view.Artists = artists
	view.Venues = venues
	if errs != nil {
		view.Errors = errs
	}
	h.render.Page(w, r, status, "forms/show", "New Show", view)
}
